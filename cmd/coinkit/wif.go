package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/wif"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
)

func newWIFCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wif",
		Short: "Encode and decode private keys",
	}

	var (
		pubkeyType   string
		uncompressed bool
	)
	encode := &cobra.Command{
		Use:   "encode <coin> <secret-hex>",
		Short: "Encode a raw secret in the coin's private key format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			secret, err := helpers.HexToBytes(args[1])
			if err != nil {
				return fmt.Errorf("invalid secret: %w", err)
			}

			t := chain.PubkeyType(pubkeyType)
			if t == "" {
				t = p.WIFVersions()[0].PubkeyType
			}
			v, _ := p.WIFVersion(t)

			s, err := wif.Encode(p, secret, t, v.Compressible && !uncompressed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	encode.Flags().StringVar(&pubkeyType, "type", "", "Pubkey type (std, zcash_z, monero, ed25519); default is the coin's first")
	encode.Flags().BoolVar(&uncompressed, "uncompressed", false, "Omit the compression suffix")

	decode := &cobra.Command{
		Use:   "decode <coin> <wif>",
		Short: "Decode a private key into its raw secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			d, err := wif.Decode(p, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "secret:     %s\n", helpers.BytesToHex(d.Secret))
			fmt.Fprintf(out, "type:       %s\n", d.PubkeyType)
			fmt.Fprintf(out, "compressed: %t\n", d.Compressed)
			return nil
		},
	}

	cmd.AddCommand(encode, decode)
	return cmd
}
