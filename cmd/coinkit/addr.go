package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klingon-exchange/coinkit/internal/address"
	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
)

func newAddrCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Decode, encode and inspect addresses",
	}

	decode := &cobra.Command{
		Use:   "decode <coin> <address>",
		Short: "Decode an address into its format and payload",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			d, err := address.Decode(p, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "format:  %s\n", d.Format)
			if len(d.Prefix) > 0 {
				fmt.Fprintf(out, "prefix:  %s\n", helpers.BytesToHex(d.Prefix))
			}
			fmt.Fprintf(out, "payload: %s\n", helpers.BytesToHex(d.Payload))
			if p.Family() == chain.FamilyMonero {
				spend, view := address.MoneroKeys(d)
				fmt.Fprintf(out, "spend:   %s\n", helpers.BytesToHex(spend))
				fmt.Fprintf(out, "view:    %s\n", helpers.BytesToHex(view))
			}
			if d.PaymentID != nil {
				fmt.Fprintf(out, "payment: %s\n", helpers.BytesToHex(d.PaymentID))
			}
			return nil
		},
	}

	encode := &cobra.Command{
		Use:   "encode <coin> <format> <payload-hex>",
		Short: "Encode a payload as an address of the given format",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			payload, err := helpers.HexToBytes(args[2])
			if err != nil {
				return fmt.Errorf("invalid payload: %w", err)
			}
			addr, err := address.Encode(p, payload, chain.AddrFormat(strings.ToLower(args[1])))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}

	lead := &cobra.Command{
		Use:   "lead <version-hex>",
		Short: "Show the leading characters of Base58Check addresses with a version prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ver, err := helpers.HexToBytes(args[0])
			if err != nil {
				return fmt.Errorf("invalid version: %w", err)
			}
			if len(ver) == 0 || len(ver) > chain.MaxPrefixLen {
				return fmt.Errorf("version must be 1-%d bytes", chain.MaxPrefixLen)
			}
			fmt.Fprintln(cmd.OutOrStdout(), address.LeadingSymbols(helpers.BigEndianUint(ver)))
			return nil
		},
	}

	checksum := &cobra.Command{
		Use:   "checksum <eth-address>",
		Short: "Print the EIP-55 checksummed form of an Ethereum address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := address.Checksummed(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "0x"+s)
			return nil
		},
	}

	cmd.AddCommand(decode, encode, lead, checksum)
	return cmd
}
