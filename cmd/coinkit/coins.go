package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/klingon-exchange/coinkit/internal/altcoin"
	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/config"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
)

func newCoinsCmd(a *app) *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "coins",
		Short: "List the registered coins of the current network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			protos := a.reg.List(a.cfg.Network)
			if family != "" {
				protos = a.reg.ListByFamily(chain.Family(strings.ToLower(family)), a.cfg.Network)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COIN\tNAME\tFAMILY\tTRUST\tTYPES\tMAX FEE")
			for _, p := range protos {
				types := make([]string, 0, len(p.AddrTypes()))
				for _, t := range p.AddrTypes() {
					types = append(types, string(t))
				}
				fee := "-"
				if p.MaxTxFee() > 0 {
					fee = helpers.FormatAmount(p.MaxTxFee(), p.Decimals())
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					p.Coin(), p.Name(), p.Family(), p.TrustLevel(), strings.Join(types, ""), fee)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "Only list one family (bitcoin, ethereum, monero, solana)")
	return cmd
}

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <coin> [symbol]",
		Short: "List the known ERC-20 tokens of an EVM chain",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			if p.ChainID() == 0 {
				return fmt.Errorf("%s is not an EVM chain", p)
			}

			list := chain.Tokens(p.ChainID())
			if len(args) == 2 {
				t, ok := chain.LookupToken(p.ChainID(), args[1])
				if !ok {
					return fmt.Errorf("no token %q on %s", args[1], p)
				}
				list = []chain.Token{t}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME\tDECIMALS\tCONTRACT")
			for _, t := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", t.Symbol, t.Name, t.Decimals, t.Contract)
			}
			return w.Flush()
		},
	}
}

func newTableCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Inspect the altcoin reference table",
	}

	var (
		fix bool
		out string
	)
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Check the table's leading symbols and its agreement with the built-in coins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			if err := altcoin.VerifyCoreCoinData(chain.NewRegistry(), t); err != nil {
				return err
			}

			if !fix {
				if err := altcoin.VerifyLeadingSymbols(t); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "table OK")
				return nil
			}

			fixed := altcoin.FixLeadingSymbols(t, a.log.Component("altcoin"))
			data, err := t.Marshal()
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(config.ExpandPath(out), data, 0644); err != nil {
				return fmt.Errorf("failed to write table: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "fixed %d entries, wrote %s\n", len(fixed), out)
			return nil
		},
	}
	verify.Flags().BoolVar(&fix, "fix", false, "Repair mismatched leading symbols and print the table")
	verify.Flags().StringVar(&out, "out", "", "Write the repaired table to a file instead of stdout")

	cmd.AddCommand(verify)
	return cmd
}
