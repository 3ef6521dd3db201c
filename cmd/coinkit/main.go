// Command coinkit encodes, decodes and generates coin addresses and private
// keys from the command line.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klingon-exchange/coinkit/internal/altcoin"
	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/config"
	"github.com/klingon-exchange/coinkit/internal/wif"
	"github.com/klingon-exchange/coinkit/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	network    string
	logLevel   string
	altcoins   bool
}

// app is the state built once per invocation before a command runs.
type app struct {
	flags globalFlags
	cfg   *config.Config
	log   *logging.Logger
	reg   *chain.Registry
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "coinkit",
		Short:         "Multi-coin address and private key toolkit",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", config.DefaultPath, "Config file path")
	pf.StringVar(&a.flags.network, "network", "", "Network: mainnet, testnet or regtest (overrides config)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.BoolVar(&a.flags.altcoins, "altcoins", false, "Register the extended altcoin table (overrides config)")

	root.AddCommand(
		newAddrCmd(a),
		newWIFCmd(a),
		newKeygenCmd(a),
		newCoinsCmd(a),
		newTokensCmd(a),
		newTableCmd(a),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and the protocol registry.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("network") {
		cfg.Network = chain.Network(a.flags.network)
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.flags.logLevel
	}
	if flags.Changed("altcoins") {
		cfg.Altcoins.Enabled = a.flags.altcoins
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = cfg.Logger()
	logging.SetDefault(a.log)
	wif.SetLogger(a.log.Component("wif"))

	a.reg = chain.NewRegistry()
	if !cfg.Altcoins.Enabled {
		return nil
	}

	t, err := a.table()
	if err != nil {
		return err
	}
	if cfg.Altcoins.Verify {
		if err := altcoin.VerifyLeadingSymbols(t); err != nil {
			return err
		}
		if err := altcoin.VerifyCoreCoinData(a.reg, t); err != nil {
			return err
		}
	}
	return altcoin.Extend(a.reg, t, a.log.Component("altcoin"))
}

// table loads the configured altcoin table, or the embedded one.
func (a *app) table() (*altcoin.Table, error) {
	if a.cfg.Altcoins.Table != "" {
		return altcoin.LoadTable(config.ExpandPath(a.cfg.Altcoins.Table))
	}
	return altcoin.DefaultTable()
}

// lookup finds coin on the configured network.
func (a *app) lookup(coin string) (*chain.Protocol, error) {
	return a.reg.Lookup(strings.ToUpper(coin), a.cfg.Network)
}
