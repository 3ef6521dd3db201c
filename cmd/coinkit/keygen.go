package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/keygen"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
)

type keygenFlags struct {
	addrType   string
	secretHex  string
	mnemonic   string
	passphrase string
	account    uint32
	change     uint32
	index      uint32
}

func newKeygenCmd(a *app) *cobra.Command {
	var f keygenFlags

	cmd := &cobra.Command{
		Use:   "keygen <coin>",
		Short: "Generate a private key and its address",
		Long: `Generate a private key and its address.

With --hex the given secret is used directly. With --mnemonic the secret is
derived along the coin's BIP44 path. Without either a new mnemonic is created
and printed first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.reg.ForGeneration(strings.ToUpper(args[0]), a.cfg.Network)
			if err != nil {
				return err
			}
			if p.TrustLevel() < a.cfg.Generation.MinTrust {
				a.log.Warn("Coin has a low trust level", "coin", p.Coin(), "trust", p.TrustLevel(),
					"min_trust", a.cfg.Generation.MinTrust)
			}

			t, err := pickAddrType(p, f.addrType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			secret, err := a.keygenSecret(out, p, &f)
			if err != nil {
				return err
			}

			k, err := keygen.Generate(p, t, secret)
			if err != nil {
				return err
			}
			printKey(out, k)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.addrType, "type", "", "Address type letter or name (L, C, S, B, M, E, X)")
	fl.StringVar(&f.secretHex, "hex", "", "Raw secret in hex")
	fl.StringVar(&f.mnemonic, "mnemonic", "", "BIP39 mnemonic to derive from")
	fl.StringVar(&f.passphrase, "passphrase", "", "BIP39 passphrase")
	fl.Uint32Var(&f.account, "account", 0, "BIP44 account")
	fl.Uint32Var(&f.change, "change", 0, "BIP44 change (0 external, 1 internal)")
	fl.Uint32Var(&f.index, "index", 0, "BIP44 address index")
	cmd.MarkFlagsMutuallyExclusive("hex", "mnemonic")
	return cmd
}

// pickAddrType resolves the requested address type, defaulting to
// compressed P2PKH when available and the coin's first type otherwise.
func pickAddrType(p *chain.Protocol, name string) (chain.AddrType, error) {
	if name == "" {
		if p.SupportsAddrType(chain.AddrCompressed) {
			return chain.AddrCompressed, nil
		}
		return p.AddrTypes()[0], nil
	}
	t, err := chain.ParseAddrType(name)
	if err != nil {
		return "", err
	}
	if !p.SupportsAddrType(t) {
		str := fmt.Sprintf("%s does not support address type %s", p, t.Name())
		return "", chain.NewError(chain.ErrUnsupportedFormat, str)
	}
	return t, nil
}

func (a *app) keygenSecret(out io.Writer, p *chain.Protocol, f *keygenFlags) ([]byte, error) {
	if f.secretHex != "" {
		secret, err := helpers.HexToFixed(f.secretHex, p.PrivKeyLen())
		if err != nil {
			return nil, fmt.Errorf("invalid secret: %w", err)
		}
		return secret, nil
	}

	mnemonic := f.mnemonic
	if mnemonic == "" {
		var err error
		mnemonic, err = keygen.NewMnemonic(a.cfg.Generation.MnemonicBits)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "mnemonic: %s\n", mnemonic)
	}

	seed, err := keygen.FromMnemonic(mnemonic, f.passphrase)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "path:     %s\n", p.DerivationPathString(f.account, f.change, f.index))
	return seed.Secret(p, f.account, f.change, f.index)
}

func printKey(out io.Writer, k *keygen.Key) {
	fmt.Fprintf(out, "type:     %s\n", k.AddrType.Name())
	fmt.Fprintf(out, "secret:   %s\n", helpers.BytesToHex(k.Secret))
	fmt.Fprintf(out, "wif:      %s\n", k.WIF)
	fmt.Fprintf(out, "pubkey:   %s\n", helpers.BytesToHex(k.PublicKey))
	if k.ViewKey != nil {
		fmt.Fprintf(out, "viewkey:  %s\n", helpers.BytesToHex(k.ViewKey))
	}
	fmt.Fprintf(out, "address:  %s\n", k.Address)
}
