package altcoin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klingon-exchange/coinkit/internal/address"
	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
	"github.com/klingon-exchange/coinkit/pkg/logging"
)

// Mismatch is a recorded value that disagrees with the value derived for it.
type Mismatch struct {
	Network chain.Network
	Symbol  string
	Field   string
	Have    string
	Want    string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s %s %s: table has %q, want %q", m.Symbol, m.Network, m.Field, m.Have, m.Want)
}

// leadMismatches recomputes the leading symbols of every p2pkh and p2sh
// version in t. If fix is set the table is rewritten in place.
func leadMismatches(t *Table, fix bool) []Mismatch {
	var out []Mismatch
	check := func(network chain.Network, sym, field string, v *Version) {
		want := address.LeadingSymbols(uint64(v.Ver))
		if string(v.Lead) == want {
			return
		}
		out = append(out, Mismatch{Network: network, Symbol: sym, Field: field, Have: string(v.Lead), Want: want})
		if fix {
			v.Lead = Lead(want)
		}
	}

	for _, network := range []chain.Network{chain.Mainnet, chain.Testnet} {
		entries := t.Entries(network)
		for i := range entries {
			e := &entries[i]
			check(network, e.Symbol, "p2pkh leading symbols", &e.P2PKH)
			if e.P2SH != nil {
				check(network, e.Symbol, "p2sh leading symbols", e.P2SH)
			}
		}
	}
	return out
}

// VerifyLeadingSymbols checks the recorded leading symbols of every row
// against address.LeadingSymbols. Each mismatch is an ErrDataIntegrity
// error; all of them are returned joined.
func VerifyLeadingSymbols(t *Table) error {
	var errs []error
	for _, m := range leadMismatches(t, false) {
		errs = append(errs, chain.NewError(chain.ErrDataIntegrity, m.String()))
	}
	return errors.Join(errs...)
}

// FixLeadingSymbols overwrites every mismatched leading symbol in t with the
// computed value, logging a warning per fix. It returns the fixes made.
func FixLeadingSymbols(t *Table, log *logging.Logger) []Mismatch {
	if log == nil {
		log = logging.Component("altcoin")
	}
	fixed := leadMismatches(t, true)
	for _, m := range fixed {
		log.Warn("Fixing leading symbols", "coin", m.Symbol, "network", m.Network,
			"field", m.Field, "was", m.Have, "now", m.Want)
	}
	return fixed
}

// VerifyCoreCoinData cross-checks every core coin that has a table row
// against its built-in protocol: WIF, p2pkh and p2sh version numbers, the
// trust level unless the row is disabled, and on mainnet the name.
func VerifyCoreCoinData(reg *chain.Registry, t *Table) error {
	var errs []error
	for _, network := range []chain.Network{chain.Mainnet, chain.Testnet} {
		for _, coin := range reg.CoreCoins() {
			e, ok := t.Lookup(coin, network)
			if !ok {
				continue
			}
			p, err := reg.Lookup(coin, network)
			if err != nil {
				errs = append(errs, chain.WrapError(chain.ErrDataIntegrity,
					fmt.Sprintf("%s %s is in the table but not built in", coin, network), err))
				continue
			}
			for _, m := range coreMismatches(p, e) {
				errs = append(errs, chain.NewError(chain.ErrDataIntegrity, m.String()))
			}
		}
	}
	return errors.Join(errs...)
}

func coreMismatches(p *chain.Protocol, e Entry) []Mismatch {
	var out []Mismatch
	add := func(field, have, want string) {
		if have != want {
			out = append(out, Mismatch{Network: p.Network(), Symbol: p.Coin(), Field: field, Have: have, Want: want})
		}
	}
	hexOf := func(v VerNum) string { return helpers.BytesToHex(helpers.MinimalBigEndian(uint64(v))) }

	if p.Network() == chain.Mainnet {
		add("name", e.Name, strings.ReplaceAll(p.Name(), " ", ""))
	}
	if e.Trust != chain.TrustDisabled {
		add("trust level", fmt.Sprint(e.Trust), fmt.Sprint(p.TrustLevel()))
	}

	wif, _ := p.WIFVersion(chain.PubkeyStd)
	add("WIF version", hexOf(e.WIF), helpers.BytesToHex(wif.Prefix))

	p2pkh, _ := p.Prefix(chain.FormatP2PKH)
	add("p2pkh version", hexOf(e.P2PKH.Ver), helpers.BytesToHex(p2pkh))

	p2sh, _ := p.Prefix(chain.FormatP2SH)
	have := ""
	if e.P2SH != nil {
		have = hexOf(e.P2SH.Ver)
	}
	add("p2sh version", have, helpers.BytesToHex(p2sh))
	return out
}
