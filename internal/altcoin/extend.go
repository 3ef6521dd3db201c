package altcoin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
	"github.com/klingon-exchange/coinkit/pkg/logging"
)

// Protocol synthesizes the protocol of a table row on network. The row
// inherits everything from Bitcoin on that network except identity, version
// numbers, address types and trust level. Segwit rows get P2SH-wrapped
// segwit addresses only: the table carries no bech32 prefix.
func Protocol(e Entry, network chain.Network) (*chain.Protocol, error) {
	addrVersions := []chain.AddrVersion{
		{Prefix: helpers.MinimalBigEndian(uint64(e.P2PKH.Ver)), Format: chain.FormatP2PKH},
	}
	if e.P2SH != nil {
		addrVersions = append(addrVersions, chain.AddrVersion{
			Prefix: helpers.MinimalBigEndian(uint64(e.P2SH.Ver)),
			Format: chain.FormatP2SH,
		})
	}

	addrTypes := []chain.AddrType{chain.AddrLegacy, chain.AddrCompressed}
	var caps []chain.Capability
	if e.Segwit {
		addrTypes = append(addrTypes, chain.AddrSegwit)
		caps = []chain.Capability{chain.CapSegwit}
	}

	name := e.Name
	switch network {
	case chain.Testnet:
		name += " Testnet"
	case chain.Regtest:
		name += " Regtest"
	}

	return chain.BitcoinBase(network).Derive(func(s *chain.Spec) {
		s.Coin = e.Symbol
		s.Name = name
		s.BaseCoin = strings.ToUpper(e.Symbol)
		s.ForkOf = ""
		s.ChainNames = nil
		s.AddrVersions = addrVersions
		s.Bech32HRP = ""
		s.AddrTypes = addrTypes
		s.WIFVersions = []chain.WIFVersion{{
			PubkeyType:   chain.PubkeyStd,
			Prefix:       helpers.MinimalBigEndian(uint64(e.WIF)),
			Compressible: true,
		}}
		s.Caps = caps
		s.TrustLevel = e.Trust
		s.HalvingInterval = 0
		s.Genesis = ""
		s.Forks = nil
		s.Purpose = 44
	})
}

// Extend registers a protocol for every mainnet and testnet row of t whose
// symbol is not yet known to reg. Disabled rows are recorded with
// Registry.Disable instead. A malformed row is skipped and reported; the
// remaining rows are still applied and the errors are returned joined.
//
// Extend may run any number of times; symbols already present are left
// alone.
func Extend(reg *chain.Registry, t *Table, log *logging.Logger) error {
	if log == nil {
		log = logging.Component("altcoin")
	}

	var errs []error
	added := 0
	for _, network := range []chain.Network{chain.Mainnet, chain.Testnet} {
		for _, e := range t.Entries(network) {
			if reg.Has(e.Symbol, network) {
				continue
			}
			if e.Trust == chain.TrustDisabled {
				reg.Disable(e.Symbol, network)
				log.Debug("Altcoin disabled", "coin", e.Symbol, "network", network)
				continue
			}

			p, err := Protocol(e, network)
			if err != nil {
				errs = append(errs, fmt.Errorf("altcoin %s %s: %w", e.Symbol, network, err))
				continue
			}
			if reg.Register(p) {
				added++
			}
		}
	}

	if reg.MarkExtended() {
		log.Info("Registry extended with altcoins", "added", added, "failed", len(errs))
	}
	return errors.Join(errs...)
}
