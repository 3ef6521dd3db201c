package chain

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type registryKey struct {
	coin    string
	network Network
}

func keyOf(coin string, network Network) registryKey {
	return registryKey{coin: strings.ToLower(coin), network: network}
}

// Registry maps coin/network pairs to protocols.
//
// A Registry starts out holding only the built-in core protocols. The
// altcoin package may later add synthesized protocols and call MarkExtended;
// that transition happens at most once. Registered protocols are never
// replaced, and a Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	protos   map[registryKey]*Protocol
	disabled map[registryKey]struct{}
	core     map[string]struct{}
	extended bool
}

// NewRegistry returns a registry seeded with the core protocols.
func NewRegistry() *Registry {
	r := &Registry{
		protos:   make(map[registryKey]*Protocol),
		disabled: make(map[registryKey]struct{}),
		core:     make(map[string]struct{}),
	}
	for _, p := range coreProtocols() {
		r.protos[keyOf(p.Coin(), p.Network())] = p
		r.core[strings.ToLower(p.Coin())] = struct{}{}
	}
	return r
}

func coreProtocols() []*Protocol {
	var all []*Protocol
	for _, group := range [][]*Protocol{
		bitcoinProtocols(),
		bitcoinCashProtocols(),
		litecoinProtocols(),
		dogecoinProtocols(),
		zcashProtocols(),
		moneroProtocols(),
		ethereumProtocols(),
		solanaProtocols(),
	} {
		all = append(all, group...)
	}
	return all
}

// Register adds p unless a protocol for the same coin and network already
// exists. It reports whether p was inserted. Inserting p lifts an earlier
// Disable of the same coin and network.
func (r *Registry) Register(p *Protocol) bool {
	k := keyOf(p.Coin(), p.Network())

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.protos[k]; ok {
		return false
	}
	r.protos[k] = p
	delete(r.disabled, k)
	return true
}

// Disable records coin as known but disabled on network. Lookups keep
// failing with ErrUnknownCoin, ForGeneration fails with ErrDisabledCoin.
// Coins that already have a protocol are left alone.
func (r *Registry) Disable(coin string, network Network) {
	k := keyOf(coin, network)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.protos[k]; !ok {
		r.disabled[k] = struct{}{}
	}
}

// Lookup returns the protocol for coin on network. Coin symbols are matched
// case-insensitively.
func (r *Registry) Lookup(coin string, network Network) (*Protocol, error) {
	k := keyOf(coin, network)

	r.mu.RLock()
	p, ok := r.protos[k]
	_, disabled := r.disabled[k]
	r.mu.RUnlock()

	if !ok {
		desc := fmt.Sprintf("no protocol for coin %q on %s", coin, network)
		if disabled {
			desc += " (disabled)"
		}
		return nil, NewError(ErrUnknownCoin, desc)
	}
	return p, nil
}

// ForGeneration is Lookup for callers about to generate keys or addresses.
// It refuses coins whose trust level is TrustDisabled.
func (r *Registry) ForGeneration(coin string, network Network) (*Protocol, error) {
	k := keyOf(coin, network)

	r.mu.RLock()
	_, disabled := r.disabled[k]
	r.mu.RUnlock()
	if disabled {
		return nil, NewError(ErrDisabledCoin, fmt.Sprintf("coin %q is disabled", coin))
	}

	p, err := r.Lookup(coin, network)
	if err != nil {
		return nil, err
	}
	if p.Disabled() {
		return nil, NewError(ErrDisabledCoin, fmt.Sprintf("coin %q is disabled", coin))
	}
	return p, nil
}

// Has reports whether a protocol is registered for coin on network.
func (r *Registry) Has(coin string, network Network) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.protos[keyOf(coin, network)]
	return ok
}

// Known reports whether coin has a protocol on any network or has been
// disabled.
func (r *Registry) Known(coin string) bool {
	coin = strings.ToLower(coin)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for k := range r.protos {
		if k.coin == coin {
			return true
		}
	}
	for k := range r.disabled {
		if k.coin == coin {
			return true
		}
	}
	return false
}

// IsCore reports whether coin is one of the built-in protocols.
func (r *Registry) IsCore(coin string) bool {
	_, ok := r.core[strings.ToLower(coin)]
	return ok
}

// CoreCoins returns the built-in coin symbols, sorted.
func (r *Registry) CoreCoins() []string {
	out := make([]string, 0, len(r.core))
	for c := range r.core {
		out = append(out, strings.ToUpper(c))
	}
	sort.Strings(out)
	return out
}

// List returns the protocols registered for network, sorted by coin.
func (r *Registry) List(network Network) []*Protocol {
	r.mu.RLock()
	out := make([]*Protocol, 0, len(r.protos))
	for k, p := range r.protos {
		if k.network == network {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Coin() < out[j].Coin() })
	return out
}

// ListByFamily returns the protocols of family f registered for network.
func (r *Registry) ListByFamily(f Family, network Network) []*Protocol {
	var out []*Protocol
	for _, p := range r.List(network) {
		if p.Family() == f {
			out = append(out, p)
		}
	}
	return out
}

// ByChainID returns the ethereum-family protocol with the given chain ID.
func (r *Registry) ByChainID(chainID uint64) (*Protocol, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.protos {
		if p.Family() == FamilyEthereum && p.ChainID() == chainID {
			return p, nil
		}
	}
	return nil, NewError(ErrUnknownCoin, fmt.Sprintf("no protocol for chain ID %d", chainID))
}

// MarkExtended records that dynamic extension has run. It reports whether
// this call made the transition.
func (r *Registry) MarkExtended() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.extended {
		return false
	}
	r.extended = true
	return true
}

// Extended reports whether dynamic extension has run.
func (r *Registry) Extended() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extended
}
