// Package chain describes how each supported coin/network pair encodes its
// addresses and private keys, and keeps those descriptions in a Registry.
// All built-in values are hardcoded here; additional bitcoin-like coins are
// synthesized at runtime by the altcoin package.
package chain

import (
	"fmt"
	"strings"
)

// Network represents mainnet, testnet or regtest.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
)

// ParseNetwork converts a network name into a Network.
func ParseNetwork(s string) (Network, error) {
	switch n := Network(strings.ToLower(s)); n {
	case Mainnet, Testnet, Regtest:
		return n, nil
	}
	return "", fmt.Errorf("unknown network %q", s)
}

// Family selects the address and key codecs used by a protocol.
type Family string

const (
	FamilyBitcoin  Family = "bitcoin"  // BTC and forks, Base58Check + bech32
	FamilyEthereum Family = "ethereum" // ETH and EVM chains, hex addresses
	FamilyMonero   Family = "monero"   // Monero block base58
	FamilySolana   Family = "solana"   // raw base58 ed25519 keys
)

func (f Family) valid() bool {
	switch f {
	case FamilyBitcoin, FamilyEthereum, FamilyMonero, FamilySolana:
		return true
	}
	return false
}

// AddrFormat tags the kind of payload an address carries.
type AddrFormat string

const (
	FormatP2PKH            AddrFormat = "p2pkh"
	FormatP2SH             AddrFormat = "p2sh"
	FormatBech32           AddrFormat = "bech32" // witness pubkey hash
	FormatP2WSH            AddrFormat = "p2wsh"  // witness script hash
	FormatShielded         AddrFormat = "zcash_z"
	FormatViewKey          AddrFormat = "viewkey"
	FormatMonero           AddrFormat = "monero"
	FormatMoneroSub        AddrFormat = "monero_sub"
	FormatMoneroIntegrated AddrFormat = "monero_integrated"
	FormatSolana           AddrFormat = "solana"
)

// Segwit reports whether the format is carried as a bech32 witness program
// rather than behind a version prefix.
func (f AddrFormat) Segwit() bool {
	return f == FormatBech32 || f == FormatP2WSH
}

// defaultAddrLen is the payload length of each format unless a Spec
// overrides it.
var defaultAddrLen = map[AddrFormat]int{
	FormatP2PKH:            20,
	FormatP2SH:             20,
	FormatBech32:           20,
	FormatP2WSH:            32,
	FormatShielded:         64,
	FormatViewKey:          64,
	FormatMonero:           64,
	FormatMoneroSub:        64,
	FormatMoneroIntegrated: 72,
	FormatSolana:           32,
}

// PubkeyType tags the kind of public key a private key is used with.
type PubkeyType string

const (
	PubkeyStd      PubkeyType = "std"
	PubkeyShielded PubkeyType = "zcash_z"
	PubkeyMonero   PubkeyType = "monero"
	PubkeyEd25519  PubkeyType = "ed25519"
)

// Capability is a symbolic feature flag.
type Capability string

const (
	CapRBF    Capability = "rbf"
	CapSegwit Capability = "segwit"
	CapToken  Capability = "token"
)

// Curve names the group a protocol's secrets live in.
type Curve string

const (
	CurveSecp256k1 Curve = "secp256k1"
	CurveEd25519   Curve = "ed25519"
)

// AddrType is the single-letter address type used by key generation. It
// combines a pubkey type, a compression flag and an address format.
type AddrType string

const (
	AddrLegacy     AddrType = "L"
	AddrCompressed AddrType = "C"
	AddrSegwit     AddrType = "S"
	AddrBech32     AddrType = "B"
	AddrZcashZ     AddrType = "Z"
	AddrMonero     AddrType = "M"
	AddrEthereum   AddrType = "E"
	AddrSolana     AddrType = "X"
)

type addrTypeInfo struct {
	name       string
	pubkeyType PubkeyType
	compressed bool
	format     AddrFormat
}

var addrTypes = map[AddrType]addrTypeInfo{
	AddrLegacy:     {"legacy", PubkeyStd, false, FormatP2PKH},
	AddrCompressed: {"compressed", PubkeyStd, true, FormatP2PKH},
	AddrSegwit:     {"segwit", PubkeyStd, true, FormatP2SH},
	AddrBech32:     {"bech32", PubkeyStd, true, FormatBech32},
	AddrZcashZ:     {"zcash_z", PubkeyShielded, false, FormatShielded},
	AddrMonero:     {"monero", PubkeyMonero, false, FormatMonero},
	AddrEthereum:   {"ethereum", PubkeyStd, false, FormatP2PKH},
	AddrSolana:     {"solana", PubkeyEd25519, false, FormatSolana},
}

// ParseAddrType accepts either the letter or the long name of an address type.
func ParseAddrType(s string) (AddrType, error) {
	if _, ok := addrTypes[AddrType(strings.ToUpper(s))]; ok && len(s) == 1 {
		return AddrType(strings.ToUpper(s)), nil
	}
	for t, info := range addrTypes {
		if info.name == strings.ToLower(s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown address type %q", s)
}

// Name returns the long name of the address type.
func (t AddrType) Name() string { return addrTypes[t].name }

// PubkeyType returns the pubkey type the address type is derived from.
func (t AddrType) PubkeyType() PubkeyType { return addrTypes[t].pubkeyType }

// Compressed reports whether the address type uses a compressed pubkey.
func (t AddrType) Compressed() bool { return addrTypes[t].compressed }

// Format returns the address format produced for this address type.
func (t AddrType) Format() AddrFormat { return addrTypes[t].format }

// Fork records a chain split.
type Fork struct {
	Height     uint32
	Hash       string
	Coin       string
	Replayable bool
}
