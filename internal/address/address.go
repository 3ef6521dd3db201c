// Package address encodes and decodes coin addresses according to a
// chain.Protocol.
package address

import (
	"fmt"

	"github.com/klingon-exchange/coinkit/internal/chain"
)

// Decoded is the binary form of an address.
type Decoded struct {
	// Payload is the hash, key or key pair the address commits to. Its
	// length always equals the protocol's length for Format.
	Payload []byte

	// Prefix is the version prefix the address carried, nil for bech32,
	// ethereum and solana addresses.
	Prefix []byte

	Format chain.AddrFormat

	// PaymentID is set for Monero integrated addresses.
	PaymentID []byte
}

// Decode parses addr under protocol p.
func Decode(p *chain.Protocol, addr string) (*Decoded, error) {
	if addr == "" {
		return nil, chain.NewError(chain.ErrInvalidAddress, "empty address")
	}

	switch p.Family() {
	case chain.FamilyEthereum:
		return decodeEthereum(p, addr)
	case chain.FamilyMonero:
		return decodeMonero(p, addr)
	case chain.FamilySolana:
		return decodeSolana(p, addr)
	}
	return decodeBitcoin(p, addr)
}

// Encode builds the address of payload in format f under protocol p.
func Encode(p *chain.Protocol, payload []byte, f chain.AddrFormat) (string, error) {
	if !p.SupportsFormat(f) {
		str := fmt.Sprintf("%s does not support %s addresses", p, f)
		return "", chain.NewError(chain.ErrUnsupportedFormat, str)
	}
	if want := p.AddrLen(f); len(payload) != want {
		str := fmt.Sprintf("%s %s payload is %d bytes, want %d", p, f, len(payload), want)
		return "", chain.NewError(chain.ErrInvalidAddress, str)
	}

	switch p.Family() {
	case chain.FamilyEthereum:
		return encodeEthereum(payload), nil
	case chain.FamilyMonero:
		return encodeMonero(p, payload, f)
	case chain.FamilySolana:
		return encodeSolana(payload), nil
	}
	return encodeBitcoin(p, payload, f)
}

// Validate reports whether addr decodes under p.
func Validate(p *chain.Protocol, addr string) error {
	_, err := Decode(p, addr)
	return err
}

func invalid(p *chain.Protocol, addr string, cause error) error {
	str := fmt.Sprintf("invalid %s address %q", p, addr)
	if cause == nil {
		return chain.NewError(chain.ErrInvalidAddress, str)
	}
	return chain.WrapError(chain.ErrInvalidAddress, str, cause)
}
