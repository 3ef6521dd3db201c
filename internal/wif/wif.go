// Package wif encodes and decodes private keys in Wallet Import Format.
//
// Bitcoin-family protocols wrap the secret in a version-prefixed
// Base58Check string with an optional 0x01 compression suffix. Protocols
// whose WIF versions carry no prefix (ethereum, monero, solana) exchange the
// secret as lowercase hex instead.
package wif

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/codec"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
)

// compressedSuffix follows the secret of a key whose public key is
// serialized compressed.
const compressedSuffix = 0x01

// Decoded is the binary form of a private key.
type Decoded struct {
	Secret     []byte
	PubkeyType chain.PubkeyType
	Compressed bool
}

// Encode preprocesses secret for pubkeyType and returns its WIF under p.
func Encode(p *chain.Protocol, secret []byte, pubkeyType chain.PubkeyType, compressed bool) (string, error) {
	v, ok := p.WIFVersion(pubkeyType)
	if !ok {
		str := fmt.Sprintf("%s has no %s keys", p, pubkeyType)
		return "", chain.NewError(chain.ErrUnsupportedPubkeyType, str)
	}
	if compressed && !v.Compressible {
		str := fmt.Sprintf("%s %s keys take no compression suffix", p, pubkeyType)
		return "", chain.NewError(chain.ErrCompressionNotAllowed, str)
	}

	key, err := Preprocess(p, pubkeyType, secret)
	if err != nil {
		return "", err
	}

	if len(v.Prefix) == 0 {
		return hex.EncodeToString(key), nil
	}

	buf := make([]byte, 0, len(v.Prefix)+len(key)+1)
	buf = append(buf, v.Prefix...)
	buf = append(buf, key...)
	if compressed {
		buf = append(buf, compressedSuffix)
	}
	return codec.CheckEncode(buf), nil
}

// Decode parses a WIF under p. Prefixes are tried longest first; a prefix
// whose remainder has the wrong length gives way to shorter prefixes.
func Decode(p *chain.Protocol, wif string) (*Decoded, error) {
	if p.HexKeys() {
		return decodeHex(p, wif)
	}

	raw, err := codec.CheckDecode(wif)
	if err != nil {
		return nil, fmt.Errorf("decode %s wif: %w", p, err)
	}

	n := p.PrivKeyLen()
	matched := false
	for _, v := range p.WIFVersionsLongestFirst() {
		if !bytes.HasPrefix(raw, v.Prefix) {
			continue
		}
		matched = true

		rest := raw[len(v.Prefix):]
		switch {
		case len(rest) == n:
			return &Decoded{Secret: rest, PubkeyType: v.PubkeyType}, nil
		case len(rest) == n+1 && v.Compressible:
			if rest[n] != compressedSuffix {
				str := fmt.Sprintf("compression suffix is %#02x, want %#02x", rest[n], compressedSuffix)
				return nil, chain.NewError(chain.ErrInvalidCompressionSuffix, str)
			}
			return &Decoded{Secret: rest[:n], PubkeyType: v.PubkeyType, Compressed: true}, nil
		}
	}

	if matched {
		str := fmt.Sprintf("%s wif holds %d bytes, no version accepts that length", p, len(raw))
		return nil, chain.NewError(chain.ErrInvalidKeyLength, str)
	}
	str := fmt.Sprintf("%s wif has unknown version prefix", p)
	return nil, chain.NewError(chain.ErrInvalidWifVersion, str)
}

func decodeHex(p *chain.Protocol, s string) (*Decoded, error) {
	if !helpers.IsHex(s) {
		return nil, chain.NewError(chain.ErrInvalidWifVersion, fmt.Sprintf("%s keys are plain hex", p))
	}
	secret, err := helpers.HexToBytes(s)
	if err != nil {
		return nil, chain.WrapError(chain.ErrInvalidKeyLength, "odd-length hex key", err)
	}
	if len(secret) != p.PrivKeyLen() {
		str := fmt.Sprintf("%s key is %d bytes, want %d", p, len(secret), p.PrivKeyLen())
		return nil, chain.NewError(chain.ErrInvalidKeyLength, str)
	}
	return &Decoded{Secret: secret, PubkeyType: p.WIFVersions()[0].PubkeyType}, nil
}
