package wif

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"filippo.io/edwards25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
	"github.com/klingon-exchange/coinkit/pkg/logging"
)

var log atomic.Pointer[logging.Logger]

func init() {
	log.Store(logging.Component("wif"))
}

// SetLogger replaces the logger that receives reduction warnings. It may be
// called while other goroutines encode keys.
func SetLogger(l *logging.Logger) {
	log.Store(l)
}

// Preprocess turns raw secret bytes into the key that is actually encoded:
//
//   - secp256k1 keys must lie in [1, N-1]. Zero and N itself are rejected,
//     any other value at or above N is reduced mod N with a warning.
//   - Monero spend keys are little-endian scalars reduced mod l.
//   - Zcash shielded spending keys have the top nibble cleared.
//   - ed25519 seeds are used as is.
//
// The input slice is never modified.
func Preprocess(p *chain.Protocol, pubkeyType chain.PubkeyType, secret []byte) ([]byte, error) {
	if len(secret) != p.PrivKeyLen() {
		str := fmt.Sprintf("%s secret is %d bytes, want %d", p, len(secret), p.PrivKeyLen())
		return nil, chain.NewError(chain.ErrInvalidKeyLength, str)
	}

	switch pubkeyType {
	case chain.PubkeyShielded:
		out := bytes.Clone(secret)
		out[0] &= 0x0f
		return out, nil

	case chain.PubkeyMonero:
		return reduceEd25519(secret)

	case chain.PubkeyEd25519:
		return bytes.Clone(secret), nil
	}

	if p.Curve() != chain.CurveSecp256k1 {
		return bytes.Clone(secret), nil
	}
	return reduceSecp256k1(p, secret)
}

func reduceSecp256k1(p *chain.Protocol, secret []byte) ([]byte, error) {
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(secret)
	if s.IsZero() {
		if overflow {
			return nil, chain.NewError(chain.ErrInvalidKey, "secret equals the secp256k1 group order")
		}
		return nil, chain.NewError(chain.ErrInvalidKey, "secret is zero")
	}
	if overflow {
		log.Load().Warn("secret exceeds the secp256k1 group order, reducing", "coin", p.Coin(), "network", p.Network())
	}
	b := s.Bytes()
	return b[:], nil
}

// reduceEd25519 reduces a 32-byte little-endian value mod the ed25519 group
// order l. The result stays little-endian.
func reduceEd25519(secret []byte) ([]byte, error) {
	wide := helpers.PadRight(secret, 64)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		return nil, chain.WrapError(chain.ErrInvalidKey, "ed25519 scalar reduction", err)
	}
	return s.Bytes(), nil
}
