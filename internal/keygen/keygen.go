// Package keygen turns raw secrets into private keys, public keys and
// addresses for every supported protocol family.
package keygen

import (
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/klingon-exchange/coinkit/internal/address"
	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/codec"
	"github.com/klingon-exchange/coinkit/internal/wif"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
)

// Key is a generated key pair and its address.
type Key struct {
	Protocol *chain.Protocol
	AddrType chain.AddrType

	// Secret is the preprocessed secret, WIF its encoded form.
	Secret []byte
	WIF    string

	// PublicKey is the serialized public key. For Monero it is the public
	// spend key followed by the public view key.
	PublicKey []byte

	// ViewKey is the Monero private view key, nil elsewhere.
	ViewKey []byte

	Address string
}

// Generate derives the key and address of type t from secret under p.
func Generate(p *chain.Protocol, t chain.AddrType, secret []byte) (*Key, error) {
	if !p.SupportsAddrType(t) {
		str := fmt.Sprintf("%s does not support address type %s", p, t)
		return nil, chain.NewError(chain.ErrUnsupportedFormat, str)
	}

	sec, err := wif.Preprocess(p, t.PubkeyType(), secret)
	if err != nil {
		return nil, err
	}
	encoded, err := wif.Encode(p, sec, t.PubkeyType(), t.Compressed() && !p.HexKeys())
	if err != nil {
		return nil, err
	}

	k := &Key{Protocol: p, AddrType: t, Secret: sec, WIF: encoded}
	switch t {
	case chain.AddrLegacy, chain.AddrCompressed, chain.AddrSegwit, chain.AddrBech32:
		err = k.bitcoin()
	case chain.AddrEthereum:
		err = k.ethereum()
	case chain.AddrMonero:
		err = k.monero()
	case chain.AddrSolana:
		err = k.solana()
	default:
		str := fmt.Sprintf("key generation for %s addresses is not implemented", t.Name())
		err = chain.NewError(chain.ErrUnsupportedFormat, str)
	}
	if err != nil {
		return nil, err
	}
	return k, nil
}

func (k *Key) bitcoin() error {
	priv, pub := btcec.PrivKeyFromBytes(k.Secret)
	priv.Zero()

	if k.AddrType.Compressed() {
		k.PublicKey = pub.SerializeCompressed()
	} else {
		k.PublicKey = pub.SerializeUncompressed()
	}
	hash := btcutil.Hash160(k.PublicKey)

	var err error
	switch k.AddrType {
	case chain.AddrSegwit:
		k.Address, err = address.SegwitP2SH(k.Protocol, hash)
	case chain.AddrBech32:
		k.Address, err = address.Bech32(k.Protocol, hash)
	default:
		k.Address, err = address.Encode(k.Protocol, hash, chain.FormatP2PKH)
	}
	return err
}

func (k *Key) ethereum() error {
	priv, pub := btcec.PrivKeyFromBytes(k.Secret)
	addr := crypto.PubkeyToAddress(priv.ToECDSA().PublicKey)
	priv.Zero()

	k.PublicKey = pub.SerializeUncompressed()
	var err error
	k.Address, err = address.Encode(k.Protocol, addr.Bytes(), chain.FormatP2PKH)
	return err
}

// monero derives the view secret as keccak256(spend) reduced mod l; both
// public keys are the base point multiplied by the matching secret.
func (k *Key) monero() error {
	spend, err := edwards25519.NewScalar().SetCanonicalBytes(k.Secret)
	if err != nil {
		return chain.WrapError(chain.ErrInvalidKey, "monero spend key", err)
	}
	view, err := edwards25519.NewScalar().SetUniformBytes(helpers.PadRight(codec.Keccak256(k.Secret), 64))
	if err != nil {
		return chain.WrapError(chain.ErrInvalidKey, "monero view key", err)
	}

	spendPub := new(edwards25519.Point).ScalarBaseMult(spend)
	viewPub := new(edwards25519.Point).ScalarBaseMult(view)

	k.ViewKey = view.Bytes()
	k.PublicKey = append(spendPub.Bytes(), viewPub.Bytes()...)
	k.Address, err = address.Encode(k.Protocol, k.PublicKey, chain.FormatMonero)
	return err
}

func (k *Key) solana() error {
	priv := ed25519.NewKeyFromSeed(k.Secret)
	k.PublicKey = priv.Public().(ed25519.PublicKey)

	var err error
	k.Address, err = address.Encode(k.Protocol, k.PublicKey, chain.FormatSolana)
	return err
}
