package keygen

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"

	"github.com/klingon-exchange/coinkit/internal/chain"
)

// Mnemonic sizes accepted by NewMnemonic.
var mnemonicBits = map[int]struct{}{128: {}, 160: {}, 192: {}, 224: {}, 256: {}}

// NewMnemonic generates a BIP39 mnemonic from bits of fresh entropy.
func NewMnemonic(bits int) (string, error) {
	if _, ok := mnemonicBits[bits]; !ok {
		return "", fmt.Errorf("mnemonic entropy must be 128-256 bits in steps of 32, got %d", bits)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks the words and checksum of a mnemonic.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// Seed derives HD secrets along each protocol's BIP44 path.
type Seed struct {
	master *hdkeychain.ExtendedKey

	mu    sync.Mutex
	cache map[string][]byte
}

// FromMnemonic builds a Seed from a BIP39 mnemonic and optional passphrase.
func FromMnemonic(mnemonic, passphrase string) (*Seed, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	return FromSeed(bip39.NewSeed(mnemonic, passphrase))
}

// FromSeed builds a Seed from 16 to 64 bytes of raw seed.
func FromSeed(seed []byte) (*Seed, error) {
	// The master key's version bytes never reach an address, so mainnet
	// params serve every coin and network.
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	return &Seed{master: master, cache: make(map[string][]byte)}, nil
}

// Secret returns the raw 32-byte secret at p's path
// m/purpose'/coin'/account'/change/index. The same secp256k1 child key
// serves every family; for ed25519 coins it is used as seed or scalar bytes.
func (s *Seed) Secret(p *chain.Protocol, account, change, index uint32) ([]byte, error) {
	path := p.DerivationPathString(account, change, index)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sec, ok := s.cache[path]; ok {
		return append([]byte(nil), sec...), nil
	}

	key := s.master
	for _, i := range p.DerivationPath(account, change, index) {
		child, err := key.Derive(i)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", path, err)
		}
		key = child
	}
	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get private key: %w", err)
	}

	sec := priv.Serialize()
	s.cache[path] = sec
	return append([]byte(nil), sec...), nil
}

// Generate derives the secret at index under account 0, external chain, and
// builds its key of type t.
func (s *Seed) Generate(p *chain.Protocol, t chain.AddrType, index uint32) (*Key, error) {
	sec, err := s.Secret(p, 0, 0, index)
	if err != nil {
		return nil, err
	}
	return Generate(p, t, sec)
}
