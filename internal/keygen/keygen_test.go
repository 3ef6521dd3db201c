package keygen

import (
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/klingon-exchange/coinkit/internal/address"
	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/wif"
)

var registry = chain.NewRegistry()

func proto(t testing.TB, coin string, network chain.Network) *chain.Protocol {
	t.Helper()
	p, err := registry.Lookup(coin, network)
	require.NoError(t, err)
	return p
}

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

var one = strings.Repeat("00", 31) + "01"

func TestGenerateKnownVectors(t *testing.T) {
	tests := []struct {
		coin    string
		network chain.Network
		typ     chain.AddrType
		secret  string
		addr    string
	}{
		{"BTC", chain.Mainnet, chain.AddrCompressed, one, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"},
		{"BTC", chain.Mainnet, chain.AddrLegacy, one, "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm"},
		{"BTC", chain.Mainnet, chain.AddrSegwit, one, "3JvL6Ymt8MVWiCNHC7oWU6nLeHNJKLZGLN"},
		{"BTC", chain.Mainnet, chain.AddrBech32, one, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"},
		{"ETH", chain.Mainnet, chain.AddrEthereum, one, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"},
		{"XMR", chain.Mainnet, chain.AddrMonero, one,
			"42nsXK8WbVGTNayQ6Kjw5UdgqbQY5KCCufdxdCgF7NgTfjC69Mna7DJSYyie77hZTQ8H92G2HwgFhgEUYnDzrnLnQdF28r3"},
		{"XMR", chain.Mainnet, chain.AddrMonero, "01" + strings.Repeat("00", 31),
			"44yQXfkWZNmJ8QgRfFWTzmJ8QgRfFWTzmJ8QgRfFWTzmJ9HskYAEKgjVy4kd3K4MaxERLtGa7FFrVNLF3jYWyjHCFA3tNHB"},
		{"SOL", chain.Mainnet, chain.AddrSolana,
			"9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
			"FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z"},
	}

	for _, test := range tests {
		p := proto(t, test.coin, test.network)
		k, err := Generate(p, test.typ, mustHex(t, test.secret))
		if err != nil {
			t.Errorf("%s %s: unexpected error: %v", p, test.typ, err)
			continue
		}
		if k.Address != test.addr {
			t.Errorf("%s %s: address = %s, want %s", p, test.typ, k.Address, test.addr)
		}
		if err := address.Validate(p, k.Address); err != nil {
			t.Errorf("%s %s: generated address does not decode: %v", p, test.typ, err)
		}
	}
}

func TestGenerateWIF(t *testing.T) {
	p := proto(t, "BTC", chain.Mainnet)
	k, err := Generate(p, chain.AddrCompressed, mustHex(t, one))
	require.NoError(t, err)
	if k.WIF != "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn" {
		t.Errorf("WIF = %s", k.WIF)
	}

	k, err = Generate(p, chain.AddrLegacy, mustHex(t, one))
	require.NoError(t, err)
	d, err := wif.Decode(p, k.WIF)
	require.NoError(t, err)
	if d.Compressed {
		t.Errorf("legacy key decoded as compressed")
	}

	eth := proto(t, "ETH", chain.Mainnet)
	k, err = Generate(eth, chain.AddrEthereum, mustHex(t, one))
	require.NoError(t, err)
	if k.WIF != one {
		t.Errorf("ETH key = %s, want %s", k.WIF, one)
	}
	if len(k.PublicKey) != 65 {
		t.Errorf("ETH public key is %d bytes, want 65", len(k.PublicKey))
	}
}

func TestGenerateMoneroKeys(t *testing.T) {
	p := proto(t, "XMR", chain.Mainnet)
	k, err := Generate(p, chain.AddrMonero, mustHex(t, strings.Repeat("ff", 32)))
	require.NoError(t, err)

	if got := hex.EncodeToString(k.Secret); got != "1c95988d7431ecd670cf7d73f45befc6feffffffffffffffffffffffffffff0f" {
		t.Errorf("spend key = %s", got)
	}
	if got := hex.EncodeToString(k.ViewKey); got != "9fe83aa6104612b587eb2e6ee1f0c929f85ce047804a789f4d579f9d2e20de0b" {
		t.Errorf("view key = %s", got)
	}
	want := "49voQEbjouUQSDikRWKUt1PGbS47TBde4hiGyftN46CvTDd8LXCaimjHRGtofCJwY5Ed5QhYwc12P15AH5w7SxUAMCz1nr1"
	if k.Address != want {
		t.Errorf("address = %s, want %s", k.Address, want)
	}

	d, err := address.Decode(p, k.Address)
	require.NoError(t, err)
	spend, view := address.MoneroKeys(d)
	if hex.EncodeToString(spend) != hex.EncodeToString(k.PublicKey[:32]) ||
		hex.EncodeToString(view) != hex.EncodeToString(k.PublicKey[32:]) {
		t.Errorf("decoded keys do not match the generated public keys")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		coin   string
		typ    chain.AddrType
		secret string
		kind   chain.ErrorKind
	}{
		{"BTC", chain.AddrMonero, one, chain.ErrUnsupportedFormat},
		{"DOGE", chain.AddrBech32, one, chain.ErrUnsupportedFormat},
		{"ZEC", chain.AddrZcashZ, one, chain.ErrUnsupportedFormat},
		{"BTC", chain.AddrCompressed, strings.Repeat("00", 32), chain.ErrInvalidKey},
		{"BTC", chain.AddrCompressed, "01", chain.ErrInvalidKeyLength},
		{"ETH", chain.AddrEthereum,
			"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", chain.ErrInvalidKey},
	}

	for _, test := range tests {
		p := proto(t, test.coin, chain.Mainnet)
		_, err := Generate(p, test.typ, mustHex(t, test.secret))
		if !errors.Is(err, test.kind) {
			t.Errorf("%s %s %s: error = %v, want %v", test.coin, test.typ, test.secret, err, test.kind)
		}
	}
}

func TestNewMnemonic(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		m, err := NewMnemonic(bits)
		require.NoError(t, err)
		if got, want := len(strings.Fields(m)), bits/32*3; got != want {
			t.Errorf("%d bits: %d words, want %d", bits, got, want)
		}
		if !ValidateMnemonic(m) {
			t.Errorf("%d bits: generated mnemonic does not validate", bits)
		}
	}

	for _, bits := range []int{0, 127, 129, 512} {
		if _, err := NewMnemonic(bits); err == nil {
			t.Errorf("%d bits: expected error", bits)
		}
	}
}

const testMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon about"

func TestSeedKnownVectors(t *testing.T) {
	seed, err := FromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	btc := proto(t, "BTC", chain.Mainnet)
	k, err := seed.Generate(btc, chain.AddrBech32, 0)
	require.NoError(t, err)
	if k.Address != "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu" {
		t.Errorf("m/84'/0'/0'/0/0 = %s", k.Address)
	}
	if got := hex.EncodeToString(k.Secret); got != "4604b4b710fe91f584fff084e1a9159fe4f8408fff380596a604948474ce4fa3" {
		t.Errorf("m/84'/0'/0'/0/0 secret = %s", got)
	}

	legacy, err := btc.Derive(func(s *chain.Spec) { s.Purpose = 44 })
	require.NoError(t, err)
	k, err = seed.Generate(legacy, chain.AddrCompressed, 0)
	require.NoError(t, err)
	if k.Address != "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA" {
		t.Errorf("m/44'/0'/0'/0/0 = %s", k.Address)
	}

	eth := proto(t, "ETH", chain.Mainnet)
	k, err = seed.Generate(eth, chain.AddrEthereum, 0)
	require.NoError(t, err)
	if k.Address != "0x9858EfFD232B4033E47d90003D41EC34EcaEda94" {
		t.Errorf("m/44'/60'/0'/0/0 = %s", k.Address)
	}
}

func TestFromMnemonicInvalid(t *testing.T) {
	_, err := FromMnemonic("abandon abandon abandon", "")
	require.Error(t, err)

	bad := strings.Replace(testMnemonic, "about", "abandon", 1)
	if ValidateMnemonic(bad) {
		t.Fatalf("mnemonic with a bad checksum validated")
	}
	_, err = FromMnemonic(bad, "")
	require.Error(t, err)
}

func TestSeedPassphrase(t *testing.T) {
	plain, err := FromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	salted, err := FromMnemonic(testMnemonic, "TREZOR")
	require.NoError(t, err)

	btc := proto(t, "BTC", chain.Mainnet)
	a, err := plain.Secret(btc, 0, 0, 0)
	require.NoError(t, err)
	b, err := salted.Secret(btc, 0, 0, 0)
	require.NoError(t, err)
	if hex.EncodeToString(a) == hex.EncodeToString(b) {
		t.Errorf("passphrase did not change the derived secret")
	}
}

func TestSeedSecretCacheIsolated(t *testing.T) {
	seed, err := FromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	btc := proto(t, "BTC", chain.Mainnet)

	first, err := seed.Secret(btc, 0, 0, 0)
	require.NoError(t, err)
	want := hex.EncodeToString(first)
	first[0] ^= 0xff

	again, err := seed.Secret(btc, 0, 0, 0)
	require.NoError(t, err)
	if got := hex.EncodeToString(again); got != want {
		t.Errorf("cached secret was modified through a returned slice: %s", got)
	}
}

func TestSeedConcurrentSecrets(t *testing.T) {
	seed, err := FromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	btc := proto(t, "BTC", chain.Mainnet)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sec, err := seed.Secret(btc, 0, 0, uint32(i%4))
			if err != nil {
				t.Errorf("goroutine %d: %v", i, err)
				return
			}
			results[i] = hex.EncodeToString(sec)
		}(i)
	}
	wg.Wait()

	for i := 4; i < len(results); i++ {
		if results[i] != results[i%4] {
			t.Errorf("index %d derived %s, want %s", i%4, results[i], results[i%4])
		}
	}
}

func TestSeedEveryCoreProtocol(t *testing.T) {
	seed, err := FromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	for _, network := range []chain.Network{chain.Mainnet, chain.Testnet} {
		for _, p := range registry.List(network) {
			if p.Disabled() {
				continue
			}
			for _, typ := range p.AddrTypes() {
				if typ == chain.AddrZcashZ {
					continue
				}
				k, err := seed.Generate(p, typ, 7)
				if err != nil {
					t.Errorf("%s %s: %v", p, typ, err)
					continue
				}
				if err := address.Validate(p, k.Address); err != nil {
					t.Errorf("%s %s: %s does not decode: %v", p, typ, k.Address, err)
				}
			}
		}
	}
}

func TestGenerateAddressDecodesProperty(t *testing.T) {
	btc := proto(t, "BTC", chain.Mainnet)
	xmr := proto(t, "XMR", chain.Mainnet)

	rapid.Check(t, func(t *rapid.T) {
		secret := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "secret")
		typ := rapid.SampledFrom(btc.AddrTypes()).Draw(t, "type")

		k, err := Generate(btc, typ, secret)
		if errors.Is(err, chain.ErrInvalidKey) {
			t.Skip("secret outside the group")
		}
		if err != nil {
			t.Fatalf("generate %s: %v", typ, err)
		}
		if err := address.Validate(btc, k.Address); err != nil {
			t.Fatalf("%s does not decode: %v", k.Address, err)
		}

		m, err := Generate(xmr, chain.AddrMonero, secret)
		if err != nil {
			t.Fatalf("generate monero: %v", err)
		}
		d, err := address.Decode(xmr, m.Address)
		if err != nil {
			t.Fatalf("%s does not decode: %v", m.Address, err)
		}
		if hex.EncodeToString(d.Payload) != hex.EncodeToString(m.PublicKey) {
			t.Fatalf("decoded payload differs from public keys")
		}
	})
}
