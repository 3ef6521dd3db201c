package address

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/internal/codec"
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

const testHash = "d04134b9ddb7399907657514d846aa495b4e474c"

func TestEncodeDecodeKnownVectors(t *testing.T) {
	tests := []struct {
		coin    string
		network chain.Network
		format  chain.AddrFormat
		payload string
		want    string
	}{
		{"BTC", chain.Mainnet, chain.FormatP2PKH, testHash, "1Kz9fVSUMshzPejpzW9D95kScgA3rY6QxF"},
		{"BTC", chain.Mainnet, chain.FormatP2SH, testHash, "3LgAb2vuun2NUpSG7booZi7NmCSmTYTSSe"},
		{"BTC", chain.Mainnet, chain.FormatBech32, testHash, "bc1q6pqnfwwakuuejpm9w52ds342f9d5u36v0qnz7c"},
		{"BTC", chain.Testnet, chain.FormatP2PKH, testHash, "mzW6xYXTAu9FAmDSi57axzxmUfkkjbriRJ"},
		{"BTC", chain.Testnet, chain.FormatP2SH, testHash, "2NCENemrwXEXigc4onjRgBf6dyYewC6aGuA"},
		{"BTC", chain.Testnet, chain.FormatBech32, testHash, "tb1q6pqnfwwakuuejpm9w52ds342f9d5u36v9xg39t"},
		{"BTC", chain.Regtest, chain.FormatBech32, testHash, "bcrt1q6pqnfwwakuuejpm9w52ds342f9d5u36v803ujz"},
		{
			"BTC", chain.Mainnet, chain.FormatP2WSH,
			"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			"bc1qqqqsyqcyq5rqwzqfpg9scrgwpugpzysnzs23v9ccrydpk8qarc0szrtjt7",
		},
		{"LTC", chain.Mainnet, chain.FormatP2PKH, testHash, "LeD6vhkJSXx3eTRzAe8WR6pCptXL2H3Vhy"},
		{"LTC", chain.Mainnet, chain.FormatP2SH, testHash, "MStJtvLsrtsoHKiADUo9PMMn5u3DRcrA56"},
		{"LTC", chain.Mainnet, chain.FormatBech32, testHash, "ltc1q6pqnfwwakuuejpm9w52ds342f9d5u36vtufxxg"},
		{"LTC", chain.Testnet, chain.FormatP2SH, testHash, "Qfb8mnjBYLaopnprQqThGMY57w6m6HYkRf"},
		{"DOGE", chain.Mainnet, chain.FormatP2PKH, testHash, "DQ8FCkP7fHcGvevRj68mgqv3VotMC279E9"},
		{"DOGE", chain.Mainnet, chain.FormatP2SH, testHash, "ABRRKszoyquGPBojXjUDoqjkTmpoY9CmrY"},
		{"BCH", chain.Mainnet, chain.FormatP2PKH, testHash, "1Kz9fVSUMshzPejpzW9D95kScgA3rY6QxF"},
		{"ZEC", chain.Mainnet, chain.FormatP2PKH, testHash, "t1crkfprcLCVazHnivvxLGtrMsLM8fVjhyA"},
		{"ZEC", chain.Mainnet, chain.FormatP2SH, testHash, "t3dYmbNM3t6oy5TVA42cvhXDJ1rdrBcRrai"},
		{
			"ZEC", chain.Mainnet, chain.FormatShielded,
			"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f" +
				"202122232425262728292a2b2c2d2e2f303132333435363738393a3b3c3d3e3f",
			"zc8E7R3StiJq1T1UaCdygazuEVBe9xddGdYBLMe8WNgnBTVRGiGwY9MEeVKqhWNtmbPmwi4S1uJtPobqCq4azuLJrKCFjcj",
		},
		{
			"ZEC", chain.Mainnet, chain.FormatViewKey,
			"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f" +
				"202122232425262728292a2b2c2d2e2f303132333435363738393a3b3c3d3e3f",
			"ZiVKNJtn6NUbLMFiT9X7RP2ihMJMmaA4r8x9EjHxVXN9GCUuWmo92eMcd8dcdhkcAUPcpkxg4yUfTRrFhMxq5PweBRUuVuzYo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.coin+"/"+string(tt.network)+"/"+string(tt.format), func(t *testing.T) {
			p := proto(t, tt.coin, tt.network)
			payload := mustHex(t, tt.payload)

			got, err := Encode(p, payload, tt.format)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("Encode = %s, want %s", got, tt.want)
			}

			d, err := Decode(p, tt.want)
			require.NoError(t, err)
			if !bytes.Equal(d.Payload, payload) {
				t.Errorf("Decode payload = %x, want %s", d.Payload, tt.payload)
			}
			if d.Format != tt.format {
				t.Errorf("Decode format = %s, want %s", d.Format, tt.format)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	btc := proto(t, "BTC", chain.Mainnet)
	tests := []struct {
		name  string
		p     *chain.Protocol
		addr  string
		cause error
	}{
		{"empty", btc, "", nil},
		{"bad checksum", btc, "1Kz9fVSUMshzPejpzW9D95kScgA3rY6QxG", codec.ErrChecksum},
		{"bad character", btc, "1Kz9fVSUMshzPejpzW9D95kScgA3rY6Qx0", codec.ErrInvalidCharacter},
		{"testnet address on mainnet", btc, "mzW6xYXTAu9FAmDSi57axzxmUfkkjbriRJ", nil},
		{"litecoin address on bitcoin", btc, "LeD6vhkJSXx3eTRzAe8WR6pCptXL2H3Vhy", nil},
		{"bech32 bad checksum", btc, "bc1q6pqnfwwakuuejpm9w52ds342f9d5u36v0qnz7d", codec.ErrChecksum},
		{"bech32 wrong witness version", btc, "bc1p6pqnfwwakuuejpm9w52ds342f9d5u36vy7yfnn", nil},
		{"bech32 bad v0 length", btc, "bc1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqj9pecr", codec.ErrInvalidLength},
		{"bech32 on non-segwit coin", proto(t, "DOGE", chain.Mainnet), "bc1q6pqnfwwakuuejpm9w52ds342f9d5u36v0qnz7c", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.p, tt.addr)
			require.Error(t, err)
			if !errors.Is(err, chain.ErrInvalidAddress) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidAddress", tt.addr, err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("Decode(%q) error = %v, want cause %v", tt.addr, err, tt.cause)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	doge := proto(t, "DOGE", chain.Mainnet)
	_, err := Encode(doge, mustHex(t, testHash), chain.FormatBech32)
	if !errors.Is(err, chain.ErrUnsupportedFormat) {
		t.Errorf("Encode bech32 on DOGE error = %v, want ErrUnsupportedFormat", err)
	}

	btc := proto(t, "BTC", chain.Mainnet)
	_, err = Encode(btc, make([]byte, 19), chain.FormatP2PKH)
	if !errors.Is(err, chain.ErrInvalidAddress) {
		t.Errorf("Encode short payload error = %v, want ErrInvalidAddress", err)
	}

	_, err = Encode(btc, make([]byte, 64), chain.FormatShielded)
	if !errors.Is(err, chain.ErrUnsupportedFormat) {
		t.Errorf("Encode zcash_z on BTC error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeLongestPrefixFirst(t *testing.T) {
	p, err := chain.BitcoinBase(chain.Mainnet).Derive(func(s *chain.Spec) {
		s.Coin = "PFX"
		s.Name = "Prefix Test"
		s.AddrVersions = []chain.AddrVersion{
			{Prefix: []byte{0x1c}, Format: chain.FormatP2PKH},
			{Prefix: []byte{0x1c, 0xb8}, Format: chain.FormatP2SH},
		}
		s.Bech32HRP = ""
		s.AddrTypes = []chain.AddrType{chain.AddrLegacy}
	})
	require.NoError(t, err)

	payload := mustHex(t, testHash)
	long, err := Encode(p, payload, chain.FormatP2SH)
	require.NoError(t, err)
	d, err := Decode(p, long)
	require.NoError(t, err)
	if d.Format != chain.FormatP2SH || !bytes.Equal(d.Prefix, []byte{0x1c, 0xb8}) {
		t.Errorf("Decode = %s %x, want p2sh 1cb8", d.Format, d.Prefix)
	}

	// The payload starts with the second byte of the long prefix, so the
	// long prefix matches first and is rejected on length.
	tricky := append([]byte{0xb8}, payload[1:]...)
	short, err := Encode(p, tricky, chain.FormatP2PKH)
	require.NoError(t, err)
	d, err = Decode(p, short)
	require.NoError(t, err)
	if d.Format != chain.FormatP2PKH || !bytes.Equal(d.Payload, tricky) {
		t.Errorf("Decode = %s %x, want p2pkh %x", d.Format, d.Payload, tricky)
	}
}

func TestDecodeReturnsPrefix(t *testing.T) {
	zec := proto(t, "ZEC", chain.Mainnet)
	d, err := Decode(zec, "t1crkfprcLCVazHnivvxLGtrMsLM8fVjhyA")
	require.NoError(t, err)
	if !bytes.Equal(d.Prefix, []byte{0x1c, 0xb8}) {
		t.Errorf("Prefix = %x, want 1cb8", d.Prefix)
	}

	btc := proto(t, "BTC", chain.Mainnet)
	d, err = Decode(btc, "bc1q6pqnfwwakuuejpm9w52ds342f9d5u36v0qnz7c")
	require.NoError(t, err)
	if d.Prefix != nil {
		t.Errorf("bech32 Prefix = %x, want nil", d.Prefix)
	}
}

func TestBech32CaseInsensitive(t *testing.T) {
	btc := proto(t, "BTC", chain.Mainnet)
	d, err := Decode(btc, strings.ToUpper("bc1q6pqnfwwakuuejpm9w52ds342f9d5u36v0qnz7c"))
	require.NoError(t, err)
	if hex.EncodeToString(d.Payload) != testHash {
		t.Errorf("Payload = %x, want %s", d.Payload, testHash)
	}
}

func TestCashAddr(t *testing.T) {
	bch := proto(t, "BCH", chain.Mainnet)
	payload := mustHex(t, testHash)

	got, err := EncodeCashAddr(bch, payload, chain.FormatP2PKH)
	require.NoError(t, err)
	want := "bitcoincash:qrgyzd9emkmnnxg8v463fkzx4fy4knj8fsjx3rs3zs"
	if got != want {
		t.Errorf("EncodeCashAddr = %s, want %s", got, want)
	}

	for _, addr := range []string{want, strings.TrimPrefix(want, "bitcoincash:"), "1Kz9fVSUMshzPejpzW9D95kScgA3rY6QxF"} {
		d, err := Decode(bch, addr)
		require.NoError(t, err, addr)
		if !bytes.Equal(d.Payload, payload) || d.Format != chain.FormatP2PKH {
			t.Errorf("Decode(%s) = %s %x, want p2pkh %s", addr, d.Format, d.Payload, testHash)
		}
	}

	testnet := proto(t, "BCH", chain.Testnet)
	got, err = EncodeCashAddr(testnet, payload, chain.FormatP2PKH)
	require.NoError(t, err)
	if got != "bchtest:qrgyzd9emkmnnxg8v463fkzx4fy4knj8fsk54yjx9v" {
		t.Errorf("EncodeCashAddr testnet = %s", got)
	}

	_, err = EncodeCashAddr(proto(t, "BTC", chain.Mainnet), payload, chain.FormatP2PKH)
	if !errors.Is(err, chain.ErrUnsupportedFormat) {
		t.Errorf("EncodeCashAddr on BTC error = %v, want ErrUnsupportedFormat", err)
	}

	// A mainnet cashaddr does not decode on testnet.
	_, err = Decode(testnet, want)
	if !errors.Is(err, chain.ErrInvalidAddress) {
		t.Errorf("Decode mainnet cashaddr on testnet error = %v, want ErrInvalidAddress", err)
	}
}

func TestSegwitDerivation(t *testing.T) {
	btc := proto(t, "BTC", chain.Mainnet)
	hash := mustHex(t, testHash)

	script, err := RedeemScript(btc, hash)
	require.NoError(t, err)
	if want := "0014" + testHash; hex.EncodeToString(script) != want {
		t.Errorf("RedeemScript = %x, want %s", script, want)
	}

	got, err := SegwitP2SH(btc, hash)
	require.NoError(t, err)
	if want := "3AhjTiWHhVJAi1s5CfKMcLzYps12x3gZhg"; got != want {
		t.Errorf("SegwitP2SH = %s, want %s", got, want)
	}

	got, err = Bech32(btc, hash)
	require.NoError(t, err)
	if want := "bc1q6pqnfwwakuuejpm9w52ds342f9d5u36v0qnz7c"; got != want {
		t.Errorf("Bech32 = %s, want %s", got, want)
	}

	_, err = RedeemScript(proto(t, "DOGE", chain.Mainnet), hash)
	if !errors.Is(err, chain.ErrUnsupportedFormat) {
		t.Errorf("RedeemScript on DOGE error = %v, want ErrUnsupportedFormat", err)
	}
	_, err = RedeemScript(btc, hash[:19])
	if !errors.Is(err, chain.ErrInvalidAddress) {
		t.Errorf("RedeemScript short hash error = %v, want ErrInvalidAddress", err)
	}
}

func TestEthereum(t *testing.T) {
	eth := proto(t, "ETH", chain.Mainnet)
	payload := mustHex(t, "7e5f4552091a69125d5dfcb7b8c2659029395bdf")

	got, err := Encode(eth, payload, chain.FormatP2PKH)
	require.NoError(t, err)
	if want := "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"; got != want {
		t.Errorf("Encode = %s, want %s", got, want)
	}

	for _, addr := range []string{
		"0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf",
		"7E5F4552091A69125d5DfCb7b8C2659029395Bdf",
		"0x7e5f4552091a69125d5dfcb7b8c2659029395bdf",
		"7E5F4552091A69125D5DFCB7B8C2659029395BDF",
	} {
		d, err := Decode(eth, addr)
		require.NoError(t, err, addr)
		if !bytes.Equal(d.Payload, payload) {
			t.Errorf("Decode(%s) = %x", addr, d.Payload)
		}
	}

	_, err = Decode(eth, "0x7e5F4552091A69125d5DfCb7b8C2659029395Bdf")
	if !errors.Is(err, chain.ErrInvalidAddress) || !errors.Is(err, codec.ErrChecksum) {
		t.Errorf("Decode bad EIP-55 error = %v, want ErrInvalidAddress wrapping ErrChecksum", err)
	}
	for _, addr := range []string{"0x7e5f4552091a69125d5dfcb7b8c2659029395b", "0x7e5f4552091a69125d5dfcb7b8c2659029395bdg"} {
		if _, err := Decode(eth, addr); !errors.Is(err, chain.ErrInvalidAddress) {
			t.Errorf("Decode(%s) error = %v, want ErrInvalidAddress", addr, err)
		}
	}
}

func TestChecksummed(t *testing.T) {
	tests := []struct{ in, want string }{
		{"0x00a329c0648769a73afac7f9381e08fb43dbea72", "00a329c0648769A73afAc7F9381E08FB43dBEA72"},
		{"b92702b3eefb3c2049aeb845b0335b283e11e9c6", "b92702b3EeFB3c2049aEB845B0335b283e11E9c6"},
	}
	for _, tt := range tests {
		got, err := Checksummed(tt.in)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("Checksummed(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := Checksummed("0x1234"); !errors.Is(err, chain.ErrInvalidAddress) {
		t.Errorf("Checksummed short error = %v, want ErrInvalidAddress", err)
	}
}

func TestMonero(t *testing.T) {
	xmr := proto(t, "XMR", chain.Mainnet)

	std := "42ey1afDFnn4886T7196doS9GPMzexD9gXpsZJDwVjeRVdFCSoHnv7KPbBeGpzJBzHRCAs9UxqeoyFQMYbqSWYTfJJQAWDm"
	d, err := Decode(xmr, std)
	require.NoError(t, err)
	if d.Format != chain.FormatMonero || len(d.Payload) != 64 || d.PaymentID != nil {
		t.Errorf("Decode standard = %s len %d pid %x", d.Format, len(d.Payload), d.PaymentID)
	}
	got, err := Encode(xmr, d.Payload, chain.FormatMonero)
	require.NoError(t, err)
	if got != std {
		t.Errorf("Encode = %s, want %s", got, std)
	}

	integrated := "4CMe2PUhs4J4886T7196doS9GPMzexD9gXpsZJDwVjeRVdFCSoHnv7KPbBeGpzJBzHRCAs9UxqeoyFQMYbqSWYTfSbLRB61BQVATzerHGj"
	d2, err := Decode(xmr, integrated)
	require.NoError(t, err)
	if d2.Format != chain.FormatMoneroIntegrated {
		t.Errorf("Decode integrated format = %s", d2.Format)
	}
	if hex.EncodeToString(d2.PaymentID) != "0123456789abcdef" {
		t.Errorf("PaymentID = %x, want 0123456789abcdef", d2.PaymentID)
	}
	spend, view := MoneroKeys(d2)
	spend0, view0 := MoneroKeys(d)
	if !bytes.Equal(spend, spend0) || !bytes.Equal(view, view0) {
		t.Error("integrated address keys differ from standard address keys")
	}

	mutated := []byte(std)
	mutated[20] = '1'
	_, err = Decode(xmr, string(mutated))
	if !errors.Is(err, codec.ErrChecksum) {
		t.Errorf("Decode mutated error = %v, want ErrChecksum", err)
	}

	if _, err := Decode(proto(t, "XMR", chain.Testnet), std); !errors.Is(err, chain.ErrInvalidAddress) {
		t.Errorf("Decode mainnet on stagenet error = %v, want ErrInvalidAddress", err)
	}
}

func TestSolana(t *testing.T) {
	sol := proto(t, "SOL", chain.Mainnet)
	key := bytes.Repeat([]byte{0x01}, 32)

	addr, err := Encode(sol, key, chain.FormatSolana)
	require.NoError(t, err)
	d, err := Decode(sol, addr)
	require.NoError(t, err)
	if !bytes.Equal(d.Payload, key) {
		t.Errorf("Decode = %x, want %x", d.Payload, key)
	}

	// The system program id is 32 zero bytes.
	d, err = Decode(sol, "11111111111111111111111111111111")
	require.NoError(t, err)
	if !bytes.Equal(d.Payload, make([]byte, 32)) {
		t.Errorf("Decode system program = %x", d.Payload)
	}

	if _, err := Decode(sol, "1111111111111111111111111111111"); !errors.Is(err, chain.ErrInvalidAddress) {
		t.Errorf("Decode 31 bytes error = %v, want ErrInvalidAddress", err)
	}
}

func TestLeadingSymbols(t *testing.T) {
	tests := []struct {
		ver  uint64
		want string
	}{
		{0x00, "1"},
		{0x05, "3"},
		{0x6f, "mn"},
		{0xc4, "2"},
		{0x1e, "D"},
		{0x16, "9A"},
		{0x27, "GH"},
		{0x4c, "X"},
		{0x10, "7"},
		{0x073f, "D"},
		{0x071a, "D"},
		{0x0f21, "T"},
		{0x0e6c, "S"},
	}
	for _, tt := range tests {
		if got := LeadingSymbols(tt.ver); got != tt.want {
			t.Errorf("LeadingSymbols(%#x) = %q, want %q", tt.ver, got, tt.want)
		}
	}
}

// Every encoded address starts with a symbol in the predicted range. When
// the two bounds encode to different lengths the range wraps around the end
// of the alphabet.
func TestLeadingSymbolsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ver := rapid.Uint64Range(1, 0xffff).Draw(t, "ver")
		payload := rapid.SliceOfN(rapid.Byte(), 20, 20).Draw(t, "payload")

		prefix := []byte{byte(ver)}
		if ver > 0xff {
			prefix = []byte{byte(ver >> 8), byte(ver)}
		}
		addr := codec.CheckEncode(append(prefix, payload...))
		lead := LeadingSymbols(ver)

		got := strings.IndexByte(codec.Base58Alphabet, addr[0])
		lo := strings.IndexByte(codec.Base58Alphabet, lead[0])
		hi := strings.IndexByte(codec.Base58Alphabet, lead[len(lead)-1])
		ok := got >= lo && got <= hi
		if lo > hi {
			ok = got >= lo || got <= hi
		}
		if !ok {
			t.Fatalf("address %s outside predicted range %q", addr, lead)
		}
	})
}

func TestRoundTripProperty(t *testing.T) {
	cases := []struct {
		coin   string
		format chain.AddrFormat
	}{
		{"BTC", chain.FormatP2PKH},
		{"BTC", chain.FormatP2SH},
		{"BTC", chain.FormatBech32},
		{"BTC", chain.FormatP2WSH},
		{"ZEC", chain.FormatShielded},
		{"XMR", chain.FormatMoneroSub},
		{"ETH", chain.FormatP2PKH},
		{"SOL", chain.FormatSolana},
	}
	for _, c := range cases {
		p := proto(t, c.coin, chain.Mainnet)
		n := p.AddrLen(c.format)
		t.Run(c.coin+"/"+string(c.format), func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				payload := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "payload")
				addr, err := Encode(p, payload, c.format)
				if err != nil {
					t.Fatalf("Encode: %v", err)
				}
				d, err := Decode(p, addr)
				if err != nil {
					t.Fatalf("Decode(%s): %v", addr, err)
				}
				if !bytes.Equal(d.Payload, payload) || d.Format != c.format {
					t.Fatalf("Decode(%s) = %s %x, want %s %x", addr, d.Format, d.Payload, c.format, payload)
				}
			})
		})
	}
}

// Changing any single character of a Base58Check address makes it invalid.
func TestMutationProperty(t *testing.T) {
	btc := proto(t, "BTC", chain.Mainnet)
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 20, 20).Draw(t, "payload")
		addr, err := Encode(btc, payload, chain.FormatP2PKH)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		i := rapid.IntRange(0, len(addr)-1).Draw(t, "index")
		c := rapid.SampledFrom([]byte(codec.Base58Alphabet)).Filter(func(c byte) bool {
			return c != addr[i]
		}).Draw(t, "char")

		mutated := []byte(addr)
		mutated[i] = c
		d, err := Decode(btc, string(mutated))
		if err == nil && bytes.Equal(d.Payload, payload) {
			t.Fatalf("mutated address %s decoded to the original payload", mutated)
		}
	})
}
