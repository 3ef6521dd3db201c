package codec

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// CashAddr shares the bech32 character set but uses a 40-bit BCH code.
const cashCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// CashAddr type nibbles.
const (
	CashP2PKH byte = 0
	CashP2SH  byte = 1
)

const cashChecksumLen = 8

var cashGenerators = [5]uint64{
	0x98f2bc8e61, 0x79b76d99e2, 0xf33e5fb3c4, 0xae2eabe2a8, 0x1e4f43e470,
}

// hash sizes in bytes indexed by the 3-bit size field of the version byte.
var cashHashSizes = [8]int{20, 24, 28, 32, 40, 48, 56, 64}

func cashPolymod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := c >> 35
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)
		for i, g := range cashGenerators {
			if (c0>>uint(i))&1 == 1 {
				c ^= g
			}
		}
	}
	return c ^ 1
}

func cashPrefixData(prefix string) []byte {
	out := make([]byte, 0, len(prefix)+1)
	for i := 0; i < len(prefix); i++ {
		out = append(out, prefix[i]&0x1f)
	}
	return append(out, 0)
}

// CashAddrEncode encodes hash under prefix with the given type nibble.
func CashAddrEncode(prefix string, typ byte, hash []byte) (string, error) {
	size := -1
	for i, n := range cashHashSizes {
		if n == len(hash) {
			size = i
			break
		}
	}
	if size < 0 {
		str := fmt.Sprintf("cashaddr hash is %d bytes", len(hash))
		return "", makeError(ErrInvalidLength, str)
	}
	if typ > 0x0f {
		return "", makeError(ErrInvalidFormat, fmt.Sprintf("cashaddr type %d", typ))
	}

	raw := make([]byte, 0, len(hash)+1)
	raw = append(raw, typ<<3|byte(size))
	raw = append(raw, hash...)
	groups, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", makeError(ErrInvalidFormat, err.Error())
	}

	prefix = strings.ToLower(prefix)
	values := append(cashPrefixData(prefix), groups...)
	mod := cashPolymod(append(values, make([]byte, cashChecksumLen)...))

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte(':')
	for _, g := range groups {
		sb.WriteByte(cashCharset[g])
	}
	for i := 0; i < cashChecksumLen; i++ {
		sb.WriteByte(cashCharset[(mod>>(5*uint(cashChecksumLen-1-i)))&0x1f])
	}
	return sb.String(), nil
}

// CashAddrDecode decodes a CashAddr string. The prefix may be omitted, in
// which case defaultPrefix is assumed; when present it must match.
func CashAddrDecode(defaultPrefix, s string) (typ byte, hash []byte, err error) {
	if strings.ToLower(s) != s && strings.ToUpper(s) != s {
		return 0, nil, makeError(ErrInvalidFormat, "cashaddr has mixed case")
	}
	s = strings.ToLower(s)

	prefix, body, found := strings.Cut(s, ":")
	if !found {
		prefix, body = defaultPrefix, s
	}
	if prefix != strings.ToLower(defaultPrefix) {
		str := fmt.Sprintf("cashaddr prefix %q, want %q", prefix, defaultPrefix)
		return 0, nil, makeError(ErrInvalidHRP, str)
	}
	if len(body) <= cashChecksumLen {
		return 0, nil, makeError(ErrInvalidLength, "cashaddr too short")
	}

	values := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		v := strings.IndexByte(cashCharset, body[i])
		if v < 0 {
			str := fmt.Sprintf("invalid cashaddr character %q", body[i])
			return 0, nil, makeError(ErrInvalidCharacter, str)
		}
		values[i] = byte(v)
	}
	if cashPolymod(append(cashPrefixData(prefix), values...)) != 0 {
		return 0, nil, makeError(ErrChecksum, "cashaddr checksum mismatch")
	}

	raw, err := bech32.ConvertBits(values[:len(values)-cashChecksumLen], 5, 8, false)
	if err != nil {
		return 0, nil, makeError(ErrInvalidPadding, err.Error())
	}
	if len(raw) == 0 {
		return 0, nil, makeError(ErrInvalidLength, "cashaddr has no payload")
	}
	version := raw[0]
	if version&0x80 != 0 {
		return 0, nil, makeError(ErrInvalidFormat, "cashaddr reserved bit set")
	}
	hash = raw[1:]
	if want := cashHashSizes[version&0x07]; len(hash) != want {
		str := fmt.Sprintf("cashaddr hash is %d bytes, version says %d", len(hash), want)
		return 0, nil, makeError(ErrInvalidLength, str)
	}
	return version >> 3, hash, nil
}
