// Package codec implements the text encodings used for addresses and keys:
// Base58Check, Bech32 segwit addresses, CashAddr and Monero's block Base58.
package codec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Base58Alphabet is the Bitcoin base58 alphabet.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ChecksumLen is the number of double-SHA256 bytes appended by CheckEncode.
const ChecksumLen = 4

// Checksum returns the first four bytes of SHA256(SHA256(b)).
func Checksum(b []byte) []byte {
	return chainhash.DoubleHashB(b)[:ChecksumLen]
}

// CheckEncode appends the checksum of payload and encodes the result in
// base58. Each leading zero byte becomes a literal '1'.
func CheckEncode(payload []byte) string {
	buf := make([]byte, 0, len(payload)+ChecksumLen)
	buf = append(buf, payload...)
	buf = append(buf, Checksum(payload)...)
	return base58.Encode(buf)
}

// CheckDecode reverses CheckEncode and returns the payload with the checksum
// stripped.
func CheckDecode(s string) ([]byte, error) {
	raw, err := DecodeBase58(s)
	if err != nil {
		return nil, err
	}
	if len(raw) < ChecksumLen {
		str := fmt.Sprintf("base58check data is %d bytes, shorter than its checksum", len(raw))
		return nil, makeError(ErrInvalidLength, str)
	}

	payload, sum := raw[:len(raw)-ChecksumLen], raw[len(raw)-ChecksumLen:]
	if !bytes.Equal(Checksum(payload), sum) {
		return nil, makeError(ErrChecksum, "base58check checksum mismatch")
	}
	return payload, nil
}

// EncodeBase58 encodes b in base58 without a checksum.
func EncodeBase58(b []byte) string {
	return base58.Encode(b)
}

// DecodeBase58 decodes a base58 string without checksum verification.
func DecodeBase58(s string) ([]byte, error) {
	if s == "" {
		return nil, makeError(ErrInvalidLength, "empty base58 string")
	}
	if i := strings.IndexFunc(s, func(r rune) bool {
		return !strings.ContainsRune(Base58Alphabet, r)
	}); i >= 0 {
		str := fmt.Sprintf("invalid base58 character %q at position %d", s[i], i)
		return nil, makeError(ErrInvalidCharacter, str)
	}
	return base58.Decode(s), nil
}
