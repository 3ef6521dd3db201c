package codec

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Monero splits data into 8-byte blocks that encode to 11 characters each.
// A trailing partial block of n bytes encodes to xmrEncodedSizes[n] chars.
const (
	xmrBlockSize        = 8
	xmrEncodedBlockSize = 11
)

var xmrEncodedSizes = [xmrBlockSize + 1]int{0, 2, 3, 5, 6, 7, 9, 10, 11}

var bigRadix = big.NewInt(58)

// Keccak256 returns the legacy (pre-NIST) Keccak-256 digest of data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// MoneroEncode encodes data with Monero's block base58.
func MoneroEncode(data []byte) string {
	var sb strings.Builder
	for len(data) > 0 {
		n := xmrBlockSize
		if len(data) < n {
			n = len(data)
		}
		sb.WriteString(xmrEncodeBlock(data[:n]))
		data = data[n:]
	}
	return sb.String()
}

func xmrEncodeBlock(block []byte) string {
	size := xmrEncodedSizes[len(block)]
	out := bytes.Repeat([]byte{Base58Alphabet[0]}, size)

	num := new(big.Int).SetBytes(block)
	mod := new(big.Int)
	for i := size - 1; i >= 0 && num.Sign() > 0; i-- {
		num.QuoRem(num, bigRadix, mod)
		out[i] = Base58Alphabet[mod.Int64()]
	}
	return string(out)
}

// MoneroDecode reverses MoneroEncode.
func MoneroDecode(s string) ([]byte, error) {
	if s == "" {
		return nil, makeError(ErrInvalidLength, "empty monero base58 string")
	}

	tail := len(s) % xmrEncodedBlockSize
	tailBytes := -1
	for n, size := range xmrEncodedSizes {
		if size == tail {
			tailBytes = n
			break
		}
	}
	if tailBytes < 0 {
		str := fmt.Sprintf("monero base58 length %d is not a valid block size", len(s))
		return nil, makeError(ErrInvalidLength, str)
	}

	out := make([]byte, 0, len(s)/xmrEncodedBlockSize*xmrBlockSize+tailBytes)
	for len(s) > 0 {
		chunk, n := s, tailBytes
		if len(s) >= xmrEncodedBlockSize {
			chunk, n = s[:xmrEncodedBlockSize], xmrBlockSize
		}
		block, err := xmrDecodeBlock(chunk, n)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		s = s[len(chunk):]
	}
	return out, nil
}

func xmrDecodeBlock(chunk string, n int) ([]byte, error) {
	num := new(big.Int)
	for i := 0; i < len(chunk); i++ {
		v := strings.IndexByte(Base58Alphabet, chunk[i])
		if v < 0 {
			str := fmt.Sprintf("invalid base58 character %q", chunk[i])
			return nil, makeError(ErrInvalidCharacter, str)
		}
		num.Mul(num, bigRadix)
		num.Add(num, big.NewInt(int64(v)))
	}
	if num.BitLen() > 8*n {
		str := fmt.Sprintf("monero base58 block %q overflows %d bytes", chunk, n)
		return nil, makeError(ErrInvalidFormat, str)
	}
	return num.FillBytes(make([]byte, n)), nil
}

// MoneroCheckEncode appends a 4-byte Keccak-256 checksum and encodes the
// result with MoneroEncode.
func MoneroCheckEncode(payload []byte) string {
	buf := make([]byte, 0, len(payload)+ChecksumLen)
	buf = append(buf, payload...)
	buf = append(buf, Keccak256(payload)[:ChecksumLen]...)
	return MoneroEncode(buf)
}

// MoneroCheckDecode reverses MoneroCheckEncode.
func MoneroCheckDecode(s string) ([]byte, error) {
	raw, err := MoneroDecode(s)
	if err != nil {
		return nil, err
	}
	if len(raw) < ChecksumLen {
		return nil, makeError(ErrInvalidLength, "monero data shorter than its checksum")
	}
	payload, sum := raw[:len(raw)-ChecksumLen], raw[len(raw)-ChecksumLen:]
	if !bytes.Equal(Keccak256(payload)[:ChecksumLen], sum) {
		return nil, makeError(ErrChecksum, "monero checksum mismatch")
	}
	return payload, nil
}
