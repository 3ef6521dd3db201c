package helpers

import "math/bits"

// Repeat returns a slice of n copies of v.
func Repeat(v byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// MinimalBigEndian encodes v as big-endian using the fewest bytes that hold
// its bit length. Zero encodes as a single 0x00 byte.
func MinimalBigEndian(v uint64) []byte {
	n := (bits.Len64(v) + 7) / 8
	if n == 0 {
		n = 1
	}
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// BigEndianUint converts up to eight big-endian bytes into an integer.
func BigEndianUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// PadRight pads a byte slice with zeros on the right to reach the specified length.
func PadRight(b []byte, length int) []byte {
	if len(b) >= length {
		return b
	}
	result := make([]byte, length)
	copy(result, b)
	return result
}
