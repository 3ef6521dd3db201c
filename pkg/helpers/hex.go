package helpers

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToBytes converts a hex string (with or without 0x prefix) to bytes.
func HexToBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}

// HexToFixed decodes a hex string that must describe exactly n bytes.
func HexToFixed(s string, n int) ([]byte, error) {
	b, err := HexToBytes(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("hex value is %d bytes, want %d", len(b), n)
	}
	return b, nil
}

// BytesToHex converts bytes to a lowercase hex string without prefix.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// IsHex reports whether s is a non-empty string of hex digits.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
