package address

import (
	"github.com/klingon-exchange/coinkit/internal/codec"
	"github.com/klingon-exchange/coinkit/pkg/helpers"
)

// LeadingSymbols predicts the first character of every Base58Check address
// with version number ver and a 20-byte payload. It encodes the all-zero and
// the all-0xff payload and compares their first characters. A single
// character means every address starts with it. Two characters are the
// bounds of the range the leading digit falls in, depending on the payload.
//
// Version zero always yields "1", since a leading zero byte encodes as '1'.
func LeadingSymbols(ver uint64) string {
	if ver == 0 {
		return "1"
	}

	prefix := helpers.MinimalBigEndian(ver)
	lo := codec.CheckEncode(append(prefix, make([]byte, 20)...))[0]
	hi := codec.CheckEncode(append(prefix, helpers.Repeat(0xff, 20)...))[0]
	if lo == hi {
		return string(lo)
	}
	return string([]byte{lo, hi})
}
