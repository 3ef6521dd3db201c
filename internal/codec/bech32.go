package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// MaxWitnessVersion is the highest witness version a segwit address may carry.
const MaxWitnessVersion = 16

// SegwitEncode encodes a witness program under the given human-readable
// prefix. The witness version occupies the first 5-bit group, the program is
// regrouped from 8 to 5 bits with padding.
func SegwitEncode(hrp string, version byte, program []byte) (string, error) {
	if version > MaxWitnessVersion {
		str := fmt.Sprintf("witness version %d exceeds %d", version, MaxWitnessVersion)
		return "", makeError(ErrInvalidWitnessVersion, str)
	}
	if err := checkProgramLen(version, len(program)); err != nil {
		return "", err
	}

	groups, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", makeError(ErrInvalidFormat, err.Error())
	}
	data := make([]byte, 0, len(groups)+1)
	data = append(data, version)
	data = append(data, groups...)

	s, err := bech32.Encode(strings.ToLower(hrp), data)
	if err != nil {
		return "", mapBech32Error(err)
	}
	return s, nil
}

// SegwitDecode decodes a segwit address, requiring its human-readable
// prefix to equal hrp. It returns the witness version and program.
func SegwitDecode(hrp, s string) (byte, []byte, error) {
	gotHRP, data, err := bech32.Decode(s)
	if err != nil {
		return 0, nil, mapBech32Error(err)
	}
	if !strings.EqualFold(gotHRP, hrp) {
		str := fmt.Sprintf("human-readable prefix %q, want %q", gotHRP, hrp)
		return 0, nil, makeError(ErrInvalidHRP, str)
	}
	if len(data) == 0 {
		return 0, nil, makeError(ErrInvalidLength, "segwit address has no data")
	}

	version := data[0]
	if version > MaxWitnessVersion {
		str := fmt.Sprintf("witness version %d exceeds %d", version, MaxWitnessVersion)
		return 0, nil, makeError(ErrInvalidWitnessVersion, str)
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return 0, nil, makeError(ErrInvalidPadding, err.Error())
	}
	if err := checkProgramLen(version, len(program)); err != nil {
		return 0, nil, err
	}
	return version, program, nil
}

// checkProgramLen applies the BIP141 witness program size limits.
func checkProgramLen(version byte, n int) error {
	if n < 2 || n > 40 {
		str := fmt.Sprintf("witness program is %d bytes, want 2-40", n)
		return makeError(ErrInvalidLength, str)
	}
	if version == 0 && n != 20 && n != 32 {
		str := fmt.Sprintf("version 0 witness program is %d bytes, want 20 or 32", n)
		return makeError(ErrInvalidLength, str)
	}
	return nil
}

func mapBech32Error(err error) error {
	var (
		checksumErr bech32.ErrInvalidChecksum
		charErr     bech32.ErrInvalidCharacter
		nonCharset  bech32.ErrNonCharsetChar
		lengthErr   bech32.ErrInvalidLength
	)
	switch {
	case errors.As(err, &checksumErr):
		return Error{Err: ErrChecksum, Description: "bech32 " + err.Error()}
	case errors.As(err, &charErr), errors.As(err, &nonCharset):
		return Error{Err: ErrInvalidCharacter, Description: "bech32 " + err.Error()}
	case errors.As(err, &lengthErr):
		return Error{Err: ErrInvalidLength, Description: "bech32 " + err.Error()}
	}
	return Error{Err: ErrInvalidFormat, Description: "bech32 " + err.Error()}
}
