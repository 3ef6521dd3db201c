package codec

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific codec failure.
const (
	// ErrChecksum indicates the embedded checksum does not match the data.
	ErrChecksum = ErrorKind("ErrChecksum")

	// ErrInvalidCharacter indicates a character outside the encoding alphabet.
	ErrInvalidCharacter = ErrorKind("ErrInvalidCharacter")

	// ErrInvalidLength indicates the encoded or decoded data has an
	// impossible length.
	ErrInvalidLength = ErrorKind("ErrInvalidLength")

	// ErrInvalidHRP indicates a bech32 or cashaddr human-readable prefix
	// that differs from the expected one.
	ErrInvalidHRP = ErrorKind("ErrInvalidHRP")

	// ErrInvalidPadding indicates non-zero padding bits when regrouping
	// 5-bit groups back into bytes.
	ErrInvalidPadding = ErrorKind("ErrInvalidPadding")

	// ErrInvalidWitnessVersion indicates a witness version outside 0-16.
	ErrInvalidWitnessVersion = ErrorKind("ErrInvalidWitnessVersion")

	// ErrInvalidFormat indicates a structurally malformed string.
	ErrInvalidFormat = ErrorKind("ErrInvalidFormat")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to encoding or decoding. It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
