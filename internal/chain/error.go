package chain

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidAddress indicates an address that does not decode under the
	// protocol: no matching version prefix, wrong payload length, a bad
	// checksum or a malformed bech32 string.
	ErrInvalidAddress = ErrorKind("ErrInvalidAddress")

	// ErrUnsupportedFormat indicates an address format the protocol lacks.
	ErrUnsupportedFormat = ErrorKind("ErrUnsupportedFormat")

	// ErrInvalidWifVersion indicates a WIF whose prefix matches none of the
	// protocol's registered WIF versions.
	ErrInvalidWifVersion = ErrorKind("ErrInvalidWifVersion")

	// ErrInvalidKeyLength indicates a secret of the wrong length.
	ErrInvalidKeyLength = ErrorKind("ErrInvalidKeyLength")

	// ErrInvalidCompressionSuffix indicates a WIF whose extra trailing byte
	// is not 0x01.
	ErrInvalidCompressionSuffix = ErrorKind("ErrInvalidCompressionSuffix")

	// ErrUnsupportedPubkeyType indicates a pubkey type the protocol lacks.
	ErrUnsupportedPubkeyType = ErrorKind("ErrUnsupportedPubkeyType")

	// ErrCompressionNotAllowed indicates a compressed key was requested for
	// a pubkey type without a compression suffix.
	ErrCompressionNotAllowed = ErrorKind("ErrCompressionNotAllowed")

	// ErrInvalidKey indicates a secret that is zero or equal to the group
	// order.
	ErrInvalidKey = ErrorKind("ErrInvalidKey")

	// ErrUnknownCoin indicates no protocol is registered for a coin/network.
	ErrUnknownCoin = ErrorKind("ErrUnknownCoin")

	// ErrDisabledCoin indicates a coin whose trust level forbids generation.
	ErrDisabledCoin = ErrorKind("ErrDisabledCoin")

	// ErrDataIntegrity indicates reference data that disagrees with the
	// values derived from it or with a built-in protocol.
	ErrDataIntegrity = ErrorKind("ErrDataIntegrity")

	// ErrInvalidProtocol indicates a Spec that violates a construction
	// invariant.
	ErrInvalidProtocol = ErrorKind("ErrInvalidProtocol")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an address, key or registry error. Err holds the
// ErrorKind and Cause, when set, the lower-level error that triggered it, so
// that errors.Is matches both.
type Error struct {
	Err         error
	Description string
	Cause       error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Cause != nil {
		return e.Description + ": " + e.Cause.Error()
	}
	return e.Description
}

// Unwrap returns the error kind and the cause.
func (e Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// WrapError creates an Error of the given kind caused by err.
func WrapError(kind ErrorKind, desc string, err error) Error {
	return Error{Err: kind, Description: desc, Cause: err}
}
