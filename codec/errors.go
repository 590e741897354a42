package codec

import "hidim/internal/fault"

// Error is the structured error returned by Encode and Decode. Use
// errors.As to extract it, or IsKind to test its category.
type Error = fault.Error

// Kind is a stable error category.
type Kind = fault.Kind

const (
	KindDigestUnavailable = fault.DigestUnavailable
	KindMalformedHeader   = fault.MalformedHeader
	KindOutOfBounds       = fault.OutOfBounds
	KindInvalidImage      = fault.InvalidImage
	KindLengthMismatch    = fault.LengthMismatch
	KindKeyMismatch       = fault.KeyMismatch
	KindDigestMismatch    = fault.DigestMismatch
)

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return fault.IsKind(err, kind)
}
