package canon

import "errors"

var (
	// ErrNonDeterministicNumber is returned for any float32/float64 value or
	// any json.Number containing a fractional part or exponent.
	ErrNonDeterministicNumber = errors.New("canon: float values are not canonicalizable, use a decimal string")
	// ErrUnsupportedType is returned for any Go value that is not one of the
	// supported canonical shapes.
	ErrUnsupportedType = errors.New("canon: unsupported type for canonicalization")
	// ErrAmbiguousTimestamp is returned for a Naive Time value when the
	// caller has not opted into WithAssumeUTC.
	ErrAmbiguousTimestamp = errors.New("canon: naive datetime requires an explicit UTC assumption")
	// ErrInvalidDigest is returned when decoding a digest from hex or bytes
	// of the wrong length.
	ErrInvalidDigest = errors.New("canon: digest must be 32 bytes (64 hex characters)")
)
