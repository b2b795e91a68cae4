package canon

import "time"

// Time wraps a time.Time together with a flag recording whether its offset
// is a trustworthy UTC offset or merely assumed. Corridor objects that carry
// datetimes (issued_at, effective_at, expires_at, ...) use Time rather than
// the bare standard-library type so that Canonicalize can refuse to guess.
type Time struct {
	t     time.Time
	naive bool
}

// UTC wraps t as a UTC instant: t may carry any Location, which is
// discarded; only the absolute instant is kept.
func UTC(t time.Time) Time {
	return Time{t: t.UTC(), naive: false}
}

// Naive wraps t without asserting a UTC offset. Canonicalizing a Naive value
// fails with ErrAmbiguousTimestamp unless the caller passes WithAssumeUTC.
func Naive(t time.Time) Time {
	return Time{t: t, naive: true}
}

// Now returns the current instant as a UTC Time.
func Now() Time {
	return UTC(time.Now())
}

// IsNaive reports whether t was constructed with Naive.
func (t Time) IsNaive() bool {
	return t.naive
}

// Std returns the wrapped standard-library time.Time.
func (t Time) Std() time.Time {
	return t.t
}

// canonicalString renders t as RFC3339 with second precision and a literal
// "Z" suffix, the sole datetime representation this codec ever emits.
func (t Time) canonicalString() string {
	return t.t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z")
}
