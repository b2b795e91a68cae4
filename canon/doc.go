// Package canon implements the single canonical-bytes codec used by every
// digest and signing input in the corridor core.
//
// Every other package that needs to hash or sign a corridor object — the
// receipt model, the proof envelope, checkpoints, watcher attestations —
// MUST build a map[string]any / []any / scalar representation of that object
// and pass it through Canonicalize or ComputeDigest. There is exactly one codec in
// this repository; canonicalize_scan_test.go enforces that no sibling
// package reaches for encoding/json.Marshal as an alternative path to
// compute a digest.
//
// # Rules
//
//   - Objects are represented as map[string]any and serialized with keys
//     sorted lexicographically (byte-wise over UTF-8, which matches
//     code-point order for the BMP).
//   - Arrays ([]any) preserve input order.
//   - Strings, booleans, and nil pass through unchanged.
//   - Integers (any Go int/uint kind, or a json.Number with no '.' or
//     exponent) serialize as bare decimal digits.
//   - Floats (float32, float64, or a json.Number containing '.' or an
//     exponent) are rejected with ErrNonDeterministicNumber: monetary and
//     other fractional values must be carried as decimal strings.
//   - Datetimes are represented with the Time wrapper in this package and
//     coerced to RFC3339 seconds-precision with a literal "Z" suffix. A Time
//     built with Naive requires WithAssumeUTC(true) to be passed to
//     Canonicalize, or it is rejected with ErrAmbiguousTimestamp.
//   - The codec always returns raw bytes, never a string, and never panics:
//     every failure mode returns a typed error.
package canon
