package cas

import "errors"

var (
	// ErrNotFound is returned when no object exists at the requested
	// (type, digest).
	ErrNotFound = errors.New("cas: object not found")
	// ErrHashCollision is returned by Put when a file already exists at the
	// target digest with different content.
	ErrHashCollision = errors.New("cas: hash collision, existing content differs")
	// ErrIntegrityWarning is returned by Get (but does not prevent the read)
	// when the on-disk content no longer hashes to the digest in its path.
	ErrIntegrityWarning = errors.New("cas: integrity warning, on-disk content does not match its digest")
	// ErrMissingTransitiveReference is returned by CheckCompleteness when a
	// referenced artifact is absent from the store.
	ErrMissingTransitiveReference = errors.New("cas: missing transitive reference")
	// ErrInvalidDigest is returned for a digest that is not 64 lowercase hex
	// characters.
	ErrInvalidDigest = errors.New("cas: digest must be 64 lowercase hex characters")
)
