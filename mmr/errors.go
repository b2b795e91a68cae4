package mmr

import "errors"

var (
	// ErrInvalidLeaf is returned when a leaf hash is not a well-formed 32-byte digest.
	ErrInvalidLeaf = errors.New("mmr: leaf hash must be 32 bytes")
	// ErrInvalidNode names a node hash operand that is not a well-formed 32-byte digest.
	// No function in this package returns it: NodeHash takes fixed-size Digest values.
	ErrInvalidNode = errors.New("mmr: node hash must be 32 bytes")
	// ErrEmptyAccumulator is returned when bagging is attempted with no peaks.
	ErrEmptyAccumulator = errors.New("mmr: cannot bag an empty peak set")
	// ErrIndexOutOfRange is returned when a leaf index falls outside [0, size).
	ErrIndexOutOfRange = errors.New("mmr: leaf index out of range")
	// ErrInvalidSize is returned when an accumulator size is not positive where one is required.
	ErrInvalidSize = errors.New("mmr: size must be positive")
	// ErrPeakPlanMismatch is returned when a proof's declared peak selection disagrees
	// with the peak plan implied by the accumulator size.
	ErrPeakPlanMismatch = errors.New("mmr: peak selection inconsistent with accumulator size")
	// ErrVerifyFailed is returned when a proof fails to reproduce the claimed root.
	ErrVerifyFailed = errors.New("mmr: inclusion proof verification failed")
)
