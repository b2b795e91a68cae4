package receipt

import "errors"

var (
	// ErrCorridorMismatch is returned when a receipt's corridor_id does not
	// match the containing module's id.
	ErrCorridorMismatch = errors.New("receipt: corridor_id mismatch")
	// ErrNextRootMismatch is returned when a receipt's declared next_root
	// does not match its recomputed value.
	ErrNextRootMismatch = errors.New("receipt: next_root mismatch")
	// ErrDigestSetMismatch is returned when a receipt's lawpack or ruleset
	// digest set does not satisfy the expected set policy.
	ErrDigestSetMismatch = errors.New("receipt: digest set mismatch")
	// ErrInvalidDigestRef is returned for a digest-set entry that is
	// neither a 64-hex string nor a well-formed typed reference.
	ErrInvalidDigestRef = errors.New("receipt: invalid digest reference")
	// ErrRegistryConflict is returned when a transition envelope declares a
	// digest that conflicts with the transition-type registry snapshot it
	// is bound to.
	ErrRegistryConflict = errors.New("receipt: transition digest conflicts with registry snapshot")
	// ErrMissingTransitionKind is returned when a transition envelope
	// carries neither "kind" nor the legacy "transition_kind".
	ErrMissingTransitionKind = errors.New("receipt: transition envelope missing kind")
)
