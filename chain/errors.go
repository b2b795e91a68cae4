package chain

import "errors"

var (
	// ErrUnresolvedFork is emitted (as a collected error, not a panic) when a
	// fork point has no matching fork-resolution artifact.
	ErrUnresolvedFork = errors.New("chain: unresolved fork")
	// ErrInvalidResolution is emitted when a fork-resolution artifact's
	// chosen next_root does not match any candidate at its key.
	ErrInvalidResolution = errors.New("chain: fork resolution target not among candidates")
	// ErrConflictingResolutions is emitted when two fork-resolution
	// artifacts for the same (sequence, prev_root) disagree.
	ErrConflictingResolutions = errors.New("chain: conflicting fork resolutions")
	// ErrNoGenesisCandidate names the case where nothing extends the
	// bootstrap point (start_seq, start_prev_root). Build does not return
	// it: such a selection yields a head at the bootstrap point with no new
	// receipts.
	ErrNoGenesisCandidate = errors.New("chain: no candidate receipt at bootstrap point")
	// ErrSignerNotTrustAnchor is emitted when a receipt's valid signer is
	// not authorized for corridor_receipt under enforced trust anchors.
	ErrSignerNotTrustAnchor = errors.New("chain: signer not a trust anchor")
)
