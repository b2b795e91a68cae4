package checkpoint

import "errors"

var (
	// ErrFieldMismatch is returned when a checkpoint's bound fields do not
	// match the canonical head it is being verified against.
	ErrFieldMismatch = errors.New("checkpoint: field does not match computed head")
	// ErrNoValidSignature is returned when a checkpoint carries no proof
	// that verifies.
	ErrNoValidSignature = errors.New("checkpoint: no valid signature")
	// ErrSignerNotTrustAnchor describes a checkpoint's valid signer that is
	// not authorized for corridor_checkpoint under enforced trust anchors.
	// Verify does not return it directly: such a signer is skipped, and when
	// no signer remains its text appears in the ErrNoValidSignature error.
	ErrSignerNotTrustAnchor = errors.New("checkpoint: signer not a trust anchor")
	// ErrThresholdNotSatisfied is returned when a checkpoint's valid signer
	// set does not satisfy the checkpoint-signing threshold.
	ErrThresholdNotSatisfied = errors.New("checkpoint: signer set does not satisfy threshold")
	// ErrCheckpointRequired is returned when an inclusion proof carries a
	// checkpoint_ref but Verify was not given the checkpoint it refers to.
	ErrCheckpointRequired = errors.New("checkpoint: proof is bound to a checkpoint, none supplied")
	// ErrCheckpointRefMismatch is returned when an inclusion proof's
	// checkpoint_ref digest does not match the supplied checkpoint's own
	// computed digest.
	ErrCheckpointRefMismatch = errors.New("checkpoint: checkpoint_ref digest does not match supplied checkpoint")
)
