package checkpoint

// TrustAnchors answers whether did is authorized for attestationKind within
// the corridor being verified (spec §4.9), the same seam package chain
// defines for receipt signers.
type TrustAnchors interface {
	IsTrustAnchor(did string, attestationKind string) bool
}

// ThresholdPolicy decides whether a checkpoint's verified signer set
// satisfies the corridor's checkpoint-signing threshold.
type ThresholdPolicy interface {
	CheckpointThresholdSatisfied(signers []string) bool
}

// AttestationKindCheckpoint is the attestation kind name Verify consults
// TrustAnchors with.
const AttestationKindCheckpoint = "corridor_checkpoint"

// Options configures a single Verify call. The zero value enforces neither
// trust anchors nor a signing threshold — both are opt-in.
type Options struct {
	TrustAnchors        TrustAnchors
	EnforceTrustAnchors bool
	ThresholdPolicy     ThresholdPolicy
	EnforceThreshold    bool
}

// Option configures a Verify call.
type Option func(*Options)

// WithTrustAnchors enables checkpoint signer trust-anchor enforcement.
func WithTrustAnchors(anchors TrustAnchors) Option {
	return func(o *Options) {
		o.TrustAnchors = anchors
		o.EnforceTrustAnchors = true
	}
}

// WithThresholdPolicy enables checkpoint-signing threshold enforcement.
func WithThresholdPolicy(policy ThresholdPolicy) Option {
	return func(o *Options) {
		o.ThresholdPolicy = policy
		o.EnforceThreshold = true
	}
}
