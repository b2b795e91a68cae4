package chain

import "github.com/momentum-sez/corridor-core/receipt"

// Options configures a single Build call. The zero value runs with no
// schema validation, no trust-anchor enforcement, and no threshold
// enforcement — every policy is opt-in, matching the CLI flags named in
// spec §6 (--enforce-trust-anchors, --enforce-receipt-threshold, ...).
type Options struct {
	SchemaValidator     SchemaValidator
	SchemaID            string
	DigestPolicy        receipt.ExpectedDigestPolicy
	TrustAnchors        TrustAnchors
	EnforceTrustAnchors bool
	ThresholdPolicy     ThresholdPolicy
	EnforceThreshold    bool
	Commitment          CommitmentClassifier
	ForkResolutions     []ForkResolution
	Bootstrap           *Bootstrap
}

// Option configures a Build call.
type Option func(*Options)

// WithSchemaValidator wires a pluggable schema collaborator, checked against
// schemaID before any receipt is admitted into grouping.
func WithSchemaValidator(v SchemaValidator, schemaID string) Option {
	return func(o *Options) {
		o.SchemaValidator = v
		o.SchemaID = schemaID
	}
}

// WithDigestPolicy supplies the expected ruleset/lawpack digest sets every
// receipt is checked against (spec §4.4).
func WithDigestPolicy(p receipt.ExpectedDigestPolicy) Option {
	return func(o *Options) { o.DigestPolicy = p }
}

// WithTrustAnchors enables --enforce-trust-anchors semantics: a receipt
// signer not authorized by anchors for corridor_receipt is dropped.
func WithTrustAnchors(anchors TrustAnchors) Option {
	return func(o *Options) {
		o.TrustAnchors = anchors
		o.EnforceTrustAnchors = true
	}
}

// WithReceiptThreshold enables --enforce-receipt-threshold semantics: a
// logical candidate whose affirmative signer set does not satisfy policy is
// dropped.
func WithReceiptThreshold(policy ThresholdPolicy) Option {
	return func(o *Options) {
		o.ThresholdPolicy = policy
		o.EnforceThreshold = true
	}
}

// WithCommitmentClassifier supplies the signed_parties/signed_parties_all
// split (spec §9). Without it every valid signer counts as affirmative.
func WithCommitmentClassifier(c CommitmentClassifier) Option {
	return func(o *Options) { o.Commitment = c }
}

// WithForkResolutions supplies the fork-resolution artifacts consulted at
// step 5 of the algorithm.
func WithForkResolutions(resolutions ...ForkResolution) Option {
	return func(o *Options) { o.ForkResolutions = append(o.ForkResolutions, resolutions...) }
}

// WithBootstrap seeds canonical selection from a verified checkpoint
// (--from-checkpoint).
func WithBootstrap(b Bootstrap) Option {
	return func(o *Options) { o.Bootstrap = &b }
}
