package chain

import (
	"github.com/momentum-sez/corridor-core/mmr"
	"github.com/momentum-sez/corridor-core/receipt"
)

// SchemaValidator is the pluggable JSON Schema collaborator named in spec
// §1/§6: given a schema identifier and a decoded document, it returns a
// (possibly empty) list of human-readable validation errors. The core never
// ships or imports a schema engine; this is the seam a caller wires one in
// through.
type SchemaValidator interface {
	Validate(schemaID string, doc map[string]any) []string
}

// TrustAnchors answers whether did is authorized for attestationKind within
// the corridor being verified (spec §4.9). A nil TrustAnchors with
// EnforceTrustAnchors left false (the default) disables enforcement
// entirely, matching scenario D's "without enforcement, succeeds" case.
type TrustAnchors interface {
	IsTrustAnchor(did string, attestationKind string) bool
}

// AttestationKindReceipt is the attestation kind name chain consults
// TrustAnchors with, per the allow-list names in spec §4.9.
const AttestationKindReceipt = "corridor_receipt"

// SignerSet separates a logical receipt's valid signers into two counts
// per the spec §9 open question: Affirmative holds only signers whose
// commitment a CommitmentClassifier accepted (or, with no classifier
// supplied, every valid signer); All holds every valid signer regardless of
// commitment verb, kept for diagnostics and audit only, never for threshold
// evaluation.
type SignerSet struct {
	Affirmative []string
	All         []string
}

// CommitmentClassifier decides whether a verified signer's proof represents
// an affirmative commitment to the receipt, as opposed to some other
// recorded verb (e.g. an objection co-signed for audit purposes). Receipts
// with no such distinction in their payload can pass a nil classifier, under
// which every valid signer counts as affirmative.
type CommitmentClassifier func(verificationMethod string, r receipt.Receipt) bool

// ThresholdPolicy decides whether a set of signers satisfies the
// corridor's receipt-signing threshold (drawn from the Agreement VC, out of
// this package's scope to parse). A nil ThresholdPolicy with
// EnforceThreshold left false disables the check.
type ThresholdPolicy interface {
	ReceiptThresholdSatisfied(signers SignerSet) bool
}

// ForkResolution selects one candidate next_root at a contested
// (sequence, prev_root) key.
type ForkResolution struct {
	CorridorID         string
	Sequence           uint64
	PrevRoot           string
	ChosenNextRoot     string
	CandidateNextRoots []string
	ResolvedAt         string
	Notes              string
}

// Bootstrap seeds canonical selection from a previously verified checkpoint
// (spec §4.5 step 4), so the receipts supplied to Build need only cover the
// tail of the chain.
type Bootstrap struct {
	ReceiptCount   uint64
	FinalStateRoot string
	Peaks          []mmr.Peak
}

// MMRState is the accumulator state attached to a canonical head.
type MMRState struct {
	Size  uint64
	Root  mmr.Digest
	Peaks []mmr.Peak
}

// Head is the canonical chain's tip: the aggregate state every downstream
// component (checkpoint, finality) is computed from.
type Head struct {
	CorridorID     string
	GenesisRoot    string
	ReceiptCount   uint64
	FinalStateRoot string
	MMR            MMRState
}

// ForkPoint describes one contested (sequence, prev_root) key and how (or
// whether) it was resolved.
type ForkPoint struct {
	Sequence       uint64
	PrevRoot       string
	Candidates     []string
	Resolved       bool
	ChosenNextRoot string
}

// Unreachable names a candidate receipt that was valid but never linked
// into the canonical chain (spec §4.5 step 6): a warning, not an error.
type Unreachable struct {
	Sequence uint64
	PrevRoot string
	NextRoot string
}

// Result is the chain builder's value payload. Head and Receipts are only
// meaningful when Build's error list is empty; per spec §7, a non-empty
// error list means no canonical head was emitted. A fork-resolution error
// (an unresolved or ambiguous fork, or a resolution naming no candidate at
// its key) is the one exception that still carries a useful partial
// Result: ForkPoints and Unreachable are populated from whatever the
// selection walk discovered before it halted, so chain.BuildReport can
// render the fork landscape (spec §9 supplemented fork-inspect feature)
// even though Head and Receipts remain zero/nil. Every other error
// condition (structural, signature, threshold) returns the fully zero
// Result.
type Result struct {
	Head        Head
	ForkPoints  []ForkPoint
	Unreachable []Unreachable
	Receipts    []receipt.Receipt // canonical chain, in sequence order
}
