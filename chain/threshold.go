package chain

import (
	"fmt"
	"strconv"
	"strings"
)

// ThresholdSpec is a parsed "majority" or "K/N" quorum specification, shared
// by the receipt-signing threshold here and the watcher-quorum threshold in
// package watcher — both read the same textual form from their respective
// policy documents.
type ThresholdSpec struct {
	majority bool
	required int
}

// ParseThreshold parses "majority" (case-insensitive) or "K/N" (only the K
// side is read; N is supplied at evaluation time from the observed
// population, since the population isn't known until the signer/attestation
// set is assembled).
func ParseThreshold(spec string) (ThresholdSpec, error) {
	s := strings.TrimSpace(spec)
	if strings.EqualFold(s, "majority") {
		return ThresholdSpec{majority: true}, nil
	}
	parts := strings.SplitN(s, "/", 2)
	k, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || k < 0 {
		return ThresholdSpec{}, fmt.Errorf("chain: invalid threshold spec %q", spec)
	}
	return ThresholdSpec{required: k}, nil
}

// Reached reports whether count (e.g. distinct affirmative signers, or
// distinct watchers agreeing on a head) satisfies the threshold against a
// population of total.
func (t ThresholdSpec) Reached(count, total int) bool {
	if t.majority {
		return count*2 > total
	}
	return count >= t.required
}

// MinAffirmativeSigners is a ThresholdPolicy requiring at least N distinct
// affirmative signers (spec §9: signed_parties, never signed_parties_all,
// counts toward threshold evaluation). It is the simplest concrete policy a
// caller can wire in directly; corridor-specific per-role thresholds read
// from an Agreement VC are an external collaborator's concern (spec §1) and
// plug in by implementing ThresholdPolicy themselves.
type MinAffirmativeSigners int

// ReceiptThresholdSatisfied implements ThresholdPolicy.
func (n MinAffirmativeSigners) ReceiptThresholdSatisfied(signers SignerSet) bool {
	return len(signers.Affirmative) >= int(n)
}
