package receipt

import (
	"fmt"
	"time"

	"github.com/momentum-sez/corridor-core/canon"
)

// parseTimestamp parses the RFC3339-seconds-Z form receipts carry.
func parseTimestamp(s string) (canon.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05Z", s)
	if err != nil {
		return canon.Time{}, err
	}
	return canon.UTC(t), nil
}

// Receipt is the Corridor State Receipt: one signed, hash-chained state
// transition record.
type Receipt struct {
	CorridorID                         string
	Sequence                           uint64
	PrevRoot                           string
	Timestamp                          canon.Time
	LawpackDigestSet                   []DigestRef
	RulesetDigestSet                   []DigestRef
	Transition                         Transition
	TransitionTypeRegistryDigestSHA256 string

	// NextRoot is populated once computed/signed; it is never an input to
	// its own computation.
	NextRoot string
	// Proof is opaque to this package: either nil, a single proof
	// map[string]any, or a []any of them (see the proof package).
	Proof any
}

// boundFields returns the canonical map of every field bound into
// next_root: everything except proof and next_root themselves.
func (r Receipt) boundFields() map[string]any {
	m := map[string]any{
		"corridor_id":        r.CorridorID,
		"sequence":           int64(r.Sequence),
		"prev_root":          r.PrevRoot,
		"timestamp":          r.Timestamp,
		"lawpack_digest_set": DigestSetToValue(r.LawpackDigestSet),
		"ruleset_digest_set": DigestSetToValue(r.RulesetDigestSet),
		"transition":         r.Transition.ToMap(),
	}
	if r.TransitionTypeRegistryDigestSHA256 != "" {
		m["transition_type_registry_digest_sha256"] = r.TransitionTypeRegistryDigestSHA256
	}
	return m
}

// ComputeNextRoot computes next_root = SHA256(canonical(boundFields)).
func (r Receipt) ComputeNextRoot() (string, error) {
	d, err := canon.ComputeDigest(r.boundFields())
	if err != nil {
		return "", err
	}
	return d.Hex(), nil
}

// ToMap renders the full receipt, including next_root and proof, as the
// map[string]any shape used for storage and transmission.
func (r Receipt) ToMap() map[string]any {
	m := r.boundFields()
	m["next_root"] = r.NextRoot
	if r.Proof != nil {
		m["proof"] = r.Proof
	}
	return m
}

// FromMap parses a Receipt out of a decoded map[string]any.
func FromMap(m map[string]any) (Receipt, error) {
	r := Receipt{}
	r.CorridorID, _ = m["corridor_id"].(string)
	r.PrevRoot, _ = m["prev_root"].(string)
	r.NextRoot, _ = m["next_root"].(string)
	r.TransitionTypeRegistryDigestSHA256, _ = m["transition_type_registry_digest_sha256"].(string)
	r.Proof = m["proof"]

	switch seq := m["sequence"].(type) {
	case int64:
		r.Sequence = uint64(seq)
	case int:
		r.Sequence = uint64(seq)
	case float64:
		r.Sequence = uint64(seq)
	}

	if ts, ok := m["timestamp"].(string); ok {
		parsed, perr := parseTimestamp(ts)
		if perr != nil {
			return Receipt{}, fmt.Errorf("receipt: invalid timestamp: %w", perr)
		}
		r.Timestamp = parsed
	}

	lawpack, err := DigestSetFromValue(m["lawpack_digest_set"])
	if err != nil {
		return Receipt{}, fmt.Errorf("lawpack_digest_set: %w", err)
	}
	r.LawpackDigestSet = lawpack

	ruleset, err := DigestSetFromValue(m["ruleset_digest_set"])
	if err != nil {
		return Receipt{}, fmt.Errorf("ruleset_digest_set: %w", err)
	}
	r.RulesetDigestSet = ruleset

	transitionMap, _ := m["transition"].(map[string]any)
	transition, err := TransitionFromMap(transitionMap)
	if err != nil {
		return Receipt{}, err
	}
	r.Transition = transition

	return r, nil
}

// ExpectedDigestPolicy describes what a corridor module expects of an
// incoming receipt's digest sets: ruleset_set must be a superset of
// RequiredRuleset, lawpack_set must equal ExpectedLawpack exactly when
// ExpectedLawpack is non-empty.
type ExpectedDigestPolicy struct {
	RequiredRuleset []DigestRef
	ExpectedLawpack []DigestRef
}

// ValidateStructural checks the §4.4 structural-validity conditions other
// than schema validation (delegated to an external pluggable validator):
// corridor_id match, next_root recomputation, and expected digest-set
// satisfaction.
func ValidateStructural(r Receipt, corridorID string, policy ExpectedDigestPolicy) error {
	if r.CorridorID != corridorID {
		return fmt.Errorf("%w: got %q want %q", ErrCorridorMismatch, r.CorridorID, corridorID)
	}

	recomputed, err := r.ComputeNextRoot()
	if err != nil {
		return err
	}
	if recomputed != r.NextRoot {
		return fmt.Errorf("%w: got %q want %q", ErrNextRootMismatch, r.NextRoot, recomputed)
	}

	if len(policy.RequiredRuleset) > 0 && !digestSetSupersetOf(r.RulesetDigestSet, policy.RequiredRuleset) {
		return fmt.Errorf("%w: ruleset_digest_set missing required entries", ErrDigestSetMismatch)
	}
	if len(policy.ExpectedLawpack) > 0 && !digestsEqual(r.LawpackDigestSet, policy.ExpectedLawpack) {
		return fmt.Errorf("%w: lawpack_digest_set does not match expected set", ErrDigestSetMismatch)
	}

	return nil
}
