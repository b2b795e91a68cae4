package receipt

import "fmt"

// Transition is the Transition Envelope bound to a receipt: what state
// change the receipt records, and the digests of the schema/ruleset/
// circuit that governed it.
type Transition struct {
	Kind                  string
	Payload               any
	PayloadSHA256         string
	SchemaDigestSHA256    string
	RulesetDigestSHA256   string
	ZKCircuitDigestSHA256 string
	Attachments           []DigestRef
}

// ToMap renders t as the map[string]any shape a receipt's canonical form
// expects. Only "kind" is ever written; the legacy "transition_kind" alias
// is accepted on read (see TransitionFromMap) but never produced, per the
// deprecation-window policy.
func (t Transition) ToMap() map[string]any {
	m := map[string]any{
		"kind": t.Kind,
	}
	if t.Payload != nil {
		m["payload"] = t.Payload
	}
	if t.PayloadSHA256 != "" {
		m["payload_sha256"] = t.PayloadSHA256
	}
	if t.SchemaDigestSHA256 != "" {
		m["schema_digest_sha256"] = t.SchemaDigestSHA256
	}
	if t.RulesetDigestSHA256 != "" {
		m["ruleset_digest_sha256"] = t.RulesetDigestSHA256
	}
	if t.ZKCircuitDigestSHA256 != "" {
		m["zk_circuit_digest_sha256"] = t.ZKCircuitDigestSHA256
	}
	if len(t.Attachments) > 0 {
		m["attachments"] = DigestSetToValue(t.Attachments)
	}
	return m
}

// TransitionFromMap parses a Transition Envelope, accepting either "kind"
// or the legacy "transition_kind" key.
func TransitionFromMap(m map[string]any) (Transition, error) {
	kind, _ := m["kind"].(string)
	if kind == "" {
		kind, _ = m["transition_kind"].(string)
	}
	if kind == "" {
		return Transition{}, ErrMissingTransitionKind
	}

	t := Transition{
		Kind:    kind,
		Payload: m["payload"],
	}
	if s, ok := m["payload_sha256"].(string); ok {
		t.PayloadSHA256 = s
	}
	if s, ok := m["schema_digest_sha256"].(string); ok {
		t.SchemaDigestSHA256 = s
	}
	if s, ok := m["ruleset_digest_sha256"].(string); ok {
		t.RulesetDigestSHA256 = s
	}
	if s, ok := m["zk_circuit_digest_sha256"].(string); ok {
		t.ZKCircuitDigestSHA256 = s
	}
	if raw, ok := m["attachments"]; ok {
		attachments, err := DigestSetFromValue(raw)
		if err != nil {
			return Transition{}, fmt.Errorf("transition attachments: %w", err)
		}
		t.Attachments = attachments
	}
	return t, nil
}

// ReconcileWithRegistry fills any unset per-transition digest field from
// the registry snapshot entry for this transition's kind, and rejects a
// conflict between an envelope-declared digest and the registry's.
func (t Transition) ReconcileWithRegistry(reg RegistrySnapshotEntry) (Transition, error) {
	out := t
	merge := func(envelope *string, registryValue string) error {
		if registryValue == "" {
			return nil
		}
		if *envelope == "" {
			*envelope = registryValue
			return nil
		}
		if *envelope != registryValue {
			return fmt.Errorf("%w: kind=%q", ErrRegistryConflict, t.Kind)
		}
		return nil
	}
	if err := merge(&out.SchemaDigestSHA256, reg.SchemaDigestSHA256); err != nil {
		return Transition{}, err
	}
	if err := merge(&out.RulesetDigestSHA256, reg.RulesetDigestSHA256); err != nil {
		return Transition{}, err
	}
	if err := merge(&out.ZKCircuitDigestSHA256, reg.ZKCircuitDigestSHA256); err != nil {
		return Transition{}, err
	}
	return out, nil
}

// RegistrySnapshotEntry is one transition kind's pinned digests within a
// transition-type registry snapshot.
type RegistrySnapshotEntry struct {
	Kind                  string
	SchemaDigestSHA256    string
	RulesetDigestSHA256   string
	ZKCircuitDigestSHA256 string
}
