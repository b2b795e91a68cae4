package chain

// proofEntry is the minimal shape chain needs out of a receipt's raw
// "proof" member to dedup and merge duplicate logical receipts: it never
// re-verifies, it only identifies.
type proofEntry struct {
	verificationMethod string
	jws                string
}

// proofEntriesOf normalizes a receipt's raw Proof field (a single
// map[string]any or a list of them, per spec §4.2's multi-sign semantics)
// into a flat list of proof entries.
func proofEntriesOf(raw any) []proofEntry {
	asEntry := func(m map[string]any) proofEntry {
		vm, _ := m["verificationMethod"].(string)
		jws, _ := m["jws"].(string)
		return proofEntry{verificationMethod: vm, jws: jws}
	}
	switch v := raw.(type) {
	case nil:
		return nil
	case map[string]any:
		return []proofEntry{asEntry(v)}
	case []any:
		out := make([]proofEntry, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, asEntry(m))
			}
		}
		return out
	default:
		return nil
	}
}

// mergeProofSets merges b's raw proof entries into a's, deduping by
// (verificationMethod, jws) as spec §4.5 step 1 requires for logical-receipt
// grouping, and returns the combined proof value in the same shape Attach
// produces (a single object when there is exactly one, otherwise a list).
func mergeProofSets(a, b any) any {
	seen := make(map[proofEntry]map[string]any)
	order := make([]proofEntry, 0)

	add := func(raw any) {
		switch v := raw.(type) {
		case nil:
			return
		case map[string]any:
			e := proofEntriesOf(v)[0]
			if _, ok := seen[e]; !ok {
				seen[e] = v
				order = append(order, e)
			}
		case []any:
			for _, item := range v {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				e := proofEntriesOf(m)[0]
				if _, ok := seen[e]; !ok {
					seen[e] = m
					order = append(order, e)
				}
			}
		}
	}
	add(a)
	add(b)

	if len(order) == 0 {
		return nil
	}
	if len(order) == 1 {
		return seen[order[0]]
	}
	out := make([]any, 0, len(order))
	for _, e := range order {
		out = append(out, seen[e])
	}
	return out
}
