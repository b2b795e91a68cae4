package checkpoint

import (
	"github.com/momentum-sez/corridor-core/canon"
	"github.com/momentum-sez/corridor-core/receipt"
)

// PeakRef is the wire form of one mmr.Peak: a height and a lower-hex digest.
type PeakRef struct {
	Height uint64
	Hash   string
}

// MMRSummary is the accumulator state a checkpoint commits to.
type MMRSummary struct {
	Size  uint64
	Root  string
	Peaks []PeakRef
}

// Checkpoint is the signed roll-up of a canonical chain head.
type Checkpoint struct {
	CorridorID       string
	Timestamp        canon.Time
	GenesisRoot      string
	ReceiptCount     uint64
	FinalStateRoot   string
	LawpackDigestSet []receipt.DigestRef
	RulesetDigestSet []receipt.DigestRef
	MMR              MMRSummary

	// Proof is opaque to this package: nil, a single proof map[string]any,
	// or a []any of them (see package proof).
	Proof any
}

func peaksToValue(peaks []PeakRef) []any {
	out := make([]any, len(peaks))
	for i, p := range peaks {
		out[i] = map[string]any{
			"height": int64(p.Height),
			"hash":   p.Hash,
		}
	}
	return out
}

func peaksFromValue(v any) []PeakRef {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]PeakRef, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var height uint64
		switch h := m["height"].(type) {
		case int64:
			height = uint64(h)
		case int:
			height = uint64(h)
		case float64:
			height = uint64(h)
		}
		hash, _ := m["hash"].(string)
		out = append(out, PeakRef{Height: height, Hash: hash})
	}
	return out
}

// boundFields returns the canonical map of every field a checkpoint's digest
// and signature are computed over: everything except proof.
func (c Checkpoint) boundFields() map[string]any {
	return map[string]any{
		"corridor_id":        c.CorridorID,
		"timestamp":          c.Timestamp,
		"genesis_root":       c.GenesisRoot,
		"receipt_count":      int64(c.ReceiptCount),
		"final_state_root":   c.FinalStateRoot,
		"lawpack_digest_set": receipt.DigestSetToValue(c.LawpackDigestSet),
		"ruleset_digest_set": receipt.DigestSetToValue(c.RulesetDigestSet),
		"mmr": map[string]any{
			"size":  int64(c.MMR.Size),
			"root":  c.MMR.Root,
			"peaks": peaksToValue(c.MMR.Peaks),
		},
	}
}

// ToMap renders the full checkpoint, including proof, as the map[string]any
// shape used for storage, transmission, and digesting.
func (c Checkpoint) ToMap() map[string]any {
	m := c.boundFields()
	if c.Proof != nil {
		m["proof"] = c.Proof
	}
	return m
}

// FromMap parses a Checkpoint out of a decoded map[string]any.
func FromMap(m map[string]any) (Checkpoint, error) {
	var c Checkpoint
	c.CorridorID, _ = m["corridor_id"].(string)
	c.GenesisRoot, _ = m["genesis_root"].(string)
	c.FinalStateRoot, _ = m["final_state_root"].(string)
	c.Proof = m["proof"]

	switch rc := m["receipt_count"].(type) {
	case int64:
		c.ReceiptCount = uint64(rc)
	case int:
		c.ReceiptCount = uint64(rc)
	case float64:
		c.ReceiptCount = uint64(rc)
	}

	if ts, ok := m["timestamp"].(string); ok {
		parsed, err := parseTimestamp(ts)
		if err != nil {
			return Checkpoint{}, err
		}
		c.Timestamp = parsed
	}

	lawpack, err := receipt.DigestSetFromValue(m["lawpack_digest_set"])
	if err != nil {
		return Checkpoint{}, err
	}
	c.LawpackDigestSet = lawpack

	ruleset, err := receipt.DigestSetFromValue(m["ruleset_digest_set"])
	if err != nil {
		return Checkpoint{}, err
	}
	c.RulesetDigestSet = ruleset

	if mm, ok := m["mmr"].(map[string]any); ok {
		var size uint64
		switch s := mm["size"].(type) {
		case int64:
			size = uint64(s)
		case int:
			size = uint64(s)
		case float64:
			size = uint64(s)
		}
		root, _ := mm["root"].(string)
		c.MMR = MMRSummary{Size: size, Root: root, Peaks: peaksFromValue(mm["peaks"])}
	}

	return c, nil
}
