package watcher

import (
	"time"

	"github.com/momentum-sez/corridor-core/canon"
)

// Attestation is the Watcher Attestation entity: a claim about a corridor's
// head, independent of whether the watcher holds the underlying receipts.
type Attestation struct {
	CorridorID                 string
	GenesisRoot                string
	ReceiptCount               uint64
	FinalStateRoot             string
	MMRRoot                    string
	CheckpointDigestSHA256     string
	ObservedAt                 canon.Time
	NoForkObserved             bool
	FinalityLevel              string
	HeadCommitmentDigestSHA256 string

	// Proof is opaque to this package: nil, a single proof map[string]any,
	// or a []any of them (see package proof).
	Proof any
}

func (a Attestation) boundFields() map[string]any {
	m := map[string]any{
		"corridor_id":        a.CorridorID,
		"genesis_root":       a.GenesisRoot,
		"receipt_count":      int64(a.ReceiptCount),
		"final_state_root":   a.FinalStateRoot,
		"mmr_root":           a.MMRRoot,
		"observed_at":        a.ObservedAt,
		"no_fork_observed":   a.NoForkObserved,
		"head_commitment_digest_sha256": a.HeadCommitmentDigestSHA256,
	}
	if a.CheckpointDigestSHA256 != "" {
		m["checkpoint_digest_sha256"] = a.CheckpointDigestSHA256
	}
	if a.FinalityLevel != "" {
		m["finality_level"] = a.FinalityLevel
	}
	return m
}

// ToMap renders a, including proof, as the map[string]any shape used for
// storage, transmission, and signing.
func (a Attestation) ToMap() map[string]any {
	m := a.boundFields()
	if a.Proof != nil {
		m["proof"] = a.Proof
	}
	return m
}

// FromMap parses an Attestation out of a decoded map[string]any.
func FromMap(m map[string]any) (Attestation, error) {
	var a Attestation
	a.CorridorID, _ = m["corridor_id"].(string)
	a.GenesisRoot, _ = m["genesis_root"].(string)
	a.FinalStateRoot, _ = m["final_state_root"].(string)
	a.MMRRoot, _ = m["mmr_root"].(string)
	a.CheckpointDigestSHA256, _ = m["checkpoint_digest_sha256"].(string)
	a.FinalityLevel, _ = m["finality_level"].(string)
	a.HeadCommitmentDigestSHA256, _ = m["head_commitment_digest_sha256"].(string)
	a.NoForkObserved, _ = m["no_fork_observed"].(bool)
	a.Proof = m["proof"]

	switch rc := m["receipt_count"].(type) {
	case int64:
		a.ReceiptCount = uint64(rc)
	case int:
		a.ReceiptCount = uint64(rc)
	case float64:
		a.ReceiptCount = uint64(rc)
	}

	if ts, ok := m["observed_at"].(string); ok {
		parsed, err := parseTimestamp(ts)
		if err != nil {
			return Attestation{}, err
		}
		a.ObservedAt = parsed
	}

	return a, nil
}

func parseTimestamp(s string) (canon.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05Z", s)
	if err != nil {
		return canon.Time{}, err
	}
	return canon.UTC(t), nil
}
