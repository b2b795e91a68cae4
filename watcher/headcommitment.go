package watcher

import "github.com/momentum-sez/corridor-core/canon"

// HeadCommitmentDigest computes
// SHA256(canonical({corridor_id, genesis_root, receipt_count, final_state_root, mmr_root})),
// the stable gossip-layer dedupe key watcher aggregation groups attestations
// by.
func HeadCommitmentDigest(corridorID, genesisRoot string, receiptCount uint64, finalStateRoot, mmrRoot string) (string, error) {
	d, err := canon.ComputeDigest(map[string]any{
		"corridor_id":      corridorID,
		"genesis_root":     genesisRoot,
		"receipt_count":    int64(receiptCount),
		"final_state_root": finalStateRoot,
		"mmr_root":         mmrRoot,
	})
	if err != nil {
		return "", err
	}
	return d.Hex(), nil
}
