package checkpoint

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/momentum-sez/corridor-core/canon"
	"github.com/momentum-sez/corridor-core/chain"
	"github.com/momentum-sez/corridor-core/proof"
	"github.com/momentum-sez/corridor-core/receipt"
)

// Build rolls a canonical chain head into an unsigned Checkpoint. Callers
// sign the result with Sign (possibly more than once, for co-signed
// checkpoints) before it satisfies Verify.
func Build(head chain.Head, lawpackDigestSet, rulesetDigestSet []receipt.DigestRef, ts canon.Time) Checkpoint {
	peaks := make([]PeakRef, len(head.MMR.Peaks))
	for i, p := range head.MMR.Peaks {
		peaks[i] = PeakRef{Height: p.Height, Hash: hex.EncodeToString(p.Hash.Bytes())}
	}
	return Checkpoint{
		CorridorID:       head.CorridorID,
		Timestamp:        ts,
		GenesisRoot:      head.GenesisRoot,
		ReceiptCount:     head.ReceiptCount,
		FinalStateRoot:   head.FinalStateRoot,
		LawpackDigestSet: lawpackDigestSet,
		RulesetDigestSet: rulesetDigestSet,
		MMR: MMRSummary{
			Size:  head.MMR.Size,
			Root:  hex.EncodeToString(head.MMR.Root.Bytes()),
			Peaks: peaks,
		},
	}
}

// DigestSHA256 computes SHA256(canonical(checkpoint_without_proof)), the
// value both checkpoint signing and inclusion-proof checkpoint binding are
// computed over.
func (c Checkpoint) DigestSHA256() (string, error) {
	d, err := canon.ComputeDigest(c.boundFields())
	if err != nil {
		return "", err
	}
	return d.Hex(), nil
}

// Sign attaches a new Ed25519 proof to checkpoint, preserving any existing
// proofs so multiple parties can co-sign the same envelope.
func Sign(c Checkpoint, priv ed25519.PrivateKey, verificationMethod, created string) (Checkpoint, error) {
	signed, err := proof.Attach(c.ToMap(), priv, verificationMethod, "assertionMethod", created)
	if err != nil {
		return Checkpoint{}, err
	}
	return FromMap(signed)
}
