package checkpoint

import (
	"encoding/hex"
	"fmt"

	"github.com/momentum-sez/corridor-core/chain"
	"github.com/momentum-sez/corridor-core/didkey"
	"github.com/momentum-sez/corridor-core/proof"
)

// Verify checks c against head: every bound field must match head exactly
// and at least one attached proof must verify. With trust anchors enforced,
// a verified signer that is not a trust anchor for corridor_checkpoint is
// left out of the signer set, and at least one anchored signer must remain;
// with a threshold enforced, the remaining signer set must satisfy the
// checkpoint-signing threshold.
func Verify(c Checkpoint, head chain.Head, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	if err := fieldsMatch(c, head); err != nil {
		return err
	}

	results, err := proof.VerifyAll(c.ToMap())
	if err != nil {
		return err
	}

	var signers []string
	var errs []error
	for _, res := range results {
		if !res.OK {
			errs = append(errs, fmt.Errorf("proof from %s: %w", res.VerificationMethod, res.Err))
			continue
		}
		did := didkey.StripFragment(res.VerificationMethod)
		if o.EnforceTrustAnchors && o.TrustAnchors != nil && !o.TrustAnchors.IsTrustAnchor(did, AttestationKindCheckpoint) {
			errs = append(errs, fmt.Errorf("signer %s: %w", did, ErrSignerNotTrustAnchor))
			continue
		}
		signers = append(signers, res.VerificationMethod)
	}

	if len(signers) == 0 {
		if len(errs) > 0 {
			return fmt.Errorf("%w: %v", ErrNoValidSignature, errs)
		}
		return ErrNoValidSignature
	}

	if o.EnforceThreshold && o.ThresholdPolicy != nil && !o.ThresholdPolicy.CheckpointThresholdSatisfied(signers) {
		return ErrThresholdNotSatisfied
	}

	return nil
}

func fieldsMatch(c Checkpoint, head chain.Head) error {
	mismatch := func(field string) error {
		return fmt.Errorf("%w: %s", ErrFieldMismatch, field)
	}
	if c.CorridorID != head.CorridorID {
		return mismatch("corridor_id")
	}
	if c.GenesisRoot != head.GenesisRoot {
		return mismatch("genesis_root")
	}
	if c.ReceiptCount != head.ReceiptCount {
		return mismatch("receipt_count")
	}
	if c.FinalStateRoot != head.FinalStateRoot {
		return mismatch("final_state_root")
	}
	if c.MMR.Size != head.MMR.Size {
		return mismatch("mmr.size")
	}
	if c.MMR.Root != hex.EncodeToString(head.MMR.Root.Bytes()) {
		return mismatch("mmr.root")
	}
	return nil
}
