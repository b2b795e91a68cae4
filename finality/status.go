package finality

// Status is the evaluated Finality-Status entity (spec §6's documented
// entity list): the reached level plus the evidence that earned it, so a
// caller can render or re-verify the upgrade chain without recomputing it.
type Status struct {
	CorridorID     string
	ReceiptCount   uint64
	FinalStateRoot string
	Level          Level
	Reasons        []string
}

// Input bundles the evidence Evaluate considers at each rung. Every field
// after the head's CorridorID, ReceiptCount and FinalStateRoot is evidence
// the caller already verified: Evaluate never signs, verifies proofs, or
// performs I/O itself.
type Input struct {
	CorridorID     string
	ReceiptCount   uint64
	FinalStateRoot string

	// CheckpointVerified is true when a checkpoint.Verify call succeeded
	// against this exact head (same corridor_id, receipt_count,
	// final_state_root).
	CheckpointVerified bool

	// WatcherQuorumReached is true when a watcher.Report for this head's
	// commitment digest reached quorum with no fork detected.
	WatcherQuorumReached bool

	// AnchorVCPresent is true when a valid L1 anchor VC references this
	// exact head.
	AnchorVCPresent bool

	// ArbitrationAwardVCPresent is true when a valid arbitration-award VC
	// references this exact head.
	ArbitrationAwardVCPresent bool
}

// Evaluate walks the finality ladder (spec §4.8) from Proposed upward,
// stopping at the first rung whose evidence is missing. The ladder is
// monotonic: Evaluate only ever reports the highest rung the supplied
// evidence supports, never a downgrade from a previously-reported level.
func Evaluate(in Input) Status {
	st := Status{
		CorridorID:     in.CorridorID,
		ReceiptCount:   in.ReceiptCount,
		FinalStateRoot: in.FinalStateRoot,
		Level:          Proposed,
	}
	st.Reasons = append(st.Reasons, "proposed: canonical head assembled")

	if in.ReceiptCount == 0 {
		return st
	}
	st.Level = ReceiptSigned
	st.Reasons = append(st.Reasons, "receipt_signed: receipt_count > 0")

	if !in.CheckpointVerified {
		return st
	}
	st.Level = CheckpointSigned
	st.Reasons = append(st.Reasons, "checkpoint_signed: signed checkpoint verifies against this head")

	if !in.WatcherQuorumReached {
		return st
	}
	st.Level = WatcherQuorum
	st.Reasons = append(st.Reasons, "watcher_quorum: watcher quorum reached over this head's commitment")

	if !in.AnchorVCPresent {
		return st
	}
	st.Level = L1Anchored
	st.Reasons = append(st.Reasons, "l1_anchored: valid anchor VC present")

	if !in.ArbitrationAwardVCPresent {
		return st
	}
	st.Level = LegallyRecognized
	st.Reasons = append(st.Reasons, "legally_recognized: matching arbitration-award VC present")

	return st
}

// Upgrade returns the higher of cur and next, enforcing the ladder's
// monotonic-only-upward invariant when a caller re-evaluates a corridor
// over time and wants to fold a new Status into a previously-recorded one.
func Upgrade(cur, next Level) Level {
	if next > cur {
		return next
	}
	return cur
}
