package watcher

import (
	"fmt"
	"sort"

	"github.com/momentum-sez/corridor-core/canon"
	"github.com/momentum-sez/corridor-core/chain"
	"github.com/momentum-sez/corridor-core/didkey"
	"github.com/momentum-sez/corridor-core/proof"
)

type freshEntry struct {
	watcherDID           string
	receiptCount         uint64
	finalStateRoot       string
	headCommitmentDigest string
	checkpointDigest     string
}

// Compare runs the seven steps of watcher-attestation aggregation (spec
// §4.7) over docs, as observed at the reference instant now. now is a
// parameter rather than the wall clock so Compare stays a pure function.
func Compare(now canon.Time, docs []map[string]any, opts ...Option) (Report, []error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxStaleness <= 0 {
		o.MaxStaleness = DefaultMaxStaleness
	}

	var rep Report
	var errs []error
	var fresh []freshEntry

	for i, doc := range docs {
		a, err := FromMap(doc)
		if err != nil {
			errs = append(errs, fmt.Errorf("attestation[%d]: %w", i, err))
			continue
		}

		results, err := proof.VerifyAll(doc)
		if err != nil {
			errs = append(errs, fmt.Errorf("attestation[%d]: %w", i, err))
			continue
		}

		var watcherDID string
		valid := false
		var verr error
		for _, res := range results {
			if !res.OK {
				verr = res.Err
				continue
			}
			did := didkey.StripFragment(res.VerificationMethod)
			if o.EnforceTrustAnchors && o.TrustAnchors != nil && !o.TrustAnchors.IsTrustAnchor(did, AttestationKindWatcher) {
				verr = fmt.Errorf("signer %s not a trust anchor for %s", did, AttestationKindWatcher)
				continue
			}
			watcherDID = did
			valid = true
			break
		}

		status := EntryStatus{
			WatcherDID:     watcherDID,
			ReceiptCount:   a.ReceiptCount,
			FinalStateRoot: a.FinalStateRoot,
			Valid:          valid,
			Err:            verr,
		}
		if !valid {
			rep.Entries = append(rep.Entries, status)
			continue
		}

		stale := now.Std().Sub(a.ObservedAt.Std()) > o.MaxStaleness
		status.Stale = stale

		computed, err := HeadCommitmentDigest(a.CorridorID, a.GenesisRoot, a.ReceiptCount, a.FinalStateRoot, a.MMRRoot)
		if err != nil {
			errs = append(errs, fmt.Errorf("attestation[%d]: %w", i, err))
			continue
		}
		status.HeadCommitmentDigest = computed
		if a.HeadCommitmentDigestSHA256 != "" && a.HeadCommitmentDigestSHA256 != computed {
			status.DigestRecomputed = true
		}

		rep.Entries = append(rep.Entries, status)
		if stale {
			continue
		}

		fresh = append(fresh, freshEntry{
			watcherDID:           watcherDID,
			receiptCount:         a.ReceiptCount,
			finalStateRoot:       a.FinalStateRoot,
			headCommitmentDigest: computed,
			checkpointDigest:     a.CheckpointDigestSHA256,
		})
	}

	// Step 4: fork-like divergence — same receipt_count, different
	// final_state_root among fresh entries.
	byReceiptCount := make(map[uint64]map[string]bool)
	for _, f := range fresh {
		roots := byReceiptCount[f.receiptCount]
		if roots == nil {
			roots = make(map[string]bool)
			byReceiptCount[f.receiptCount] = roots
		}
		roots[f.finalStateRoot] = true
	}
	var receiptCounts []uint64
	for rc := range byReceiptCount {
		receiptCounts = append(receiptCounts, rc)
	}
	sort.Slice(receiptCounts, func(i, j int) bool { return receiptCounts[i] < receiptCounts[j] })
	for _, rc := range receiptCounts {
		if len(byReceiptCount[rc]) > 1 {
			rep.ForkDetected = true
			rep.Divergences = append(rep.Divergences, Divergence{
				Kind:         DivergenceFork,
				Severity:     SeverityCritical,
				ReceiptCount: rc,
				Details:      fmt.Sprintf("%d distinct final_state_root values observed at receipt_count=%d", len(byReceiptCount[rc]), rc),
			})
		}
	}

	// Step 5: lag — distinct receipt_count values across fresh entries.
	if len(receiptCounts) > 1 {
		rep.Divergences = append(rep.Divergences, Divergence{
			Kind:     DivergenceLag,
			Severity: SeverityWarn,
			Details:  fmt.Sprintf("%d distinct receipt_count values observed among fresh attestations", len(receiptCounts)),
		})
	}

	// Step 6: checkpoint-digest divergence for the same head digest — info,
	// benign.
	checkpointsByHead := make(map[string]map[string]bool)
	for _, f := range fresh {
		if f.checkpointDigest == "" {
			continue
		}
		set := checkpointsByHead[f.headCommitmentDigest]
		if set == nil {
			set = make(map[string]bool)
			checkpointsByHead[f.headCommitmentDigest] = set
		}
		set[f.checkpointDigest] = true
	}
	var headDigestsWithCkDivergence []string
	for head, set := range checkpointsByHead {
		if len(set) > 1 {
			headDigestsWithCkDivergence = append(headDigestsWithCkDivergence, head)
		}
	}
	sort.Strings(headDigestsWithCkDivergence)
	for _, head := range headDigestsWithCkDivergence {
		rep.Divergences = append(rep.Divergences, Divergence{
			Kind:     DivergenceCheckpointDigest,
			Severity: SeverityInfo,
			Details:  fmt.Sprintf("head %s: %d distinct checkpoint_digest_sha256 values", head, len(checkpointsByHead[head])),
		})
	}

	// Step 7: quorum — group fresh entries by head commitment, count
	// unique watcher DIDs per group.
	groups := make(map[string]map[string]bool) // head digest -> set of watcher DIDs
	groupEntry := make(map[string]freshEntry)
	for _, f := range fresh {
		watchers := groups[f.headCommitmentDigest]
		if watchers == nil {
			watchers = make(map[string]bool)
			groups[f.headCommitmentDigest] = watchers
		}
		watchers[f.watcherDID] = true
		groupEntry[f.headCommitmentDigest] = f
	}

	var largestHead string
	largestCount := 0
	distinctWatchers := make(map[string]bool)
	for head, watchers := range groups {
		for w := range watchers {
			distinctWatchers[w] = true
		}
		if len(watchers) > largestCount || (len(watchers) == largestCount && head < largestHead) {
			largestCount = len(watchers)
			largestHead = head
		}
	}

	if largestCount > 0 {
		f := groupEntry[largestHead]
		rep.AgreedHead = &AgreedHead{
			HeadCommitmentDigestSHA256: largestHead,
			ReceiptCount:               f.receiptCount,
			FinalStateRoot:             f.finalStateRoot,
			WatcherCount:               largestCount,
		}
	}

	if o.QuorumThreshold != "" && largestCount > 0 {
		spec, err := chain.ParseThreshold(o.QuorumThreshold)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidQuorumSpec, err))
		} else {
			population := len(distinctWatchers)
			if o.EnforceRegistrySize {
				population = o.RegistrySize
			}
			rep.QuorumReached = !rep.ForkDetected && spec.Reached(largestCount, population)
		}
	}

	return rep, errs
}
