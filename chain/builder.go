package chain

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/momentum-sez/corridor-core/didkey"
	"github.com/momentum-sez/corridor-core/mmr"
	"github.com/momentum-sez/corridor-core/proof"
	"github.com/momentum-sez/corridor-core/receipt"
)

type candidateKey struct {
	sequence uint64
	prevRoot string
}

// logical is one logical receipt: all incoming receipts sharing a
// (sequence, prev_root, next_root) triple, merged into a single record with
// a combined proof set and signer accounting.
type logical struct {
	receipt receipt.Receipt
	signers SignerSet
}

// Build runs the seven-step chain assembly algorithm of spec §4.5 over
// docs (decoded receipt documents) and returns the canonical head alongside
// warnings and errors. Per spec §7, a non-empty error list means no
// canonical head was emitted: Head and Receipts are zero. When selection
// halted on a fork-resolution error, ForkPoints and Unreachable are still
// filled in (see Result); every other error returns the zero Result.
func Build(corridorID, genesisRoot string, docs []map[string]any, opts ...Option) (Result, []string, []error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	var warnings []string
	var errs []error

	logicals := make(map[candidateKey]map[string]*logical) // key -> next_root -> logical
	order := make(map[candidateKey][]string)                // key -> next_root insertion order

	for i, doc := range docs {
		r, err := receipt.FromMap(doc)
		if err != nil {
			errs = append(errs, fmt.Errorf("receipt[%d]: %w", i, err))
			continue
		}

		if o.SchemaValidator != nil {
			if schemaErrs := o.SchemaValidator.Validate(o.SchemaID, doc); len(schemaErrs) > 0 {
				errs = append(errs, fmt.Errorf("receipt[%d]: schema invalid: %v", i, schemaErrs))
				continue
			}
		}

		if err := receipt.ValidateStructural(r, corridorID, o.DigestPolicy); err != nil {
			errs = append(errs, fmt.Errorf("receipt[%d]: %w", i, err))
			continue
		}

		signers, signerErrs, err := verifySigners(r, o)
		if err != nil {
			errs = append(errs, fmt.Errorf("receipt[%d]: %w", i, err))
			continue
		}
		errs = append(errs, signerErrs...)
		if len(signers.All) == 0 {
			errs = append(errs, fmt.Errorf("receipt[%d]: no valid signature", i))
			continue
		}

		key := candidateKey{sequence: r.Sequence, prevRoot: r.PrevRoot}
		byRoot := logicals[key]
		if byRoot == nil {
			byRoot = make(map[string]*logical)
			logicals[key] = byRoot
		}
		if existing, ok := byRoot[r.NextRoot]; ok {
			existing.receipt.Proof = mergeProofSets(existing.receipt.Proof, r.Proof)
			existing.signers = mergeSignerSets(existing.signers, signers)
		} else {
			byRoot[r.NextRoot] = &logical{receipt: r, signers: signers}
			order[key] = append(order[key], r.NextRoot)
		}
	}

	if len(errs) > 0 {
		return Result{}, warnings, errs
	}

	// Step 3: threshold policy, evaluated on each logical candidate's
	// combined (post-merge) signer set.
	if o.EnforceThreshold && o.ThresholdPolicy != nil {
		for key, byRoot := range logicals {
			for root, l := range byRoot {
				if !o.ThresholdPolicy.ReceiptThresholdSatisfied(l.signers) {
					errs = append(errs, fmt.Errorf("chain: receipt-signing threshold not satisfied at sequence %d prev_root=%s next_root=%s", key.sequence, key.prevRoot, root))
				}
			}
		}
		if len(errs) > 0 {
			return Result{}, warnings, errs
		}
	}

	// Step 2: forks, one entry per contested key.
	var forkPoints []ForkPoint
	keys := sortedKeys(logicals)
	for _, key := range keys {
		roots := order[key]
		if len(roots) > 1 {
			fp := ForkPoint{Sequence: key.sequence, PrevRoot: key.prevRoot, Candidates: append([]string{}, roots...)}
			sort.Strings(fp.Candidates)
			forkPoints = append(forkPoints, fp)
		}
	}

	// Step 4: bootstrap.
	startSeq := uint64(0)
	startPrevRoot := genesisRoot
	var seedPeaks []mmr.Peak
	if o.Bootstrap != nil {
		startSeq = o.Bootstrap.ReceiptCount
		startPrevRoot = o.Bootstrap.FinalStateRoot
		seedPeaks = o.Bootstrap.Peaks
	}

	resolutions := indexResolutions(o.ForkResolutions)

	// Step 5: canonical selection.
	var chain []receipt.Receipt
	seq := startSeq
	prevRoot := startPrevRoot
	reached := make(map[candidateKey]bool)

	for {
		key := candidateKey{sequence: seq, prevRoot: prevRoot}
		byRoot, ok := logicals[key]
		if !ok {
			break
		}
		reached[key] = true
		roots := order[key]

		var chosenRoot string
		switch {
		case len(roots) == 1:
			if res, ok := resolutions[key]; ok && res.ChosenNextRoot != conflictSentinel && res.ChosenNextRoot != roots[0] {
				errs = append(errs, fmt.Errorf("%w: sequence %d prev_root=%s chose %s", ErrInvalidResolution, seq, prevRoot, res.ChosenNextRoot))
				goto done
			}
			chosenRoot = roots[0]
		default:
			res, ok := resolutions[key]
			if !ok {
				errs = append(errs, fmt.Errorf("%w at sequence %d prev_root=%s (candidates=%d)", ErrUnresolvedFork, seq, prevRoot, len(roots)))
				markForkResolved(forkPoints, key, "", false)
				goto done
			}
			if res.ChosenNextRoot == conflictSentinel {
				errs = append(errs, fmt.Errorf("%w at sequence %d prev_root=%s", ErrConflictingResolutions, seq, prevRoot))
				markForkResolved(forkPoints, key, "", false)
				goto done
			}
			if _, exists := byRoot[res.ChosenNextRoot]; !exists {
				errs = append(errs, fmt.Errorf("%w: sequence %d prev_root=%s chose %s", ErrInvalidResolution, seq, prevRoot, res.ChosenNextRoot))
				markForkResolved(forkPoints, key, "", false)
				goto done
			}
			chosenRoot = res.ChosenNextRoot
			warnings = append(warnings, fmt.Sprintf("fork resolved at seq=%d prev_root=%s chosen=%s", seq, prevRoot, chosenRoot))
			markForkResolved(forkPoints, key, chosenRoot, true)
		}

		chain = append(chain, byRoot[chosenRoot].receipt)
		prevRoot = chosenRoot
		seq++
	}
done:

	// Step 6: unreachable detection. Computed unconditionally, including
	// when selection stopped at an unresolved/ambiguous fork, so a
	// fork-inspect report (chain.BuildReport) can still render the fork
	// landscape even though no canonical head was emitted.
	var unreachable []Unreachable
	for _, key := range keys {
		if reached[key] {
			continue
		}
		for _, root := range order[key] {
			unreachable = append(unreachable, Unreachable{Sequence: key.sequence, PrevRoot: key.prevRoot, NextRoot: root})
		}
	}
	if len(unreachable) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d unreachable candidate(s) beyond canonical head", len(unreachable)))
	}

	if len(errs) > 0 {
		// Reaching here means the selection loop halted on a fork-resolution
		// error: an unresolved or ambiguous fork, or a resolution naming no
		// candidate at its key (every other failure mode returns earlier with a
		// fully zero Result). The fork landscape discovered before the halt
		// is still real and reportable; only the canonical head and chain
		// are withheld.
		return Result{ForkPoints: forkPoints, Unreachable: unreachable}, warnings, errs
	}

	// Step 7: MMR state.
	leafHashes := make([]mmr.Digest, 0, len(chain))
	for _, r := range chain {
		raw, herr := hex.DecodeString(r.NextRoot)
		if herr != nil {
			errs = append(errs, fmt.Errorf("chain: bad next_root %q: %w", r.NextRoot, herr))
			continue
		}
		leafDigest, err := mmr.DigestFromBytes(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("chain: bad next_root %q: %w", r.NextRoot, err))
			continue
		}
		leafHashes = append(leafHashes, mmr.LeafHash(leafDigest))
	}
	if len(errs) > 0 {
		return Result{}, warnings, errs
	}

	var peaks []mmr.Peak
	if startSeq == 0 {
		peaks = mmr.BuildPeaks(leafHashes)
	} else {
		peaks = mmr.AppendPeaks(seedPeaks, leafHashes)
	}

	head := Head{
		CorridorID:   corridorID,
		GenesisRoot:  genesisRoot,
		ReceiptCount: mmr.Size(peaks),
	}
	if len(chain) > 0 {
		head.FinalStateRoot = chain[len(chain)-1].NextRoot
	} else if o.Bootstrap != nil {
		head.FinalStateRoot = o.Bootstrap.FinalStateRoot
	} else {
		head.FinalStateRoot = genesisRoot
	}

	if len(peaks) > 0 {
		root, err := mmr.BagPeaks(peaks)
		if err != nil {
			errs = append(errs, err)
			return Result{}, warnings, errs
		}
		head.MMR = MMRState{Size: mmr.Size(peaks), Root: root, Peaks: peaks}
	}

	return Result{Head: head, ForkPoints: forkPoints, Unreachable: unreachable, Receipts: chain}, warnings, nil
}

func verifySigners(r receipt.Receipt, o Options) (SignerSet, []error, error) {
	results, err := proof.VerifyAll(r.ToMap())
	if err != nil {
		return SignerSet{}, nil, err
	}

	var signers SignerSet
	var errs []error
	for _, res := range results {
		if !res.OK {
			errs = append(errs, fmt.Errorf("proof from %s: %w", res.VerificationMethod, res.Err))
			continue
		}
		did := didkey.StripFragment(res.VerificationMethod)
		if o.EnforceTrustAnchors && o.TrustAnchors != nil && !o.TrustAnchors.IsTrustAnchor(did, AttestationKindReceipt) {
			errs = append(errs, fmt.Errorf("signer %s: %w", did, ErrSignerNotTrustAnchor))
			continue
		}
		signers.All = append(signers.All, res.VerificationMethod)
		if o.Commitment == nil || o.Commitment(res.VerificationMethod, r) {
			signers.Affirmative = append(signers.Affirmative, res.VerificationMethod)
		}
	}
	return signers, errs, nil
}

func mergeSignerSets(a, b SignerSet) SignerSet {
	return SignerSet{
		Affirmative: mergeUnique(a.Affirmative, b.Affirmative),
		All:         mergeUnique(a.All, b.All),
	}
}

func mergeUnique(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func sortedKeys(m map[candidateKey]map[string]*logical) []candidateKey {
	keys := make([]candidateKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sequence != keys[j].sequence {
			return keys[i].sequence < keys[j].sequence
		}
		return keys[i].prevRoot < keys[j].prevRoot
	})
	return keys
}

// conflictSentinel marks a candidateKey whose fork-resolution artifacts
// disagree; it can never equal a real next_root (those are 64 lowercase hex
// characters).
const conflictSentinel = "\x00conflict"

func indexResolutions(resolutions []ForkResolution) map[candidateKey]ForkResolution {
	out := make(map[candidateKey]ForkResolution)
	for _, r := range resolutions {
		key := candidateKey{sequence: r.Sequence, prevRoot: r.PrevRoot}
		if existing, ok := out[key]; ok && existing.ChosenNextRoot != r.ChosenNextRoot {
			out[key] = ForkResolution{Sequence: r.Sequence, PrevRoot: r.PrevRoot, ChosenNextRoot: conflictSentinel}
			continue
		}
		out[key] = r
	}
	return out
}

func markForkResolved(points []ForkPoint, key candidateKey, chosen string, resolved bool) {
	for i := range points {
		if points[i].Sequence == key.sequence && points[i].PrevRoot == key.prevRoot {
			points[i].Resolved = resolved
			points[i].ChosenNextRoot = chosen
		}
	}
}

