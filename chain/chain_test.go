package chain

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"github.com/momentum-sez/corridor-core/canon"
	"github.com/momentum-sez/corridor-core/didkey"
	"github.com/momentum-sez/corridor-core/proof"
	"github.com/momentum-sez/corridor-core/receipt"
)

const testCorridor = "test"

func hex64(prefix string) string {
	return prefix + strings.Repeat("0", 64-len(prefix))
}

type signer struct {
	priv ed25519.PrivateKey
	vm   string
}

func newSigner(t *testing.T) signer {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	did, err := didkey.Encode(pub)
	require.NoError(t, err)
	return signer{priv: priv, vm: did + "#key-1"}
}

// buildReceiptDoc constructs and signs a receipt, returning its decoded
// map[string]any document the way a CAS-backed loader would hand one to
// Build.
func buildReceiptDoc(t *testing.T, s signer, seq uint64, prevRoot string, payloadMarker int) map[string]any {
	t.Helper()
	r := receipt.Receipt{
		CorridorID: testCorridor,
		Sequence:   seq,
		PrevRoot:   prevRoot,
		Timestamp:  canon.UTC(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Transition: receipt.Transition{
			Kind:          "generic",
			Payload:       map[string]any{"i": payloadMarker},
			PayloadSHA256: hex64("aa"),
		},
	}
	root, err := r.ComputeNextRoot()
	require.NoError(t, err)
	r.NextRoot = root

	signed, err := proof.Attach(r.ToMap(), s.priv, s.vm, "assertionMethod", "2026-01-01T00:00:00Z")
	require.NoError(t, err)
	return signed
}

func TestBuild_SingleReceiptChain(t *testing.T) {
	genesis := hex64("6e")
	s := newSigner(t)
	doc := buildReceiptDoc(t, s, 0, genesis, 0)

	result, warnings, errs := Build(testCorridor, genesis, []map[string]any{doc})
	require.Empty(t, errs)
	require.Empty(t, warnings)

	assert.Equal(t, result.Head.ReceiptCount, uint64(1))
	assert.Equal(t, result.Head.FinalStateRoot, doc["next_root"].(string))

	nextRootBytes, err := hex.DecodeString(doc["next_root"].(string))
	require.NoError(t, err)
	expectedLeaf := sha256.Sum256(append([]byte{0x00}, nextRootBytes...))
	assert.Equal(t, hex.EncodeToString(result.Head.MMR.Root.Bytes()), hex.EncodeToString(expectedLeaf[:]))
}

func TestBuild_ForkWithoutResolution(t *testing.T) {
	genesis := hex64("6e")
	s := newSigner(t)
	docA := buildReceiptDoc(t, s, 0, genesis, 1)
	docB := buildReceiptDoc(t, s, 0, genesis, 2)

	result, _, errs := Build(testCorridor, genesis, []map[string]any{docA, docB})
	require.NotEmpty(t, errs)
	require.True(t, containsErr(errs, ErrUnresolvedFork))
	require.Equal(t, Head{}, result.Head)
	require.Nil(t, result.Receipts)
	require.Len(t, result.ForkPoints, 1)
	require.False(t, result.ForkPoints[0].Resolved)
	require.Len(t, result.ForkPoints[0].Candidates, 2)

	report := BuildReport(testCorridor, result)
	require.Equal(t, 1, report.Forks.Total)
	require.Equal(t, 0, report.Forks.Resolved)
	require.Equal(t, 1, report.Forks.Unresolved)
	require.Len(t, report.Forks.Points[0].Candidates, 2)
	require.Nil(t, report.CanonicalHead)
}

func TestBuild_ForkWithResolution(t *testing.T) {
	genesis := hex64("6e")
	s := newSigner(t)
	docA := buildReceiptDoc(t, s, 0, genesis, 1)
	docB := buildReceiptDoc(t, s, 0, genesis, 2)
	rootA := docA["next_root"].(string)

	result, warnings, errs := Build(testCorridor, genesis, []map[string]any{docA, docB},
		WithForkResolutions(ForkResolution{
			CorridorID:         testCorridor,
			Sequence:           0,
			PrevRoot:           genesis,
			ChosenNextRoot:     rootA,
			CandidateNextRoots: []string{rootA, docB["next_root"].(string)},
		}),
	)
	require.Empty(t, errs)
	require.Equal(t, uint64(1), result.Head.ReceiptCount)
	require.Equal(t, rootA, result.Head.FinalStateRoot)
	require.Len(t, result.ForkPoints, 1)
	require.True(t, result.ForkPoints[0].Resolved)

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "fork resolved at seq=0") {
			found = true
		}
	}
	require.True(t, found, "expected a fork-resolved warning, got %v", warnings)
}

func TestBuild_ConflictingResolutionsRejected(t *testing.T) {
	genesis := hex64("6e")
	s := newSigner(t)
	docA := buildReceiptDoc(t, s, 0, genesis, 1)
	docB := buildReceiptDoc(t, s, 0, genesis, 2)
	rootA := docA["next_root"].(string)
	rootB := docB["next_root"].(string)

	_, _, errs := Build(testCorridor, genesis, []map[string]any{docA, docB},
		WithForkResolutions(
			ForkResolution{Sequence: 0, PrevRoot: genesis, ChosenNextRoot: rootA},
			ForkResolution{Sequence: 0, PrevRoot: genesis, ChosenNextRoot: rootB},
		),
	)
	require.True(t, containsErr(errs, ErrConflictingResolutions))
}

func TestBuild_InvalidResolutionTargetRejected(t *testing.T) {
	genesis := hex64("6e")
	s := newSigner(t)
	docA := buildReceiptDoc(t, s, 0, genesis, 1)

	_, _, errs := Build(testCorridor, genesis, []map[string]any{docA},
		WithForkResolutions(ForkResolution{Sequence: 0, PrevRoot: genesis, ChosenNextRoot: hex64("ff")}),
	)
	require.True(t, containsErr(errs, ErrInvalidResolution))
}

type denyAllAnchors struct{ allowedDID string }

func (d denyAllAnchors) IsTrustAnchor(did, kind string) bool {
	return did == d.allowedDID && kind == AttestationKindReceipt
}

func TestBuild_TrustAnchorRejection(t *testing.T) {
	genesis := hex64("6e")
	signerX := newSigner(t)
	doc := buildReceiptDoc(t, signerX, 0, genesis, 0)

	otherDID, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	otherDIDKey, err := didkey.Encode(otherDID)
	require.NoError(t, err)

	_, _, errs := Build(testCorridor, genesis, []map[string]any{doc},
		WithTrustAnchors(denyAllAnchors{allowedDID: otherDIDKey}),
	)
	require.NotEmpty(t, errs)

	_, _, errs2 := Build(testCorridor, genesis, []map[string]any{doc})
	require.Empty(t, errs2)
}

func TestBuild_UnreachableCandidateWarned(t *testing.T) {
	genesis := hex64("6e")
	s := newSigner(t)
	doc0 := buildReceiptDoc(t, s, 0, genesis, 0)
	root0 := doc0["next_root"].(string)

	// A valid but disconnected candidate at sequence 5 that the canonical
	// walk from genesis never reaches.
	orphan := buildReceiptDoc(t, s, 5, hex64("ab"), 9)

	result, warnings, errs := Build(testCorridor, genesis, []map[string]any{doc0, orphan})
	require.Empty(t, errs)
	require.Equal(t, root0, result.Head.FinalStateRoot)
	require.Len(t, result.Unreachable, 1)
	require.Equal(t, uint64(5), result.Unreachable[0].Sequence)

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "unreachable") {
			found = true
		}
	}
	require.True(t, found)
}

func TestBuild_ReceiptThresholdEnforced(t *testing.T) {
	genesis := hex64("6e")
	s := newSigner(t)
	doc := buildReceiptDoc(t, s, 0, genesis, 0)

	_, _, errs := Build(testCorridor, genesis, []map[string]any{doc},
		WithReceiptThreshold(MinAffirmativeSigners(2)),
	)
	require.NotEmpty(t, errs)
}

func TestParseThreshold(t *testing.T) {
	majority, err := ParseThreshold("majority")
	require.NoError(t, err)
	require.True(t, majority.Reached(3, 5))
	require.False(t, majority.Reached(2, 5))

	kOfN, err := ParseThreshold("3/5")
	require.NoError(t, err)
	require.True(t, kOfN.Reached(3, 5))
	require.False(t, kOfN.Reached(2, 5))

	_, err = ParseThreshold("not-a-threshold")
	require.Error(t, err)
}

func containsErr(errs []error, target error) bool {
	for _, e := range errs {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}
