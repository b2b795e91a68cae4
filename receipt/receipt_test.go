package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentum-sez/corridor-core/canon"
)

// hex64 builds a syntactically valid 64-hex-character digest string from a
// short prefix, padding with zeros.
func hex64(prefix string) string {
	return prefix + strings.Repeat("0", 64-len(prefix))
}

func sampleReceipt() Receipt {
	return Receipt{
		CorridorID: "test",
		Sequence:   0,
		PrevRoot:   hex64("00"),
		Timestamp:  canon.UTC(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)),
		Transition: Transition{Kind: "noop", PayloadSHA256: hex64("aa")},
	}
}

// TestReceipt_TamperEvidence covers spec testable property 4.
func TestReceipt_TamperEvidence(t *testing.T) {
	r := sampleReceipt()
	root1, err := r.ComputeNextRoot()
	require.NoError(t, err)

	mutated := r
	mutated.Sequence = 1
	root2, err := mutated.ComputeNextRoot()
	require.NoError(t, err)

	require.NotEqual(t, root1, root2)
}

func TestReceipt_ToMapFromMapRoundTrip(t *testing.T) {
	r := sampleReceipt()
	root, err := r.ComputeNextRoot()
	require.NoError(t, err)
	r.NextRoot = root

	m := r.ToMap()
	parsed, err := FromMap(m)
	require.NoError(t, err)

	require.Equal(t, r.CorridorID, parsed.CorridorID)
	require.Equal(t, r.Sequence, parsed.Sequence)
	require.Equal(t, r.PrevRoot, parsed.PrevRoot)
	require.Equal(t, r.NextRoot, parsed.NextRoot)
	require.Equal(t, r.Transition.Kind, parsed.Transition.Kind)

	recomputed, err := parsed.ComputeNextRoot()
	require.NoError(t, err)
	require.Equal(t, root, recomputed)
}

func TestValidateStructural_CorridorMismatch(t *testing.T) {
	r := sampleReceipt()
	root, err := r.ComputeNextRoot()
	require.NoError(t, err)
	r.NextRoot = root

	err = ValidateStructural(r, "other-corridor", ExpectedDigestPolicy{})
	require.ErrorIs(t, err, ErrCorridorMismatch)
}

func TestValidateStructural_NextRootMismatch(t *testing.T) {
	r := sampleReceipt()
	r.NextRoot = hex64("ff")

	err := ValidateStructural(r, "test", ExpectedDigestPolicy{})
	require.ErrorIs(t, err, ErrNextRootMismatch)
}

func TestValidateStructural_RulesetSupersetRequired(t *testing.T) {
	r := sampleReceipt()
	required := Raw(hex64("bb"))
	r.RulesetDigestSet = []DigestRef{required}
	root, err := r.ComputeNextRoot()
	require.NoError(t, err)
	r.NextRoot = root

	err = ValidateStructural(r, "test", ExpectedDigestPolicy{RequiredRuleset: []DigestRef{required}})
	require.NoError(t, err)

	missing := Raw(hex64("cc"))
	err = ValidateStructural(r, "test", ExpectedDigestPolicy{RequiredRuleset: []DigestRef{missing}})
	require.ErrorIs(t, err, ErrDigestSetMismatch)
}

func TestNormalizeDigestSet_SortsDedupes(t *testing.T) {
	a := Raw(strings.Repeat("a", 64))
	b := Raw(strings.Repeat("b", 64))
	dup := Raw(strings.ToUpper(strings.Repeat("a", 64)))

	out := NormalizeDigestSet([]DigestRef{b, a, dup})
	require.Len(t, out, 2)
	require.Equal(t, a.Digest(), out[0].Digest())
	require.Equal(t, b.Digest(), out[1].Digest())
}

func TestTransitionFromMap_AcceptsLegacyKind(t *testing.T) {
	tr, err := TransitionFromMap(map[string]any{"transition_kind": "legacy-op"})
	require.NoError(t, err)
	require.Equal(t, "legacy-op", tr.Kind)
}

func TestTransitionFromMap_MissingKindErrors(t *testing.T) {
	_, err := TransitionFromMap(map[string]any{})
	require.ErrorIs(t, err, ErrMissingTransitionKind)
}

func TestTransition_ReconcileWithRegistry_FillsAndConflicts(t *testing.T) {
	tr := Transition{Kind: "settle"}
	reg := RegistrySnapshotEntry{Kind: "settle", SchemaDigestSHA256: hex64("dd")}

	filled, err := tr.ReconcileWithRegistry(reg)
	require.NoError(t, err)
	require.Equal(t, reg.SchemaDigestSHA256, filled.SchemaDigestSHA256)

	conflicting := filled
	conflicting.SchemaDigestSHA256 = hex64("ee")
	_, err = conflicting.ReconcileWithRegistry(reg)
	require.ErrorIs(t, err, ErrRegistryConflict)
}

func TestComputeGenesisRoot_Deterministic(t *testing.T) {
	in := GenesisInputs{CorridorID: "test", DefinitionPayloadSHA256: hex64("ab")}
	r1, err := ComputeGenesisRoot(in)
	require.NoError(t, err)
	r2, err := ComputeGenesisRoot(in)
	require.NoError(t, err)
	require.Equal(t, r1, r2)
	require.True(t, canon.IsHex32(r1))
}
