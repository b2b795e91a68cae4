package mmr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInclusionProof_RoundTrip covers the first half of spec property 7: for
// any chain of size n and any leaf index i, verify(build(S, i)) is true. The
// other half (a changed path element or leaf hash makes it false) is covered
// by the two Mutated tests below.
func TestInclusionProof_RoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 15, 16, 17, 31} {
		values := leafValues(n)
		for i := 0; i < n; i++ {
			proof, err := BuildInclusionProof(values, uint64(i))
			require.NoError(t, err, "n=%d i=%d", n, i)

			ok, err := VerifyInclusionProof(proof)
			require.NoError(t, err, "n=%d i=%d", n, i)
			require.True(t, ok, "n=%d i=%d", n, i)
		}
	}
}

func TestInclusionProof_MutatedPathFails(t *testing.T) {
	values := leafValues(4)
	proof, err := BuildInclusionProof(values, 1)
	require.NoError(t, err)
	require.NotEmpty(t, proof.Path)

	mutated := proof
	mutated.Path = append([]PathStep{}, proof.Path...)
	mutated.Path[0] = PathStep{Side: mutated.Path[0].Side, Hash: Digest{}}

	ok, err := VerifyInclusionProof(mutated)
	require.False(t, ok)
	require.ErrorIs(t, err, ErrVerifyFailed)

	// Restoring the original proof must verify again.
	ok, err = VerifyInclusionProof(proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestInclusionProof_MutatedLeafHashFails(t *testing.T) {
	values := leafValues(5)
	proof, err := BuildInclusionProof(values, 3)
	require.NoError(t, err)

	proof.LeafHash = Digest{0xFF}
	ok, err := VerifyInclusionProof(proof)
	require.False(t, ok)
	require.Error(t, err)
}

func TestInclusionProof_DegeneratePerfectPeakHasEmptyPath(t *testing.T) {
	values := leafValues(1)
	proof, err := BuildInclusionProof(values, 0)
	require.NoError(t, err)
	require.Empty(t, proof.Path)
	require.Equal(t, proof.LeafHash, proof.Root)
}

func TestBuildInclusionProof_OutOfRange(t *testing.T) {
	_, err := BuildInclusionProof(leafValues(3), 3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = BuildInclusionProof(nil, 0)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestInclusionProof_CheckpointBootstrapEquivalence(t *testing.T) {
	// spec property 9 (reduced to the mmr layer): verifying from a signed
	// checkpoint's peaks plus the tail of receipts reproduces the same root
	// as verifying from genesis.
	values := leafValues(12)
	leaves := toLeafHashes(values)

	fullRoot, err := BagPeaks(BuildPeaks(leaves))
	require.NoError(t, err)

	checkpointPeaks := BuildPeaks(leaves[:7])
	extended := AppendPeaks(checkpointPeaks, leaves[7:])
	extendedRoot, err := BagPeaks(extended)
	require.NoError(t, err)

	require.Equal(t, fullRoot, extendedRoot)
}
