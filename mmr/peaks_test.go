package mmr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func leafValues(n int) []Digest {
	out := make([]Digest, n)
	for i := range out {
		var d Digest
		d[0] = byte(i)
		d[1] = byte(i >> 8)
		d[31] = 0xAA
		out[i] = d
	}
	return out
}

func TestBuildPeaks_HeightsStrictlyDecreasing(t *testing.T) {
	for n := 1; n <= 64; n++ {
		peaks := BuildPeaks(toLeafHashes(leafValues(n)))
		for i := 1; i < len(peaks); i++ {
			require.Less(t, peaks[i].Height, peaks[i-1].Height, "n=%d", n)
		}
		require.Equal(t, uint64(n), Size(peaks), "n=%d", n)
	}
}

func toLeafHashes(values []Digest) []Digest {
	out := make([]Digest, len(values))
	for i, v := range values {
		out[i] = LeafHash(v)
	}
	return out
}

// TestAppendEquivalence checks spec property 5: build(S) == append(build(S[:k]), S[k:])
func TestAppendEquivalence(t *testing.T) {
	values := leafValues(37)
	leaves := toLeafHashes(values)

	full := BuildPeaks(leaves)
	fullRoot, err := BagPeaks(full)
	require.NoError(t, err)

	for k := 0; k <= len(leaves); k++ {
		prefix := AppendPeaks(nil, leaves[:k])
		combined := AppendPeaks(prefix, leaves[k:])
		combinedRoot, err := BagPeaks(combined)
		require.NoError(t, err)
		require.Equal(t, fullRoot, combinedRoot, "k=%d", k)
		require.Equal(t, full, combined, "k=%d", k)
	}
}

func TestBagPeaks_SinglePeakIsItsOwnRoot(t *testing.T) {
	values := leafValues(1)
	leaves := toLeafHashes(values)
	peaks := BuildPeaks(leaves)
	require.Len(t, peaks, 1)
	root, err := BagPeaks(peaks)
	require.NoError(t, err)
	require.Equal(t, peaks[0].Hash, root)
	require.Equal(t, LeafHash(values[0]), root)
}

func TestBagPeaks_EmptyIsError(t *testing.T) {
	_, err := BagPeaks(nil)
	require.ErrorIs(t, err, ErrEmptyAccumulator)
}

func TestLeafNodeHashDomainSeparation(t *testing.T) {
	var a Digest
	a[0] = 1
	leaf := LeafHash(a)
	node := NodeHash(a, a)
	require.NotEqual(t, leaf, node)
}
