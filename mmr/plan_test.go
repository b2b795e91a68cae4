package mmr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeakPlan_SumsToSize(t *testing.T) {
	for n := uint64(0); n <= 100; n++ {
		plan := PeakPlan(n)
		var total uint64
		for _, e := range plan {
			total += e.LeafCount
		}
		require.Equal(t, n, total, "n=%d", n)
		for i := 1; i < len(plan); i++ {
			require.Less(t, plan[i].Height, plan[i-1].Height, "n=%d", n)
		}
	}
}

func TestPeakPlan_KnownShapes(t *testing.T) {
	// 11 = 8 + 2 + 1 -> heights 3,1,0
	plan := PeakPlan(11)
	require.Equal(t, []PlanEntry{
		{Height: 3, LeafCount: 8},
		{Height: 1, LeafCount: 2},
		{Height: 0, LeafCount: 1},
	}, plan)

	// Power of two: a single peak.
	plan = PeakPlan(16)
	require.Equal(t, []PlanEntry{{Height: 4, LeafCount: 16}}, plan)

	require.Empty(t, PeakPlan(0))
}

func TestLocatePeak_OutOfRange(t *testing.T) {
	_, _, _, err := LocatePeak(4, 4)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, _, _, err = LocatePeak(0, 0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestLocatePeak_MatchesPlan(t *testing.T) {
	size := uint64(11)
	cases := []struct {
		leaf          uint64
		wantPeakIndex int
		wantHeight    uint64
	}{
		{0, 0, 3}, {7, 0, 3},
		{8, 1, 1}, {9, 1, 1},
		{10, 2, 0},
	}
	for _, c := range cases {
		idx, _, height, err := LocatePeak(size, c.leaf)
		require.NoError(t, err)
		require.Equal(t, c.wantPeakIndex, idx, "leaf=%d", c.leaf)
		require.Equal(t, c.wantHeight, height, "leaf=%d", c.leaf)
	}
}
