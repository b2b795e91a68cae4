package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigestFilterInsertAndQuery(t *testing.T) {
	digestCount := uint64(128)
	bitsPerElement := uint64(10)
	k := uint8(7)

	mBits := MBitsSafeCast(MBits(digestCount, bitsPerElement))
	require.NotZero(t, mBits)
	total := RegionBytes(mBits)

	region := make([]byte, total)
	require.NoError(t, InitFilter(region, digestCount, bitsPerElement, k))

	h, ok, err := DecodeFilterHeader(region)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, BitOrderLSB0, h.BitOrder)
	require.Equal(t, k, h.K)
	require.NotZero(t, h.MBits)
	require.Equal(t, uint32(0), h.NInserted)

	digest := func(b byte) []byte {
		x := make([]byte, ValueBytes)
		x[0] = b
		x[1] = b ^ 0x5A
		return x
	}

	// An empty filter is definitely-not-present for any digest.
	ok0, err := MaybeContainsDigest(region, 0, digest(1))
	require.NoError(t, err)
	require.False(t, ok0)

	// Insert into slot 0 (the slot cas/completeness.go actually uses).
	require.NoError(t, InsertDigest(region, 0, digest(1)))

	ok0, err = MaybeContainsDigest(region, 0, digest(1))
	require.NoError(t, err)
	require.True(t, ok0)

	// Insert multiple digests into a reserved slot.
	for i := byte(0); i < 10; i++ {
		require.NoError(t, InsertDigest(region, 2, digest(i)))
	}
	for i := byte(0); i < 10; i++ {
		ok, err := MaybeContainsDigest(region, 2, digest(i))
		require.NoError(t, err)
		require.True(t, ok)
	}

	// NInserted is a best-effort counter; we increment per InsertDigest call.
	h2, ok, err := DecodeFilterHeader(region)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(1+10), h2.NInserted)
}

func TestDigestFilterRejectsBadInputs(t *testing.T) {
	digestCount := uint64(8)
	bitsPerElement := uint64(8)
	k := uint8(5)

	mBits := MBitsSafeCast(MBits(digestCount, bitsPerElement))
	require.NotZero(t, mBits)
	total := RegionBytes(mBits)

	region := make([]byte, total)
	require.NoError(t, InitFilter(region, digestCount, bitsPerElement, k))

	// Bad slot index.
	err := InsertDigest(region, 4, make([]byte, ValueBytes))
	require.ErrorIs(t, err, ErrBadSlotIndex)

	_, err = MaybeContainsDigest(region, 4, make([]byte, ValueBytes))
	require.ErrorIs(t, err, ErrBadSlotIndex)

	// Bad digest size.
	err = InsertDigest(region, 0, make([]byte, ValueBytes-1))
	require.ErrorIs(t, err, ErrBadElemSize)

	_, err = MaybeContainsDigest(region, 0, make([]byte, ValueBytes+1))
	require.ErrorIs(t, err, ErrBadElemSize)
}

func TestDigestFilterRejectsUninitializedRegion(t *testing.T) {
	digestCount := uint64(8)
	bitsPerElement := uint64(8)

	mBits := MBitsSafeCast(MBits(digestCount, bitsPerElement))
	require.NotZero(t, mBits)
	total := RegionBytes(mBits)

	region := make([]byte, total) // remains all-zero

	_, err := MaybeContainsDigest(region, 0, make([]byte, ValueBytes))
	require.ErrorIs(t, err, ErrNotInitialized)

	err = InsertDigest(region, 0, make([]byte, ValueBytes))
	require.ErrorIs(t, err, ErrNotInitialized)
}
