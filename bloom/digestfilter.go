package bloom

import (
	"crypto/sha256"
)

const digestFilterDomain = 0xCA

// InitFilter initializes a zero-filled region with a FilterHeader, sized to
// hold digestCount elements at bitsPerElement bits each.
//
// The caller must allocate region with at least RegionBytes(mBits), where:
//
//	mBits = uint32(bitsPerElement * digestCount)
func InitFilter(region []byte, digestCount uint64, bitsPerElement uint64, k uint8) error {
	if digestCount == 0 || bitsPerElement == 0 {
		return ErrBadMBits
	}
	if err := CheckBPE(bitsPerElement); err != nil {
		return err
	}
	mBits := MBitsSafeCast(MBits(digestCount, bitsPerElement))
	if mBits == 0 {
		return ErrMBitsOverflow
	}
	bitsetBytes := BitsetBytes(mBits)
	need := uint64(HeaderBytes) + uint64(Slots)*uint64(bitsetBytes)
	if uint64(len(region)) < need {
		return ErrBadRegionSize
	}

	// Ensure clean initialization even if region is reused.
	clear(region[:need])

	return EncodeFilterHeader(region, FilterHeader{
		BitOrder:  BitOrderLSB0,
		K:         k,
		MBits:     mBits,
		NInserted: 0,
	})
}

// InsertDigest inserts a 32-byte content digest into slotIdx and increments
// NInserted in the header.
func InsertDigest(region []byte, slotIdx uint8, digest []byte) error {
	if slotIdx >= Slots {
		return ErrBadSlotIndex
	}
	if len(digest) != ValueBytes {
		return ErrBadElemSize
	}

	h, ok, err := DecodeFilterHeader(region)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotInitialized
	}

	bitsetBytes := BitsetBytes(h.MBits)
	off, err := slotBitsetOffset(slotIdx, bitsetBytes)
	if err != nil {
		return err
	}
	end := uint64(off) + uint64(bitsetBytes)
	if uint64(len(region)) < end {
		return ErrBadRegionSize
	}
	bitset := region[off : off+bitsetBytes]

	h1, h2 := hashPair(slotIdx, digest)
	setBitsLSB0(bitset, uint64(h.MBits), h.K, h1, h2)

	// Update optional counter.
	h.NInserted++
	return EncodeFilterHeader(region, h)
}

// MaybeContainsDigest checks membership for digest in slotIdx.
//
// Returns (false,nil) if the filter says "definitely not present" — the
// caller can skip a content-addressed store lookup entirely.
// Returns (true,nil) if the filter says "maybe present" — the caller must
// still confirm against the store, since Bloom filters never false-negative
// but can false-positive.
func MaybeContainsDigest(region []byte, slotIdx uint8, digest []byte) (bool, error) {
	if slotIdx >= Slots {
		return false, ErrBadSlotIndex
	}
	if len(digest) != ValueBytes {
		return false, ErrBadElemSize
	}

	h, ok, err := DecodeFilterHeader(region)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrNotInitialized
	}

	bitsetBytes := BitsetBytes(h.MBits)
	off, err := slotBitsetOffset(slotIdx, bitsetBytes)
	if err != nil {
		return false, err
	}
	end := uint64(off) + uint64(bitsetBytes)
	if uint64(len(region)) < end {
		return false, ErrBadRegionSize
	}
	bitset := region[off : off+bitsetBytes]

	h1, h2 := hashPair(slotIdx, digest)
	return testBitsLSB0(bitset, uint64(h.MBits), h.K, h1, h2), nil
}

func hashPair(slotIdx uint8, digest []byte) (h1 uint64, h2 uint64) {
	// SHA-256( 0xCA || slotIdx || digest )
	var buf [1 + 1 + ValueBytes]byte
	buf[0] = digestFilterDomain
	buf[1] = slotIdx
	copy(buf[2:], digest)
	sum := sha256.Sum256(buf[:])
	h1 = readU64BE(sum[0:8])
	h2 = readU64BE(sum[8:16])
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

func setBitsLSB0(bitset []byte, mBits uint64, k uint8, h1, h2 uint64) {
	for i := uint64(0); i < uint64(k); i++ {
		j := (h1 + i*h2) % mBits
		byteIdx := j >> 3
		bit := uint8(j & 7)
		bitset[byteIdx] |= (1 << bit)
	}
}

func testBitsLSB0(bitset []byte, mBits uint64, k uint8, h1, h2 uint64) bool {
	for i := uint64(0); i < uint64(k); i++ {
		j := (h1 + i*h2) % mBits
		byteIdx := j >> 3
		bit := uint8(j & 7)
		if (bitset[byteIdx] & (1 << bit)) == 0 {
			return false
		}
	}
	return true
}
