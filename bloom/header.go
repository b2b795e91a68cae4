package bloom

import "bytes"

// DecodeFilterHeader decodes a filter header from region.
//
// ok=false indicates the region is zero-filled / uninitialized.
func DecodeFilterHeader(region []byte) (h FilterHeader, ok bool, err error) {
	if len(region) < HeaderBytes {
		return FilterHeader{}, false, ErrBadRegionSize
	}

	if bytes.Equal(region[0:4], []byte{0, 0, 0, 0}) {
		return FilterHeader{}, false, nil
	}

	if string(region[0:4]) != Magic {
		return FilterHeader{}, false, ErrBadMagic
	}
	if region[4] != Version {
		return FilterHeader{}, false, ErrBadVersion
	}

	h.BitOrder = region[5]
	h.K = region[6]
	slots := region[7]
	h.MBits = readU32BE(region[8:12])
	h.NInserted = readU32BE(region[12:16])

	if slots != Slots {
		return FilterHeader{}, false, ErrBadSlots
	}
	if h.BitOrder != BitOrderLSB0 {
		return FilterHeader{}, false, ErrBadBitOrder
	}
	if h.K == 0 {
		return FilterHeader{}, false, ErrBadK
	}
	if h.MBits == 0 {
		return FilterHeader{}, false, ErrBadMBits
	}

	return h, true, nil
}

// EncodeFilterHeader writes a filter header into region.
func EncodeFilterHeader(region []byte, h FilterHeader) error {
	if len(region) < HeaderBytes {
		return ErrBadRegionSize
	}
	if h.BitOrder != BitOrderLSB0 {
		return ErrBadBitOrder
	}
	if h.K == 0 {
		return ErrBadK
	}
	if h.MBits == 0 {
		return ErrBadMBits
	}

	copy(region[0:4], []byte(Magic))
	region[4] = Version
	region[5] = h.BitOrder
	region[6] = h.K
	region[7] = Slots
	writeU32BE(region[8:12], h.MBits)
	writeU32BE(region[12:16], h.NInserted)
	clear(region[16:HeaderBytes])
	return nil
}
