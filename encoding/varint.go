package encoding

import "encoding/binary"

// ZigZag maps a signed integer to an unsigned one so that small-magnitude
// negative and positive values both encode compactly: v>=0 -> 2v, v<0 -> 2|v|-1.
func ZigZag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63)) //nolint:gosec
}

// UnZigZag reverses ZigZag using branchless bit operations.
func UnZigZag(u uint64) int64 {
	return int64((u >> 1) ^ -(u & 1)) //nolint:gosec
}

// AppendUvarint appends v in LEB128 form: 7 bits per byte, little-endian group
// order, high bit as continuation flag.
func AppendUvarint(dst []byte, v uint64) []byte {
	if v <= 0x7F {
		// Single-byte fast path, the common case for delta-of-delta streams.
		return append(dst, byte(v))
	}

	return binary.AppendUvarint(dst, v)
}

// AppendVarint appends v zigzag-mapped then LEB128-encoded.
func AppendVarint(dst []byte, v int64) []byte {
	return AppendUvarint(dst, ZigZag(v))
}

// Uvarint decodes a LEB128 varint from data starting at offset, returning the
// value and the offset past it. A buffer that ends mid-varint, or a varint
// longer than 64 bits, fails with ErrTruncatedVarint.
func Uvarint(data []byte, offset int) (uint64, int, error) {
	if offset >= len(data) {
		return 0, offset, ErrTruncatedVarint
	}

	cur := offset
	b0 := data[cur]
	cur++
	if b0 < 0x80 {
		return uint64(b0), cur, nil
	}

	value := uint64(b0 & 0x7f)
	shift := uint(7)
	for i := 1; i < binary.MaxVarintLen64; i++ {
		if cur >= len(data) {
			return 0, offset, ErrTruncatedVarint
		}

		b := data[cur]
		cur++

		// The tenth byte holds only the top bit of a uint64; anything
		// larger overflows.
		if i == binary.MaxVarintLen64-1 && b > 1 {
			return 0, offset, ErrTruncatedVarint
		}

		value |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return value, cur, nil
		}
		shift += 7
	}

	return 0, offset, ErrTruncatedVarint
}

// Varint decodes a zigzag varint from data starting at offset.
func Varint(data []byte, offset int) (int64, int, error) {
	u, next, err := Uvarint(data, offset)
	if err != nil {
		return 0, offset, err
	}

	return UnZigZag(u), next, nil
}
