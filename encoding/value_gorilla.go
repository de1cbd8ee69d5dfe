package encoding

import (
	"fmt"
	"math"
	"math/bits"
)

// Gorilla-style XOR payload. The first value is stored as 64 literal bits;
// each subsequent value is XORed with its predecessor:
//
//	xor == 0: a single 0 control bit (perfect repeat)
//	xor != 0: control bit 1, 6 bits of leading-zero count, 6 bits of
//	          significant-bit count, then the significant bits (the xor
//	          right-shifted by its trailing-zero count)
//
// A significant-bit count of 64 does not fit the 6-bit field; it is stored as
// 0 and the decoder maps 0 back to 64. There is no byte alignment inside the
// stream except the zero-padded final flush.
//
// See https://www.vldb.org/pvldb/vol8/p1816-teller.pdf for the original
// scheme; this layout drops the previous-block reuse control bit in favor of
// explicit per-value field widths.

func (c ValueCodec) encodeXOR(values []float64) []byte {
	if len(values) == 0 {
		return nil
	}

	w := NewBitWriter()
	defer w.Finish()

	prev := math.Float64bits(values[0])
	w.WriteBits(prev, 64)

	for _, v := range values[1:] {
		cur := math.Float64bits(v)
		xor := cur ^ prev
		prev = cur

		if xor == 0 {
			w.WriteBit(0)
			continue
		}

		w.WriteBit(1)

		leading := bits.LeadingZeros64(xor)
		trailing := bits.TrailingZeros64(xor)
		significant := 64 - leading - trailing
		if significant <= 0 {
			// Unreachable for xor != 0, but the clamp keeps the field width
			// positive no matter what.
			leading = 63
			trailing = 0
			significant = 1
		}

		w.WriteBits(uint64(leading), 6)                //nolint:gosec
		w.WriteBits(uint64(significant&63), 6)         //nolint:gosec
		w.WriteBits(xor>>uint(trailing), significant)  //nolint:gosec
	}

	out := make([]byte, len(w.Bytes()))
	copy(out, w.Bytes())

	return out
}

func (c ValueCodec) decodeXOR(payload []byte, count int) ([]float64, error) {
	if count == 0 {
		return []float64{}, nil
	}

	r := NewBitReader(payload)

	first, err := r.ReadBits(64)
	if err != nil {
		return nil, fmt.Errorf("xor first value: %w", err)
	}

	out := make([]float64, 0, count)
	prev := first
	out = append(out, math.Float64frombits(prev))

	for len(out) < count {
		controlBit, err := r.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("xor control bit: %w", err)
		}

		if controlBit == 0 {
			out = append(out, math.Float64frombits(prev))
			continue
		}

		leading, err := r.ReadBits(6)
		if err != nil {
			return nil, fmt.Errorf("xor leading count: %w", err)
		}

		significant, err := r.ReadBits(6)
		if err != nil {
			return nil, fmt.Errorf("xor significant count: %w", err)
		}
		if significant == 0 {
			significant = 64
		}

		trailing := 64 - int(leading) - int(significant) //nolint:gosec
		if trailing < 0 {
			return nil, fmt.Errorf("leading %d + significant %d exceed 64: %w", leading, significant, ErrCorruptXORStream)
		}

		significantBits, err := r.ReadBits(int(significant)) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("xor significant bits: %w", err)
		}

		prev ^= significantBits << uint(trailing) //nolint:gosec
		out = append(out, math.Float64frombits(prev))
	}

	return out, nil
}
