package encoding

import (
	"fmt"
	"math"
)

// sparseFallthroughFraction is the non-zero density above which the sparse
// layout stops paying for itself and the general path takes over.
const sparseFallthroughFraction = 0.3

// Sparse payload: uvarint length + uvarint non-zero count + delta-encoded
// non-zero indices (first index, then gaps) + the non-zero values as raw
// 8-byte fields. "Zero" means positive zero bits; negative zero is stored as
// a non-zero value so its sign bit survives the round trip.

// encodeSparse reports ok=false when the series is too dense for the sparse
// layout, in which case the caller falls through to the general path.
func (c ValueCodec) encodeSparse(values []float64) ([]byte, bool) {
	nonZero := make([]int, 0, len(values))
	for i, v := range values {
		if math.Float64bits(v) != 0 {
			nonZero = append(nonZero, i)
		}
	}

	if len(values) > 0 && float64(len(nonZero))/float64(len(values)) >= sparseFallthroughFraction {
		return nil, false
	}

	payload := AppendUvarint(nil, uint64(len(values)))
	payload = AppendUvarint(payload, uint64(len(nonZero)))

	prev := 0
	for _, idx := range nonZero {
		payload = AppendUvarint(payload, uint64(idx-prev)) //nolint:gosec
		prev = idx
	}

	for _, idx := range nonZero {
		payload = c.appendFloatBits(payload, values[idx])
	}

	return payload, true
}

func (c ValueCodec) decodeSparse(payload []byte, count int) ([]float64, error) {
	length, offset, err := Uvarint(payload, 0)
	if err != nil {
		return nil, fmt.Errorf("sparse length: %w", ErrTruncatedPayload)
	}
	if length != uint64(count) { //nolint:gosec
		return nil, fmt.Errorf("sparse length %d, expected %d: %w", length, count, ErrTruncatedPayload)
	}

	numNonZero, offset, err := Uvarint(payload, offset)
	if err != nil {
		return nil, fmt.Errorf("sparse non-zero count: %w", ErrTruncatedPayload)
	}
	if numNonZero > uint64(count) { //nolint:gosec
		return nil, fmt.Errorf("sparse non-zero count %d exceeds %d: %w", numNonZero, count, ErrTruncatedPayload)
	}

	indices := make([]int, numNonZero)
	pos := 0
	for i := range indices {
		gap, next, err := Uvarint(payload, offset)
		if err != nil {
			return nil, fmt.Errorf("sparse index gap %d: %w", i, ErrTruncatedPayload)
		}
		offset = next

		pos += int(gap) //nolint:gosec
		if pos >= count {
			return nil, fmt.Errorf("sparse index %d out of range %d: %w", pos, count, ErrTruncatedPayload)
		}
		indices[i] = pos
	}

	out := make([]float64, count)
	for _, idx := range indices {
		v, next, err := c.readFloatBits(payload, offset)
		if err != nil {
			return nil, err
		}
		offset = next

		out[idx] = v
	}

	return out, nil
}
