package encoding

import (
	"fmt"
	"math"
)

// Periodic payload: uvarint period + the first period values as raw 8-byte
// fields (the base pattern) + the remaining values as run-length encoded XOR
// deviations against the repeating base.
//
// Deviations are XORs of bit patterns rather than arithmetic differences:
// an exact repeat XORs to zero (so exactly periodic series collapse to a
// single RLE pair) and reconstruction is bit-exact by construction, with no
// float arithmetic to round.

func (c ValueCodec) encodePeriodic(values []float64, period int) []byte {
	payload := AppendUvarint(nil, uint64(period)) //nolint:gosec
	for _, v := range values[:period] {
		payload = c.appendFloatBits(payload, v)
	}

	deviations := make([]uint64, 0, len(values)-period)
	for i := period; i < len(values); i++ {
		base := math.Float64bits(values[i%period])
		deviations = append(deviations, math.Float64bits(values[i])^base)
	}

	return AppendURLE(payload, deviations)
}

func (c ValueCodec) decodePeriodic(payload []byte, count int) ([]float64, error) {
	period64, offset, err := Uvarint(payload, 0)
	if err != nil {
		return nil, fmt.Errorf("periodic period: %w", ErrTruncatedPayload)
	}

	period := int(period64) //nolint:gosec
	if period <= 0 || period > count {
		return nil, fmt.Errorf("periodic period %d with count %d: %w", period, count, ErrTruncatedPayload)
	}

	out := make([]float64, count)
	for i := 0; i < period; i++ {
		v, next, err := c.readFloatBits(payload, offset)
		if err != nil {
			return nil, err
		}
		offset = next

		out[i] = v
	}

	deviations, _, err := DecodeURLE(payload, offset, count-period)
	if err != nil {
		return nil, err
	}

	for i, dev := range deviations {
		idx := period + i
		base := math.Float64bits(out[idx%period])
		out[idx] = math.Float64frombits(base ^ dev)
	}

	return out, nil
}
