package encoding

import (
	"fmt"
	"math"
)

// Delta payload: a mode byte, the first value as raw 8 bytes, then one delta
// per subsequent value. Deltas are wrapping uint64 differences of the IEEE-754
// bit patterns, not arithmetic float differences: prev + (cur - prev) rounds
// when exponents diverge, while bit-pattern arithmetic inverts exactly, and
// adjacent similar floats still produce small deltas.
//
// Mode 0 stores each delta as a fixed 8-byte field. Mode 1 (chosen when zero
// deltas exceed deltaZeroRunFraction of the stream) run-length encodes the
// zigzag deltas instead, collapsing repeated values to a single pair.
//
// This codec is the always-correct competitor to the XOR codec; the general
// path encodes both and keeps the smaller payload.

const (
	deltaModePlain   = 0x0
	deltaModeZeroRun = 0x1

	deltaZeroRunFraction = 0.7
)

func (c ValueCodec) encodeDelta(values []float64) []byte {
	if len(values) == 0 {
		return nil
	}

	deltas := make([]int64, 0, len(values)-1)
	zeros := 0
	prev := math.Float64bits(values[0])
	for _, v := range values[1:] {
		cur := math.Float64bits(v)
		d := int64(cur - prev) //nolint:gosec
		prev = cur

		if d == 0 {
			zeros++
		}
		deltas = append(deltas, d)
	}

	mode := byte(deltaModePlain)
	if len(deltas) > 0 && float64(zeros)/float64(len(deltas)) > deltaZeroRunFraction {
		mode = deltaModeZeroRun
	}

	payload := append([]byte{mode}, c.appendFloatBits(nil, values[0])...)

	if mode == deltaModeZeroRun {
		return AppendRLE(payload, deltas)
	}

	for _, d := range deltas {
		payload = c.engine.AppendUint64(payload, uint64(d)) //nolint:gosec
	}

	return payload
}

func (c ValueCodec) decodeDelta(payload []byte, count int) ([]float64, error) {
	if count == 0 {
		return []float64{}, nil
	}

	if len(payload) < 1 {
		return nil, fmt.Errorf("delta mode byte: %w", ErrTruncatedPayload)
	}
	mode := payload[0]
	if mode != deltaModePlain && mode != deltaModeZeroRun {
		return nil, fmt.Errorf("delta mode 0x%x: %w", mode, ErrTruncatedPayload)
	}

	first, offset, err := c.readFloatBits(payload, 1)
	if err != nil {
		return nil, err
	}

	var deltas []int64
	if mode == deltaModeZeroRun {
		deltas, _, err = DecodeRLE(payload, offset, count-1)
		if err != nil {
			return nil, err
		}
	} else {
		if offset+(count-1)*8 > len(payload) {
			return nil, fmt.Errorf("delta stream: %w", ErrTruncatedPayload)
		}

		deltas = make([]int64, 0, count-1)
		for i := 0; i < count-1; i++ {
			deltas = append(deltas, int64(c.engine.Uint64(payload[offset:offset+8]))) //nolint:gosec
			offset += 8
		}
	}

	out := make([]float64, 0, count)
	out = append(out, first)

	prev := math.Float64bits(first)
	for _, d := range deltas {
		prev += uint64(d) //nolint:gosec
		out = append(out, math.Float64frombits(prev))
	}

	return out, nil
}
