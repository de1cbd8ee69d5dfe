package encoding

import (
	"fmt"
	"math"
)

// Power-of-two payload: one zigzag varint per value holding the exponent, or
// -1 as a sentinel for values that are not exact non-negative powers of two,
// followed by the literal values for sentinel positions in order.

func (c ValueCodec) encodePowerOfTwo(values []float64) []byte {
	var payload []byte
	var literals []float64

	for _, v := range values {
		if exp, ok := powerOfTwoExponent(v); ok {
			payload = AppendVarint(payload, int64(exp))
		} else {
			payload = AppendVarint(payload, -1)
			literals = append(literals, v)
		}
	}

	payload = AppendUvarint(payload, uint64(len(literals)))
	for _, v := range literals {
		payload = c.appendFloatBits(payload, v)
	}

	return payload
}

func (c ValueCodec) decodePowerOfTwo(payload []byte, count int) ([]float64, error) {
	// Each value spends at least one exponent byte, so a count the payload
	// cannot cover is rejected before sizing the output.
	if count > len(payload) {
		return nil, fmt.Errorf("power-of-two count %d for %d bytes: %w", count, len(payload), ErrTruncatedPayload)
	}

	out := make([]float64, count)
	sentinels := make([]int, 0)

	offset := 0
	for i := range out {
		exp, next, err := Varint(payload, offset)
		if err != nil {
			return nil, fmt.Errorf("power-of-two exponent %d: %w", i, ErrTruncatedPayload)
		}
		offset = next

		switch {
		case exp == -1:
			sentinels = append(sentinels, i)
		case exp < 0 || exp > 1023:
			return nil, fmt.Errorf("power-of-two exponent %d out of range: %w", exp, ErrTruncatedPayload)
		default:
			out[i] = math.Ldexp(1, int(exp))
		}
	}

	numLiterals, offset, err := Uvarint(payload, offset)
	if err != nil {
		return nil, fmt.Errorf("power-of-two literal count: %w", ErrTruncatedPayload)
	}
	if numLiterals != uint64(len(sentinels)) { //nolint:gosec
		return nil, fmt.Errorf("power-of-two literal count %d, expected %d: %w", numLiterals, len(sentinels), ErrTruncatedPayload)
	}

	for _, idx := range sentinels {
		v, next, err := c.readFloatBits(payload, offset)
		if err != nil {
			return nil, err
		}
		offset = next

		out[idx] = v
	}

	return out, nil
}

// Mostly-integer payload: one zigzag varint per value holding the integer
// part (0 at exception positions), followed by literal exceptions for values
// that do not survive an int64 round trip bit-exactly. That covers fractional
// values, negative zero, and magnitudes beyond 2^62.

func (c ValueCodec) encodeMostlyInteger(values []float64) []byte {
	var payload []byte
	var exceptionIdx []int
	var exceptionVal []float64

	for i, v := range values {
		if iv, ok := integerExact(v); ok {
			payload = AppendVarint(payload, iv)
		} else {
			payload = AppendVarint(payload, 0)
			exceptionIdx = append(exceptionIdx, i)
			exceptionVal = append(exceptionVal, v)
		}
	}

	return c.appendExceptions(payload, exceptionIdx, exceptionVal)
}

func (c ValueCodec) decodeMostlyInteger(payload []byte, count int) ([]float64, error) {
	// One varint byte minimum per value bounds count before allocation.
	if count > len(payload) {
		return nil, fmt.Errorf("mostly-integer count %d for %d bytes: %w", count, len(payload), ErrTruncatedPayload)
	}

	out := make([]float64, count)

	offset := 0
	for i := range out {
		iv, next, err := Varint(payload, offset)
		if err != nil {
			return nil, fmt.Errorf("integer part %d: %w", i, ErrTruncatedPayload)
		}
		offset = next

		out[i] = float64(iv)
	}

	if _, err := c.applyExceptions(out, payload, offset); err != nil {
		return nil, err
	}

	return out, nil
}
