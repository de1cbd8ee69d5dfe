package encoding

import (
	"fmt"
	"math"
)

// Constant payload: 8-byte value bits + uvarint count.

func (c ValueCodec) encodeConstant(values []float64) []byte {
	payload := c.appendFloatBits(nil, values[0])
	payload = AppendUvarint(payload, uint64(len(values)))

	return payload
}

func (c ValueCodec) decodeConstant(payload []byte, count int) ([]float64, error) {
	value, offset, err := c.readFloatBits(payload, 0)
	if err != nil {
		return nil, err
	}

	stored, _, err := Uvarint(payload, offset)
	if err != nil {
		return nil, fmt.Errorf("constant count: %w", ErrTruncatedPayload)
	}
	if stored != uint64(count) { //nolint:gosec
		return nil, fmt.Errorf("constant count %d, expected %d: %w", stored, count, ErrTruncatedPayload)
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = value
	}

	return out, nil
}

// Near-constant payload: 8-byte base + 8-byte precision + one zigzag varint
// quantized deviation per value + literal exceptions for positions where the
// quantized reconstruction is not bit-identical.

const (
	nearConstantMinPrecision = 1e-6
	nearConstantSteps        = 1000
)

// nearConstantValue is the shared reconstruction helper. Encoder and decoder
// both go through it: the intermediate variable keeps the multiply and add as
// two separately rounded operations, so no build can fuse them differently on
// the two sides.
func nearConstantValue(base, precision float64, quantized int64) float64 {
	deviation := float64(quantized) * precision

	return base + deviation
}

func (c ValueCodec) encodeNearConstant(values []float64) []byte {
	base := values[0]

	maxDeviation := 0.0
	for _, v := range values {
		if d := math.Abs(v - base); d > maxDeviation {
			maxDeviation = d
		}
	}

	precision := maxDeviation / nearConstantSteps
	if precision < nearConstantMinPrecision {
		precision = nearConstantMinPrecision
	}

	payload := c.appendFloatBits(nil, base)
	payload = c.appendFloatBits(payload, precision)

	var exceptionIdx []int
	var exceptionVal []float64
	for i, v := range values {
		quantized := int64(math.Round((v - base) / precision))
		payload = AppendVarint(payload, quantized)

		if math.Float64bits(nearConstantValue(base, precision, quantized)) != math.Float64bits(v) {
			exceptionIdx = append(exceptionIdx, i)
			exceptionVal = append(exceptionVal, v)
		}
	}

	return c.appendExceptions(payload, exceptionIdx, exceptionVal)
}

func (c ValueCodec) decodeNearConstant(payload []byte, count int) ([]float64, error) {
	base, offset, err := c.readFloatBits(payload, 0)
	if err != nil {
		return nil, err
	}

	precision, offset, err := c.readFloatBits(payload, offset)
	if err != nil {
		return nil, err
	}

	out := make([]float64, count)
	for i := range out {
		quantized, next, err := Varint(payload, offset)
		if err != nil {
			return nil, fmt.Errorf("near-constant deviation %d: %w", i, ErrTruncatedPayload)
		}
		offset = next

		out[i] = nearConstantValue(base, precision, quantized)
	}

	if _, err := c.applyExceptions(out, payload, offset); err != nil {
		return nil, err
	}

	return out, nil
}

// Linear payload: 8-byte start + 8-byte delta + uvarint count + literal
// exceptions. Decode is start + i*delta through the shared helper.

func linearValue(start, delta float64, index int) float64 {
	step := delta * float64(index)

	return start + step
}

func (c ValueCodec) encodeLinear(values []float64) []byte {
	start := values[0]
	delta := values[1] - values[0]

	payload := c.appendFloatBits(nil, start)
	payload = c.appendFloatBits(payload, delta)
	payload = AppendUvarint(payload, uint64(len(values)))

	var exceptionIdx []int
	var exceptionVal []float64
	for i, v := range values {
		if math.Float64bits(linearValue(start, delta, i)) != math.Float64bits(v) {
			exceptionIdx = append(exceptionIdx, i)
			exceptionVal = append(exceptionVal, v)
		}
	}

	return c.appendExceptions(payload, exceptionIdx, exceptionVal)
}

func (c ValueCodec) decodeLinear(payload []byte, count int) ([]float64, error) {
	start, offset, err := c.readFloatBits(payload, 0)
	if err != nil {
		return nil, err
	}

	delta, offset, err := c.readFloatBits(payload, offset)
	if err != nil {
		return nil, err
	}

	stored, offset, err := Uvarint(payload, offset)
	if err != nil {
		return nil, fmt.Errorf("linear count: %w", ErrTruncatedPayload)
	}
	if stored != uint64(count) { //nolint:gosec
		return nil, fmt.Errorf("linear count %d, expected %d: %w", stored, count, ErrTruncatedPayload)
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = linearValue(start, delta, i)
	}

	if _, err := c.applyExceptions(out, payload, offset); err != nil {
		return nil, err
	}

	return out, nil
}
