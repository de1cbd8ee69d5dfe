package encoding

import (
	"fmt"
	"math"

	"github.com/telemetrika/blockpack/endian"
	"github.com/telemetrika/blockpack/format"
)

// ValueCodec encodes a float64 sequence into a tagged payload using the
// best-fit strategy for its detected pattern, and decodes any tagged payload
// back bit-exactly.
//
// The strategy set is fixed at compile time: dispatch is an exhaustive switch
// over the method tags rather than a runtime lookup table, so a tag without a
// decoder is a compile-visible hole instead of a silent failure. A ValueCodec
// is immutable and safe for concurrent use.
type ValueCodec struct {
	engine   endian.EndianEngine
	detector Detector
}

// NewValueCodec creates a value codec using engine for fixed-width fields and
// cfg for the pattern detector cutoffs.
func NewValueCodec(engine endian.EndianEngine, cfg DetectorConfig) ValueCodec {
	return ValueCodec{
		engine:   engine,
		detector: NewDetector(cfg),
	}
}

// Detector returns the codec's pattern detector.
func (c ValueCodec) Detector() Detector {
	return c.detector
}

// Encode classifies values and returns the method tag and payload of the
// selected strategy. Encoding never fails: when no strong pattern is detected
// (and when a sparse classification falls through) the XOR and delta codecs
// are both run and the smaller payload wins.
func (c ValueCodec) Encode(values []float64) (format.ValueEncoding, []byte) {
	cls := c.detector.Detect(values)

	switch cls.Pattern {
	case format.PatternConstant:
		return format.ValueConstant, c.encodeConstant(values)
	case format.PatternNearConstant:
		return format.ValueNearConstant, c.encodeNearConstant(values)
	case format.PatternSparse:
		if payload, ok := c.encodeSparse(values); ok {
			return format.ValueSparse, payload
		}

		return c.encodeGeneral(values)
	case format.PatternPowerOfTwo:
		return format.ValuePowerOfTwo, c.encodePowerOfTwo(values)
	case format.PatternMostlyInteger:
		return format.ValueMostlyInteger, c.encodeMostlyInteger(values)
	case format.PatternPeriodic:
		return format.ValuePeriodic, c.encodePeriodic(values, cls.Period)
	case format.PatternLinear:
		return format.ValueLinear, c.encodeLinear(values)
	case format.PatternQuantized, format.PatternQuantizedStepped:
		return format.ValueQuantized, c.encodeQuantized(values)
	default:
		return c.encodeGeneral(values)
	}
}

// Decode reconstructs exactly count values from a tagged payload.
func (c ValueCodec) Decode(tag format.ValueEncoding, payload []byte, count int) ([]float64, error) {
	switch tag {
	case format.ValueConstant:
		return c.decodeConstant(payload, count)
	case format.ValueNearConstant:
		return c.decodeNearConstant(payload, count)
	case format.ValuePowerOfTwo:
		return c.decodePowerOfTwo(payload, count)
	case format.ValueMostlyInteger:
		return c.decodeMostlyInteger(payload, count)
	case format.ValueLinear:
		return c.decodeLinear(payload, count)
	case format.ValuePeriodic:
		return c.decodePeriodic(payload, count)
	case format.ValueQuantized:
		return c.decodeQuantized(payload, count)
	case format.ValueSparse:
		return c.decodeSparse(payload, count)
	case format.ValueXOR:
		return c.decodeXOR(payload, count)
	case format.ValueDelta:
		return c.decodeDelta(payload, count)
	default:
		return nil, fmt.Errorf("value encoding 0x%x: %w", uint8(tag), ErrUnknownMethodTag)
	}
}

// encodeGeneral runs the XOR-vs-delta competition. Both payloads are always
// produced and compared by byte length, never assumed.
func (c ValueCodec) encodeGeneral(values []float64) (format.ValueEncoding, []byte) {
	best := selectSmaller(
		payloadCandidate{encoding: format.ValueXOR, payload: c.encodeXOR(values)},
		payloadCandidate{encoding: format.ValueDelta, payload: c.encodeDelta(values)},
	)

	return best.encoding, best.payload
}

// payloadCandidate pairs a method tag with the payload its encoder produced.
type payloadCandidate struct {
	encoding format.ValueEncoding
	payload  []byte
}

// selectSmaller picks the candidate with the shortest payload. Ties go to the
// earliest candidate so selection stays deterministic.
func selectSmaller(candidates ...payloadCandidate) payloadCandidate {
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if len(cand.payload) < len(best.payload) {
			best = cand
		}
	}

	return best
}

// appendFloatBits appends the raw IEEE-754 representation of v as a fixed
// 8-byte field.
func (c ValueCodec) appendFloatBits(dst []byte, v float64) []byte {
	return c.engine.AppendUint64(dst, math.Float64bits(v))
}

// readFloatBits reads a fixed 8-byte IEEE-754 field.
func (c ValueCodec) readFloatBits(payload []byte, offset int) (float64, int, error) {
	if offset+8 > len(payload) {
		return 0, offset, fmt.Errorf("float field at %d: %w", offset, ErrTruncatedPayload)
	}

	return math.Float64frombits(c.engine.Uint64(payload[offset : offset+8])), offset + 8, nil
}

// appendExceptions appends a literal exception list: a count followed by
// (index uvarint, 8-byte value bits) pairs. Strategies whose reconstruction
// arithmetic is not guaranteed bit-exact carry their misfit positions here so
// the round-trip invariant holds regardless of classification quality.
func (c ValueCodec) appendExceptions(dst []byte, indices []int, literals []float64) []byte {
	dst = AppendUvarint(dst, uint64(len(indices)))
	for i, idx := range indices {
		dst = AppendUvarint(dst, uint64(idx)) //nolint:gosec
		dst = c.appendFloatBits(dst, literals[i])
	}

	return dst
}

// applyExceptions decodes an exception list and overwrites the affected
// positions of out.
func (c ValueCodec) applyExceptions(out []float64, payload []byte, offset int) (int, error) {
	numExceptions, offset, err := Uvarint(payload, offset)
	if err != nil {
		return offset, fmt.Errorf("exception count: %w", ErrTruncatedPayload)
	}

	for i := uint64(0); i < numExceptions; i++ {
		idx, next, err := Uvarint(payload, offset)
		if err != nil {
			return offset, fmt.Errorf("exception index: %w", ErrTruncatedPayload)
		}
		if idx >= uint64(len(out)) {
			return offset, fmt.Errorf("exception index %d out of range %d: %w", idx, len(out), ErrTruncatedPayload)
		}

		literal, next, err := c.readFloatBits(payload, next)
		if err != nil {
			return offset, err
		}
		offset = next

		out[idx] = literal
	}

	return offset, nil
}
