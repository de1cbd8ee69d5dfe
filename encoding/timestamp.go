package encoding

import (
	"fmt"

	"github.com/telemetrika/blockpack/endian"
	"github.com/telemetrika/blockpack/format"
)

// TimestampCodec encodes an ordered sequence of int64 timestamps into a
// tagged payload and decodes it back exactly.
//
// Degenerate lengths get their own tags (Empty, Single, Pair); three or more
// timestamps use delta-of-delta encoding: the initial timestamp is a fixed
// 8-byte field, the first delta a zigzag varint, and the remaining
// delta-of-deltas are run-length encoded then varint encoded. Regular-interval
// series therefore collapse to a single RLE pair regardless of length.
//
// The codec assumes ascending, not-necessarily-unique timestamps but does not
// enforce sortedness; callers supply pre-sorted input. A TimestampCodec is
// immutable and safe for concurrent use.
type TimestampCodec struct {
	engine endian.EndianEngine
}

// NewTimestampCodec creates a timestamp codec using engine for fixed-width
// fields. Varint and RLE portions of the payload are endian-neutral.
func NewTimestampCodec(engine endian.EndianEngine) TimestampCodec {
	return TimestampCodec{engine: engine}
}

// Encode returns the method tag and payload for timestamps. Encoding never
// fails; every input length has a valid encoding.
func (c TimestampCodec) Encode(timestamps []int64) (format.TimestampEncoding, []byte) {
	switch len(timestamps) {
	case 0:
		return format.TimestampEmpty, nil
	case 1:
		payload := c.engine.AppendUint64(nil, uint64(timestamps[0])) //nolint:gosec
		return format.TimestampSingle, payload
	case 2:
		payload := c.engine.AppendUint64(nil, uint64(timestamps[0])) //nolint:gosec
		payload = AppendVarint(payload, timestamps[1]-timestamps[0])

		return format.TimestampPair, payload
	}

	firstDelta := timestamps[1] - timestamps[0]

	doubleDeltas := make([]int64, 0, len(timestamps)-2)
	prevDelta := firstDelta
	for i := 2; i < len(timestamps); i++ {
		delta := timestamps[i] - timestamps[i-1]
		doubleDeltas = append(doubleDeltas, delta-prevDelta)
		prevDelta = delta
	}

	payload := c.engine.AppendUint64(nil, uint64(timestamps[0])) //nolint:gosec
	payload = AppendVarint(payload, firstDelta)
	payload = AppendRLE(payload, doubleDeltas)

	return format.TimestampDoubleDelta, payload
}

// Decode reconstructs exactly count timestamps from a tagged payload.
// Unknown tags fail with ErrUnknownMethodTag; short payloads fail with
// ErrTruncatedPayload.
func (c TimestampCodec) Decode(tag format.TimestampEncoding, payload []byte, count int) ([]int64, error) {
	switch tag {
	case format.TimestampEmpty:
		if count != 0 {
			return nil, fmt.Errorf("empty encoding with count %d: %w", count, ErrTruncatedPayload)
		}

		return []int64{}, nil

	case format.TimestampSingle:
		if count != 1 {
			return nil, fmt.Errorf("single encoding with count %d: %w", count, ErrTruncatedPayload)
		}
		first, _, err := c.readInitial(payload)
		if err != nil {
			return nil, err
		}

		return []int64{first}, nil

	case format.TimestampPair:
		if count != 2 {
			return nil, fmt.Errorf("pair encoding with count %d: %w", count, ErrTruncatedPayload)
		}
		first, offset, err := c.readInitial(payload)
		if err != nil {
			return nil, err
		}
		delta, _, err := Varint(payload, offset)
		if err != nil {
			return nil, fmt.Errorf("pair delta: %w", ErrTruncatedPayload)
		}

		return []int64{first, first + delta}, nil

	case format.TimestampDoubleDelta:
		if count < 3 {
			return nil, fmt.Errorf("double-delta encoding with count %d: %w", count, ErrTruncatedPayload)
		}

		return c.decodeDoubleDelta(payload, count)

	default:
		return nil, fmt.Errorf("timestamp encoding 0x%x: %w", uint8(tag), ErrUnknownMethodTag)
	}
}

func (c TimestampCodec) decodeDoubleDelta(payload []byte, count int) ([]int64, error) {
	first, offset, err := c.readInitial(payload)
	if err != nil {
		return nil, err
	}

	firstDelta, offset, err := Varint(payload, offset)
	if err != nil {
		return nil, fmt.Errorf("first delta: %w", ErrTruncatedPayload)
	}

	doubleDeltas, _, err := DecodeRLE(payload, offset, count-2)
	if err != nil {
		return nil, err
	}

	out := make([]int64, count)
	out[0] = first
	out[1] = first + firstDelta

	delta := firstDelta
	for i, dd := range doubleDeltas {
		delta += dd
		out[i+2] = out[i+1] + delta
	}

	return out, nil
}

// readInitial reads the fixed 8-byte initial timestamp field.
func (c TimestampCodec) readInitial(payload []byte) (int64, int, error) {
	if len(payload) < 8 {
		return 0, 0, fmt.Errorf("initial timestamp: %w", ErrTruncatedPayload)
	}

	return int64(c.engine.Uint64(payload[:8])), 8, nil //nolint:gosec
}
