package encoding

import (
	"fmt"
	"math"
)

// Quantized payload: uvarint dictionary size + dictionary entries as raw
// 8-byte fields in order of first appearance + one byte of index width +
// fixed-width indices into the dictionary. The index width is the narrowest
// of 1, 2 or 4 bytes that fits the dictionary.

func (c ValueCodec) encodeQuantized(values []float64) []byte {
	dict := make([]float64, 0, 16)
	position := make(map[uint64]int, 16)
	indices := make([]int, len(values))

	for i, v := range values {
		bits := math.Float64bits(v)
		idx, ok := position[bits]
		if !ok {
			idx = len(dict)
			position[bits] = idx
			dict = append(dict, v)
		}
		indices[i] = idx
	}

	payload := AppendUvarint(nil, uint64(len(dict)))
	for _, v := range dict {
		payload = c.appendFloatBits(payload, v)
	}

	width := quantizedIndexWidth(len(dict))
	payload = append(payload, byte(width))

	for _, idx := range indices {
		switch width {
		case 1:
			payload = append(payload, byte(idx))
		case 2:
			payload = c.engine.AppendUint16(payload, uint16(idx)) //nolint:gosec
		default:
			payload = c.engine.AppendUint32(payload, uint32(idx)) //nolint:gosec
		}
	}

	return payload
}

func quantizedIndexWidth(dictSize int) int {
	switch {
	case dictSize <= 1<<8:
		return 1
	case dictSize <= 1<<16:
		return 2
	default:
		return 4
	}
}

func (c ValueCodec) decodeQuantized(payload []byte, count int) ([]float64, error) {
	dictSize64, offset, err := Uvarint(payload, 0)
	if err != nil {
		return nil, fmt.Errorf("quantized dictionary size: %w", ErrTruncatedPayload)
	}

	dictSize := int(dictSize64) //nolint:gosec
	if dictSize <= 0 {
		return nil, fmt.Errorf("quantized dictionary size %d: %w", dictSize, ErrTruncatedPayload)
	}
	// Each entry occupies 8 payload bytes, so an oversized dictionary is
	// rejected before it is allocated.
	if dictSize > (len(payload)-offset)/8 {
		return nil, fmt.Errorf("quantized dictionary of %d entries in %d bytes: %w", dictSize, len(payload)-offset, ErrTruncatedPayload)
	}

	dict := make([]float64, dictSize)
	for i := range dict {
		v, next, err := c.readFloatBits(payload, offset)
		if err != nil {
			return nil, err
		}
		offset = next

		dict[i] = v
	}

	if offset >= len(payload) {
		return nil, fmt.Errorf("quantized index width: %w", ErrTruncatedPayload)
	}
	width := int(payload[offset])
	offset++

	if width != 1 && width != 2 && width != 4 {
		return nil, fmt.Errorf("quantized index width %d: %w", width, ErrTruncatedPayload)
	}

	// Division keeps the bound overflow-proof for hostile counts.
	if count > (len(payload)-offset)/width {
		return nil, fmt.Errorf("quantized index array: %w", ErrTruncatedPayload)
	}

	out := make([]float64, count)
	for i := range out {
		var idx int
		switch width {
		case 1:
			idx = int(payload[offset])
		case 2:
			idx = int(c.engine.Uint16(payload[offset : offset+2]))
		default:
			idx = int(c.engine.Uint32(payload[offset : offset+4]))
		}
		offset += width

		if idx >= dictSize {
			return nil, fmt.Errorf("quantized index %d beyond dictionary %d: %w", idx, dictSize, ErrTruncatedPayload)
		}

		out[i] = dict[idx]
	}

	return out, nil
}
