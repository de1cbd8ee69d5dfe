package encoding

import "fmt"

// AppendRLE appends values as an ordered stream of (value, count) pairs,
// collapsing maximal runs of identical adjacent values. Values are zigzag
// varints, counts are plain uvarints and always >= 1.
//
// Constant-interval timestamp streams collapse to a single pair regardless of
// length, which is the whole point of running this as a second pass over the
// double-delta output.
func AppendRLE(dst []byte, values []int64) []byte {
	for i := 0; i < len(values); {
		v := values[i]
		j := i + 1
		for j < len(values) && values[j] == v {
			j++
		}

		dst = AppendVarint(dst, v)
		dst = AppendUvarint(dst, uint64(j-i)) //nolint:gosec
		i = j
	}

	return dst
}

// rleDecodeCapHint bounds the initial allocation of RLE decoding. The count
// argument can come straight off the wire, so the output slice starts small
// and grows with the data actually decoded.
const rleDecodeCapHint = 4096

// DecodeRLE expands the (value, count) pair stream at data[offset:] into
// exactly count values, returning them and the offset past the consumed
// pairs. A stream that exhausts early, or whose runs overshoot count, fails
// with ErrTruncatedPayload.
func DecodeRLE(data []byte, offset int, count int) ([]int64, int, error) {
	out := make([]int64, 0, min(count, rleDecodeCapHint))

	for len(out) < count {
		v, next, err := Varint(data, offset)
		if err != nil {
			return nil, offset, fmt.Errorf("rle value: %w", ErrTruncatedPayload)
		}

		runLen, next2, err := Uvarint(data, next)
		if err != nil {
			return nil, offset, fmt.Errorf("rle count: %w", ErrTruncatedPayload)
		}
		offset = next2

		if runLen == 0 || runLen > uint64(count-len(out)) { //nolint:gosec
			return nil, offset, fmt.Errorf("rle run of %d exceeds remaining %d: %w", runLen, count-len(out), ErrTruncatedPayload)
		}

		for i := uint64(0); i < runLen; i++ {
			out = append(out, v)
		}
	}

	return out, offset, nil
}

// AppendURLE is the unsigned variant of AppendRLE, used for streams of raw
// bit patterns where zigzag mapping would inflate large values.
func AppendURLE(dst []byte, values []uint64) []byte {
	for i := 0; i < len(values); {
		v := values[i]
		j := i + 1
		for j < len(values) && values[j] == v {
			j++
		}

		dst = AppendUvarint(dst, v)
		dst = AppendUvarint(dst, uint64(j-i)) //nolint:gosec
		i = j
	}

	return dst
}

// DecodeURLE expands an unsigned (value, count) pair stream into exactly
// count values, mirroring DecodeRLE.
func DecodeURLE(data []byte, offset int, count int) ([]uint64, int, error) {
	out := make([]uint64, 0, min(count, rleDecodeCapHint))

	for len(out) < count {
		v, next, err := Uvarint(data, offset)
		if err != nil {
			return nil, offset, fmt.Errorf("urle value: %w", ErrTruncatedPayload)
		}

		runLen, next2, err := Uvarint(data, next)
		if err != nil {
			return nil, offset, fmt.Errorf("urle count: %w", ErrTruncatedPayload)
		}
		offset = next2

		if runLen == 0 || runLen > uint64(count-len(out)) { //nolint:gosec
			return nil, offset, fmt.Errorf("urle run of %d exceeds remaining %d: %w", runLen, count-len(out), ErrTruncatedPayload)
		}

		for i := uint64(0); i < runLen; i++ {
			out = append(out, v)
		}
	}

	return out, offset, nil
}
