package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/telemetrika/blockpack/endian"
	"github.com/telemetrika/blockpack/format"
)

func tsRoundTrip(t *testing.T, timestamps []int64) (format.TimestampEncoding, []byte) {
	t.Helper()

	codec := NewTimestampCodec(endian.GetLittleEndianEngine())
	tag, payload := codec.Encode(timestamps)

	decoded, err := codec.Decode(tag, payload, len(timestamps))
	require.NoError(t, err)
	require.Equal(t, timestamps, decoded)

	return tag, payload
}

func TestTimestampCodec_Empty(t *testing.T) {
	codec := NewTimestampCodec(endian.GetLittleEndianEngine())

	tag, payload := codec.Encode([]int64{})
	require.Equal(t, format.TimestampEmpty, tag)
	require.Nil(t, payload)

	decoded, err := codec.Decode(tag, payload, 0)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestTimestampCodec_Single(t *testing.T) {
	tag, payload := tsRoundTrip(t, []int64{1700000000000})
	require.Equal(t, format.TimestampSingle, tag)
	require.Len(t, payload, 8)
}

func TestTimestampCodec_Pair(t *testing.T) {
	tag, _ := tsRoundTrip(t, []int64{1700000000000, 1700000001000})
	require.Equal(t, format.TimestampPair, tag)
}

func TestTimestampCodec_RegularInterval(t *testing.T) {
	timestamps := make([]int64, 1000)
	for i := range timestamps {
		timestamps[i] = 1700000000000 + int64(i)*1000
	}

	tag, payload := tsRoundTrip(t, timestamps)
	require.Equal(t, format.TimestampDoubleDelta, tag)

	// All double-deltas are zero, so the RLE section is a single pair: the
	// payload size must not grow with series length.
	require.LessOrEqual(t, len(payload), 8+3+4)
}

func TestTimestampCodec_IrregularIntervals(t *testing.T) {
	tag, _ := tsRoundTrip(t, []int64{10, 17, 100, 101, 5000, 5003, 9999})
	require.Equal(t, format.TimestampDoubleDelta, tag)
}

func TestTimestampCodec_NegativeTimestamps(t *testing.T) {
	tsRoundTrip(t, []int64{-5000, -3000, -1000, 1000, 3000})
}

func TestTimestampCodec_DuplicateTimestamps(t *testing.T) {
	tsRoundTrip(t, []int64{100, 100, 100, 200, 200})
}

func TestTimestampCodec_CountMismatch(t *testing.T) {
	codec := NewTimestampCodec(endian.GetLittleEndianEngine())

	tag, payload := codec.Encode([]int64{1, 2, 3, 4})

	_, err := codec.Decode(tag, payload, 2)
	require.ErrorIs(t, err, ErrTruncatedPayload)

	_, err = codec.Decode(format.TimestampEmpty, nil, 1)
	require.ErrorIs(t, err, ErrTruncatedPayload)

	_, err = codec.Decode(format.TimestampSingle, payload, 3)
	require.ErrorIs(t, err, ErrTruncatedPayload)
}

func TestTimestampCodec_UnknownTag(t *testing.T) {
	codec := NewTimestampCodec(endian.GetLittleEndianEngine())

	_, err := codec.Decode(format.TimestampEncoding(0xEE), nil, 0)
	require.ErrorIs(t, err, ErrUnknownMethodTag)
}

func TestTimestampCodec_TruncatedPayload(t *testing.T) {
	codec := NewTimestampCodec(endian.GetLittleEndianEngine())

	tag, payload := codec.Encode([]int64{100, 200, 350, 400, 555})
	require.Equal(t, format.TimestampDoubleDelta, tag)

	for _, n := range []int{0, 4, 8, 9} {
		_, err := codec.Decode(tag, payload[:n], 5)
		require.ErrorIs(t, err, ErrTruncatedPayload, "prefix length %d", n)
	}
}

func TestTimestampCodec_TruncatedAtEveryBoundary(t *testing.T) {
	codec := NewTimestampCodec(endian.GetLittleEndianEngine())

	inputs := map[string][]int64{
		"single":    {1700000000000},
		"pair":      {1700000000000, 1700000060000},
		"irregular": {100, 230, 260, 410, 555, 700, 701, 950},
	}

	for name, timestamps := range inputs {
		tag, payload := codec.Encode(timestamps)

		// The encoder emits no slack bytes, so every strict prefix must
		// fail the decode.
		for n := 0; n < len(payload); n++ {
			_, err := codec.Decode(tag, payload[:n], len(timestamps))
			require.ErrorIsf(t, err, ErrTruncatedPayload, "%s: prefix of %d/%d bytes", name, n, len(payload))
		}
	}
}

func TestTimestampCodec_BigEndianEngine(t *testing.T) {
	timestamps := []int64{1700000000000, 1700000060000, 1700000120000}

	codec := NewTimestampCodec(endian.GetBigEndianEngine())
	tag, payload := codec.Encode(timestamps)

	decoded, err := codec.Decode(tag, payload, len(timestamps))
	require.NoError(t, err)
	require.Equal(t, timestamps, decoded)

	// The fixed initial field must differ between byte orders.
	leTag, lePayload := NewTimestampCodec(endian.GetLittleEndianEngine()).Encode(timestamps)
	require.Equal(t, tag, leTag)
	require.NotEqual(t, payload[:8], lePayload[:8])
}
