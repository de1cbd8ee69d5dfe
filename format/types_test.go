package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimestampEncoding_String(t *testing.T) {
	require.Equal(t, "Empty", TimestampEmpty.String())
	require.Equal(t, "Single", TimestampSingle.String())
	require.Equal(t, "Pair", TimestampPair.String())
	require.Equal(t, "DoubleDelta", TimestampDoubleDelta.String())
	require.Equal(t, "Unknown", TimestampEncoding(0xEE).String())
}

func TestValueEncoding_String(t *testing.T) {
	names := map[ValueEncoding]string{
		ValueConstant:      "Constant",
		ValueNearConstant:  "NearConstant",
		ValuePowerOfTwo:    "PowerOfTwo",
		ValueMostlyInteger: "MostlyInteger",
		ValueLinear:        "Linear",
		ValuePeriodic:      "Periodic",
		ValueQuantized:     "Quantized",
		ValueSparse:        "Sparse",
		ValueXOR:           "XOR",
		ValueDelta:         "Delta",
	}

	for tag, want := range names {
		require.Equal(t, want, tag.String())
	}
	require.Equal(t, "Unknown", ValueEncoding(0xEE).String())
}

func TestValueEncoding_TagsAreDistinct(t *testing.T) {
	tags := []ValueEncoding{
		ValueConstant, ValueNearConstant, ValuePowerOfTwo, ValueMostlyInteger,
		ValueLinear, ValuePeriodic, ValueQuantized, ValueSparse, ValueXOR, ValueDelta,
	}

	seen := make(map[ValueEncoding]bool, len(tags))
	for _, tag := range tags {
		require.False(t, seen[tag], "duplicate tag value 0x%x", uint8(tag))
		seen[tag] = true
	}
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Snappy", CompressionSnappy.String())
	require.Equal(t, "Unknown", CompressionType(0xEE).String())
}

func TestPattern_String(t *testing.T) {
	require.Equal(t, "Constant", PatternConstant.String())
	require.Equal(t, "QuantizedStepped", PatternQuantizedStepped.String())
	require.Equal(t, "Random", PatternRandom.String())
	require.Equal(t, "Unknown", Pattern(0xEE).String())
}
