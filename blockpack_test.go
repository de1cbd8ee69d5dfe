package blockpack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/telemetrika/blockpack/block"
	"github.com/telemetrika/blockpack/format"
)

func testSamples(n int) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{
			Ts:  1700000000000 + int64(i)*15000,
			Val: 62.5 + 8.0*math.Sin(float64(i)*0.1) + float64(i%3)*0.25,
		}
	}

	return samples
}

func TestEncodeDecode(t *testing.T) {
	samples := testSamples(250)

	frame, err := Encode(samples, block.WithSeriesName("cpu.usage"))
	require.NoError(t, err)

	decoded, err := Decode(frame)
	require.NoError(t, err)
	require.Len(t, decoded, len(samples))

	for i, want := range samples {
		require.Equal(t, want.Ts, decoded[i].Ts)
		require.Equal(t, math.Float64bits(want.Val), math.Float64bits(decoded[i].Val))
	}
}

func TestEncodeDecode_Compressed(t *testing.T) {
	samples := testSamples(500)

	plain, err := Encode(samples)
	require.NoError(t, err)

	compressed, err := Encode(samples, block.WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	for _, frame := range [][]byte{plain, compressed} {
		decoded, err := Decode(frame)
		require.NoError(t, err)
		require.Len(t, decoded, len(samples))
	}
}

func TestEncode_OptionError(t *testing.T) {
	_, err := Encode(testSamples(5), block.WithSeriesName(""))
	require.Error(t, err)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("definitely not a frame"))
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	require.NoError(t, Verify(testSamples(100)))
	require.NoError(t, Verify(testSamples(100), block.WithCompression(format.CompressionS2)))
}

func TestSeriesID(t *testing.T) {
	require.Equal(t, SeriesID("cpu.usage"), SeriesID("cpu.usage"))
	require.NotEqual(t, SeriesID("cpu.usage"), SeriesID("cpu.idle"))

	frame, err := Encode(testSamples(3), block.WithSeriesName("cpu.usage"))
	require.NoError(t, err)

	parsed, err := block.UnmarshalBinary(frame)
	require.NoError(t, err)
	require.Equal(t, SeriesID("cpu.usage"), parsed.SeriesID)
}
