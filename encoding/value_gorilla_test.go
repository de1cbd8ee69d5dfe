package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func xorRoundTrip(t *testing.T, values []float64) []byte {
	t.Helper()

	codec := newTestValueCodec()
	payload := codec.encodeXOR(values)

	decoded, err := codec.decodeXOR(payload, len(values))
	require.NoError(t, err)
	require.Len(t, decoded, len(values))

	for i := range values {
		require.Equal(t, math.Float64bits(values[i]), math.Float64bits(decoded[i]), "value %d", i)
	}

	return payload
}

func TestXOR_Empty(t *testing.T) {
	codec := newTestValueCodec()

	require.Nil(t, codec.encodeXOR(nil))

	decoded, err := codec.decodeXOR(nil, 0)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestXOR_SingleValue(t *testing.T) {
	payload := xorRoundTrip(t, []float64{42.0})
	require.Len(t, payload, 8)
}

func TestXOR_RepeatedValues(t *testing.T) {
	values := make([]float64, 65)
	for i := range values {
		values[i] = 100.0
	}

	payload := xorRoundTrip(t, values)

	// 64 literal bits plus one control bit per repeat.
	require.Len(t, payload, 16)
}

func TestXOR_SimilarValues(t *testing.T) {
	values := []float64{100.0, 100.1, 100.2, 100.3, 100.4, 100.3, 100.2}

	payload := xorRoundTrip(t, values)
	require.Less(t, len(payload), len(values)*8)
}

func TestXOR_FullWidthXOR(t *testing.T) {
	// 0x000...0 to 0xFFF...F flips all 64 bits: the significant-bit count
	// wraps to 0 in its 6-bit field and must decode back as 64.
	values := []float64{0.0, math.Float64frombits(math.MaxUint64), 0.0}

	xorRoundTrip(t, values)
}

func TestXOR_SignFlips(t *testing.T) {
	xorRoundTrip(t, []float64{1.5, -1.5, 1.5, -1.5})
}

func TestXOR_SpecialValues(t *testing.T) {
	xorRoundTrip(t, []float64{
		0.0,
		math.Copysign(0, -1),
		math.NaN(),
		math.Inf(1),
		math.Inf(-1),
		math.MaxFloat64,
		math.SmallestNonzeroFloat64,
	})
}

func TestDecodeXOR_Truncated(t *testing.T) {
	codec := newTestValueCodec()

	payload := codec.encodeXOR([]float64{1.5, 2.5, 3.5, 4.5})

	_, err := codec.decodeXOR(payload[:3], 4)
	require.ErrorIs(t, err, ErrInsufficientBits)

	_, err = codec.decodeXOR(payload[:8], 4)
	require.ErrorIs(t, err, ErrInsufficientBits)
}

func TestDecodeXOR_CorruptFieldWidths(t *testing.T) {
	codec := newTestValueCodec()

	// leading=40 plus significant=40 exceeds 64 bits.
	w := NewBitWriter()
	defer w.Finish()
	w.WriteBits(math.Float64bits(1.0), 64)
	w.WriteBit(1)
	w.WriteBits(40, 6)
	w.WriteBits(40, 6)

	_, err := codec.decodeXOR(w.Bytes(), 2)
	require.ErrorIs(t, err, ErrCorruptXORStream)
}

func deltaRoundTrip(t *testing.T, values []float64) []byte {
	t.Helper()

	codec := newTestValueCodec()
	payload := codec.encodeDelta(values)

	decoded, err := codec.decodeDelta(payload, len(values))
	require.NoError(t, err)
	require.Len(t, decoded, len(values))

	for i := range values {
		require.Equal(t, math.Float64bits(values[i]), math.Float64bits(decoded[i]), "value %d", i)
	}

	return payload
}

func TestDelta_PlainMode(t *testing.T) {
	values := []float64{1.5, -2.25, 1e300, -1e-300, math.NaN(), 0.0}

	payload := deltaRoundTrip(t, values)
	require.Equal(t, byte(deltaModePlain), payload[0])
	require.Len(t, payload, 1+8+(len(values)-1)*8)
}

func TestDelta_ZeroRunMode(t *testing.T) {
	values := make([]float64, 200)
	for i := range values {
		values[i] = 77.125
	}
	values[150] = 78.5

	payload := deltaRoundTrip(t, values)
	require.Equal(t, byte(deltaModeZeroRun), payload[0])
	require.Less(t, len(payload), 64)
}

func TestDelta_ExponentBoundary(t *testing.T) {
	// Crossing an exponent boundary is where arithmetic float deltas lose
	// bits; the bit-pattern delta must not.
	deltaRoundTrip(t, []float64{
		math.Nextafter(2.0, 0), 2.0, math.Nextafter(2.0, 3),
		1e308, 1e-308, -1e308,
	})
}

func TestDecodeDelta_Truncated(t *testing.T) {
	codec := newTestValueCodec()

	payload := codec.encodeDelta([]float64{1.5, 2.5, 3.5})

	_, err := codec.decodeDelta(payload[:0], 3)
	require.ErrorIs(t, err, ErrTruncatedPayload)

	_, err = codec.decodeDelta(payload[:5], 3)
	require.ErrorIs(t, err, ErrTruncatedPayload)

	_, err = codec.decodeDelta(payload[:12], 3)
	require.ErrorIs(t, err, ErrTruncatedPayload)
}

func TestDecodeDelta_BadMode(t *testing.T) {
	codec := newTestValueCodec()

	payload := []byte{0x7}
	payload = append(payload, make([]byte, 16)...)

	_, err := codec.decodeDelta(payload, 2)
	require.ErrorIs(t, err, ErrTruncatedPayload)
}
