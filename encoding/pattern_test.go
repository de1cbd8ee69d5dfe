package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/telemetrika/blockpack/format"
)

func TestDetector_TrivialLength(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	require.Equal(t, format.PatternSparse, d.Detect(nil).Pattern)
	require.Equal(t, format.PatternSparse, d.Detect([]float64{1.5}).Pattern)
	require.Equal(t, format.PatternSparse, d.Detect([]float64{1.5, 2.5}).Pattern)
}

func TestDetector_Constant(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	values := make([]float64, 50)
	for i := range values {
		values[i] = 3.14159
	}

	require.Equal(t, format.PatternConstant, d.Detect(values).Pattern)
}

func TestDetector_ConstantNaN(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	// NaN != NaN, but the detector compares bit patterns.
	nan := math.NaN()
	require.Equal(t, format.PatternConstant, d.Detect([]float64{nan, nan, nan, nan}).Pattern)
}

func TestDetector_NearConstant(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	values := make([]float64, 30)
	for i := range values {
		values[i] = 100.0 + float64(i%3)*2e-7
	}

	require.Equal(t, format.PatternNearConstant, d.Detect(values).Pattern)
}

func TestDetector_Sparse(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	values := make([]float64, 20)
	values[3] = 5.5
	values[11] = -2.25
	values[17] = 0.75

	require.Equal(t, format.PatternSparse, d.Detect(values).Pattern)
}

func TestDetector_SparseThresholdVariants(t *testing.T) {
	// 40% zeros: below the strict 0.5 cutoff, above the enhanced 0.3 cutoff.
	values := make([]float64, 20)
	for i := range values {
		if i%5 < 3 {
			values[i] = 10.5 + float64(i)*3.3
		}
	}

	strict := NewDetector(DefaultDetectorConfig())
	require.NotEqual(t, format.PatternSparse, strict.Detect(values).Pattern)

	enhanced := NewDetector(EnhancedDetectorConfig())
	require.Equal(t, format.PatternSparse, enhanced.Detect(values).Pattern)
}

func TestDetector_NegativeZeroIsNotSparse(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	// Negative zero has a different bit pattern and must not count as zero.
	values := make([]float64, 12)
	for i := range values {
		values[i] = math.Copysign(0, -1)
	}
	values[0] = 1.5

	require.NotEqual(t, format.PatternSparse, d.Detect(values).Pattern)
}

func TestDetector_PowerOfTwo(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	values := []float64{1, 2, 4, 8, 16, 32, 64, 128, 1024, 3.5}

	require.Equal(t, format.PatternPowerOfTwo, d.Detect(values).Pattern)
}

func TestDetector_FractionalPowersDoNotCount(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	// 0.5 and 0.25 are powers of two mathematically, but only non-negative
	// exponents qualify.
	values := []float64{0.5, 0.25, 0.125, 0.5, 0.25, 0.125, 0.5, 0.25, 0.125}

	require.NotEqual(t, format.PatternPowerOfTwo, d.Detect(values).Pattern)
}

func TestDetector_MostlyInteger(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	values := []float64{1, 3, 6, 5, 7, 11, 13, 2.5, 17, 19}

	require.Equal(t, format.PatternMostlyInteger, d.Detect(values).Pattern)
}

func TestDetector_Periodic(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	values := make([]float64, 0, 60)
	for i := 0; i < 20; i++ {
		values = append(values, 1.0, 2.0, 3.0)
	}

	cls := d.Detect(values)
	require.Equal(t, format.PatternPeriodic, cls.Pattern)
	require.Equal(t, 3, cls.Period)
}

func TestDetector_PeriodicNonInteger(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	base := []float64{0.25, 7.5, -1.125, 3.875}
	values := make([]float64, 0, 48)
	for i := 0; i < 12; i++ {
		values = append(values, base...)
	}

	cls := d.Detect(values)
	require.Equal(t, format.PatternPeriodic, cls.Pattern)
	require.Equal(t, 4, cls.Period)
}

func TestDetector_PeriodicTooShort(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	// Period 2 needs at least 6 values.
	cls := d.Detect([]float64{1.5, 2.5, 1.5, 2.5, 1.5})
	require.NotEqual(t, format.PatternPeriodic, cls.Pattern)
}

func TestDetector_JitteryPeriodicEnhancedOnly(t *testing.T) {
	// A noisy period-2 wave: jitter far beyond the exact tolerance but small
	// relative to the range, so only the lag-diff variant accepts it.
	values := make([]float64, 40)
	for i := range values {
		base := 10.5
		if i%2 == 1 {
			base = 90.5
		}
		values[i] = base + float64(i%7)*0.3
	}

	strict := NewDetector(DefaultDetectorConfig())
	require.NotEqual(t, format.PatternPeriodic, strict.Detect(values).Pattern)

	enhanced := NewDetector(EnhancedDetectorConfig())
	cls := enhanced.Detect(values)
	require.Equal(t, format.PatternPeriodic, cls.Pattern)
	require.Equal(t, 2, cls.Period)
}

func TestDetector_Linear(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	values := make([]float64, 40)
	for i := range values {
		values[i] = 0.5 + float64(i)*0.25
	}

	require.Equal(t, format.PatternLinear, d.Detect(values).Pattern)
}

func TestDetector_Quantized(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	// Six distinct non-integer values over 60 samples, arranged aperiodically.
	dict := []float64{10.5, 20.75, 30.25, 47.125, 12.375, 99.625}
	values := make([]float64, 60)
	for i := range values {
		values[i] = dict[(i*i+i/7)%len(dict)]
	}

	cls := d.Detect(values)
	require.Contains(t,
		[]format.Pattern{format.PatternQuantized, format.PatternQuantizedStepped},
		cls.Pattern)
}

func TestDetector_QuantizedStepped(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	// Evenly spaced dictionary: a single distinct gap.
	dict := []float64{0.5, 1.0, 1.5, 2.0}
	values := make([]float64, 40)
	for i := range values {
		values[i] = dict[(i*i+i/5)%len(dict)]
	}

	require.Equal(t, format.PatternQuantizedStepped, d.Detect(values).Pattern)
}

func TestDetector_Smooth(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	values := make([]float64, 100)
	for i := range values {
		values[i] = 1000.0 + 50.0*math.Sin(float64(i)*0.7)
	}

	require.Equal(t, format.PatternSmooth, d.Detect(values).Pattern)
}

func TestDetector_Random(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	// Large swings around a near-zero mean push the mean-relative variance
	// far past the smooth cutoff.
	values := make([]float64, 100)
	sign := 1.0
	for i := range values {
		values[i] = sign * (1e6 + float64(i)*1237.25)
		sign = -sign
	}

	require.Equal(t, format.PatternRandom, d.Detect(values).Pattern)
}
