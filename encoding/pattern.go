package encoding

import (
	"math"
	"slices"

	"github.com/telemetrika/blockpack/format"
)

// DetectorConfig holds every heuristic cutoff used by the pattern detector.
// Two presets exist because reasonable deployments disagree about the exact
// values: DefaultDetectorConfig carries the strict cutoffs, and
// EnhancedDetectorConfig the looser variant that trades a little selection
// precision for catching more sparse and jittery-periodic series.
//
// Misclassification only ever costs compression ratio, never correctness:
// every strategy the detector can select round-trips exactly.
type DetectorConfig struct {
	// NearConstantRange classifies a series as near-constant when
	// max-min falls below it.
	NearConstantRange float64

	// SparseZeroFraction classifies a series as sparse when the fraction of
	// exact-zero values exceeds it.
	SparseZeroFraction float64

	// PowerOfTwoFraction classifies a series as power-of-two when the
	// fraction of exact non-negative powers of two exceeds it.
	PowerOfTwoFraction float64

	// IntegerFraction classifies a series as mostly-integer when the fraction
	// of integer-valued samples exceeds it.
	IntegerFraction float64

	// PeriodTolerance is the maximum absolute difference allowed between a
	// value and its base-pattern counterpart for exact-window periodicity.
	PeriodTolerance float64

	// LagDiffFraction, when positive, additionally accepts a period when the
	// average absolute difference at that lag is below this fraction of the
	// value range. Zero disables the lag test.
	LagDiffFraction float64

	// LinearVariance is the maximum variance of first differences for a
	// series to classify as linear.
	LinearVariance float64

	// MaxQuantizedValues caps the dictionary size for quantized
	// classification.
	MaxQuantizedValues int

	// QuantizedLenDivisor requires unique values <= len/QuantizedLenDivisor.
	QuantizedLenDivisor int

	// SmoothVarianceRatio classifies a series as smooth when its variance
	// relative to the squared mean falls below it.
	SmoothVarianceRatio float64

	// CandidatePeriods lists the periods probed for periodicity, in order.
	// A period is only probed when period*3 <= len.
	CandidatePeriods []int
}

// DefaultDetectorConfig returns the strict cutoffs.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		NearConstantRange:   1e-6,
		SparseZeroFraction:  0.5,
		PowerOfTwoFraction:  0.7,
		IntegerFraction:     0.8,
		PeriodTolerance:     1e-10,
		LagDiffFraction:     0,
		LinearVariance:      1e-10,
		MaxQuantizedValues:  50,
		QuantizedLenDivisor: 5,
		SmoothVarianceRatio: 100,
		CandidatePeriods:    []int{2, 3, 4, 5, 8, 12, 24, 60, 300},
	}
}

// EnhancedDetectorConfig returns the looser variant: more series classify as
// sparse, and jittery periodic series are accepted via the lag-diff test.
func EnhancedDetectorConfig() DetectorConfig {
	cfg := DefaultDetectorConfig()
	cfg.SparseZeroFraction = 0.3
	cfg.LagDiffFraction = 0.10

	return cfg
}

// Classification is the detector's verdict: a pattern tag plus the detected
// period when the pattern is periodic.
type Classification struct {
	Pattern format.Pattern
	Period  int
}

// Detector classifies value sequences into shape classes used to pick a value
// encoding strategy. It never encodes anything itself.
type Detector struct {
	cfg DetectorConfig
}

// NewDetector creates a detector with the given cutoffs.
func NewDetector(cfg DetectorConfig) Detector {
	return Detector{cfg: cfg}
}

// Detect classifies values. The decision order is fixed and first match wins:
// trivial length, constant, near-constant, sparse, power-of-two, periodic,
// mostly-integer, linear, quantized, smooth, random.
//
// Periodicity is probed before the integer-fraction test so that an
// integer-valued repeating sequence like 1,2,3,1,2,3,... still collapses to
// its base pattern.
func (d Detector) Detect(values []float64) Classification {
	n := len(values)
	if n < 3 {
		// Let the sparse/general machinery handle trivial cases.
		return Classification{Pattern: format.PatternSparse}
	}

	if allBitEqual(values) {
		return Classification{Pattern: format.PatternConstant}
	}

	minVal, maxVal := minMax(values)
	if maxVal-minVal < d.cfg.NearConstantRange {
		return Classification{Pattern: format.PatternNearConstant}
	}

	if zeroFraction(values) > d.cfg.SparseZeroFraction {
		return Classification{Pattern: format.PatternSparse}
	}

	if powerOfTwoFraction(values) > d.cfg.PowerOfTwoFraction {
		return Classification{Pattern: format.PatternPowerOfTwo}
	}

	if period := d.detectPeriod(values, maxVal-minVal); period > 0 {
		return Classification{Pattern: format.PatternPeriodic, Period: period}
	}

	if integerFraction(values) > d.cfg.IntegerFraction {
		return Classification{Pattern: format.PatternMostlyInteger}
	}

	if firstDiffVariance(values) < d.cfg.LinearVariance {
		return Classification{Pattern: format.PatternLinear}
	}

	if pattern, ok := d.detectQuantized(values); ok {
		return Classification{Pattern: pattern}
	}

	if d.isSmooth(values) {
		return Classification{Pattern: format.PatternSmooth}
	}

	return Classification{Pattern: format.PatternRandom}
}

// Config returns the detector's cutoffs.
func (d Detector) Config() DetectorConfig {
	return d.cfg
}

func allBitEqual(values []float64) bool {
	first := math.Float64bits(values[0])
	for _, v := range values[1:] {
		if math.Float64bits(v) != first {
			return false
		}
	}

	return true
}

func minMax(values []float64) (float64, float64) {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	return minVal, maxVal
}

// zeroFraction counts positive zeros only; negative zero has a distinct bit
// pattern and must survive a sparse round trip as a stored value.
func zeroFraction(values []float64) float64 {
	zeros := 0
	for _, v := range values {
		if math.Float64bits(v) == 0 {
			zeros++
		}
	}

	return float64(zeros) / float64(len(values))
}

// powerOfTwoExponent reports the exponent e such that v == 2^e, restricted to
// e >= 0 so the varint stream's -1 sentinel stays unambiguous. Fractional
// powers like 0.5 are handled by the literal exception list instead.
func powerOfTwoExponent(v float64) (int, bool) {
	if v <= 0 || math.IsInf(v, 1) {
		return 0, false
	}

	frac, exp := math.Frexp(v)
	if frac != 0.5 || exp < 1 {
		return 0, false
	}

	return exp - 1, true
}

func powerOfTwoFraction(values []float64) float64 {
	hits := 0
	for _, v := range values {
		if _, ok := powerOfTwoExponent(v); ok {
			hits++
		}
	}

	return float64(hits) / float64(len(values))
}

// integerExact reports whether v is an integer value that survives an
// int64 round trip bit-exactly. Values beyond 2^62 and negative zero do not.
func integerExact(v float64) (int64, bool) {
	if v != math.Trunc(v) || math.Abs(v) > 1<<62 {
		return 0, false
	}

	iv := int64(v)
	if math.Float64bits(float64(iv)) != math.Float64bits(v) {
		return 0, false
	}

	return iv, true
}

func integerFraction(values []float64) float64 {
	hits := 0
	for _, v := range values {
		if _, ok := integerExact(v); ok {
			hits++
		}
	}

	return float64(hits) / float64(len(values))
}

// detectPeriod probes candidate periods in order and returns the first whose
// windows all match the base pattern within PeriodTolerance, or whose average
// lag difference passes the optional lag test.
func (d Detector) detectPeriod(values []float64, valueRange float64) int {
	n := len(values)

	for _, period := range d.cfg.CandidatePeriods {
		if period <= 0 || period*3 > n {
			continue
		}

		if d.exactPeriodic(values, period) {
			return period
		}

		if d.cfg.LagDiffFraction > 0 && valueRange > 0 && d.lagPeriodic(values, period, valueRange) {
			return period
		}
	}

	return 0
}

func (d Detector) exactPeriodic(values []float64, period int) bool {
	for i := period; i < len(values); i++ {
		if math.Abs(values[i]-values[i%period]) > d.cfg.PeriodTolerance {
			return false
		}
	}

	return true
}

func (d Detector) lagPeriodic(values []float64, period int, valueRange float64) bool {
	var sum float64
	for i := period; i < len(values); i++ {
		sum += math.Abs(values[i] - values[i-period])
	}

	avg := sum / float64(len(values)-period)

	return avg < d.cfg.LagDiffFraction*valueRange
}

func firstDiffVariance(values []float64) float64 {
	n := len(values) - 1
	diffs := make([]float64, n)
	for i := 0; i < n; i++ {
		diffs[i] = values[i+1] - values[i]
	}

	return variance(diffs)
}

func variance(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var acc float64
	for _, v := range values {
		dev := v - mean
		acc += dev * dev
	}

	return acc / float64(len(values))
}

// detectQuantized reports whether the series draws from a small dictionary,
// and whether the sorted dictionary steps through at most three distinct gaps.
func (d Detector) detectQuantized(values []float64) (format.Pattern, bool) {
	limit := d.cfg.MaxQuantizedValues
	if byLen := len(values) / d.cfg.QuantizedLenDivisor; byLen < limit {
		limit = byLen
	}
	if limit < 1 {
		return 0, false
	}

	unique := make(map[uint64]float64, limit+1)
	for _, v := range values {
		unique[math.Float64bits(v)] = v
		if len(unique) > limit {
			return 0, false
		}
	}

	sorted := make([]float64, 0, len(unique))
	for _, v := range unique {
		sorted = append(sorted, v)
	}
	slices.Sort(sorted)

	gaps := make(map[float64]struct{}, 4)
	for i := 1; i < len(sorted); i++ {
		gaps[sorted[i]-sorted[i-1]] = struct{}{}
	}

	if len(gaps) > 0 && len(gaps) <= 3 {
		return format.PatternQuantizedStepped, true
	}

	return format.PatternQuantized, true
}

func (d Detector) isSmooth(values []float64) bool {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if mean == 0 {
		return false
	}

	return variance(values)/(mean*mean) < d.cfg.SmoothVarianceRatio
}
