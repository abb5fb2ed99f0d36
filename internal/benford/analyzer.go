package benford

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DigitCount is the number of possible leading digits.
const DigitCount = 9

const (
	lowSampleAdvisoryTemplateConstant = "sample size %d is below the recommended minimum of %d; conformity results have low statistical power"
	normalizationShiftConstant        = 1
)

var (
	normalizationLowerBound = decimal.NewFromInt(1)
	normalizationUpperBound = decimal.NewFromInt(10)
)

// Proportions holds one value per leading digit; index 0 is digit 1.
type Proportions [DigitCount]float64

// DigitFrequency compares observed and expected occurrence of one leading digit.
type DigitFrequency struct {
	Digit              int     `json:"digit"`
	ObservedCount      int     `json:"observed_count"`
	ExpectedCount      float64 `json:"expected_count"`
	ObservedProportion float64 `json:"observed_proportion"`
	ExpectedProportion float64 `json:"expected_proportion"`
	Deviation          float64 `json:"deviation"`
}

// FrequencyTable lists digits 1 through 9 in ascending order.
type FrequencyTable []DigitFrequency

// Observed returns the observed proportions of the table.
func (table FrequencyTable) Observed() Proportions {
	var observed Proportions
	for _, frequency := range table {
		if frequency.Digit >= 1 && frequency.Digit <= DigitCount {
			observed[frequency.Digit-1] = frequency.ObservedProportion
		}
	}
	return observed
}

// Result is the outcome of one analysis.
type Result struct {
	Table                 FrequencyTable `json:"table"`
	MeanAbsoluteDeviation float64        `json:"mad"`
	Conformity            Conformity     `json:"conformity"`
	SampleSize            int            `json:"sample_size"`
	DiscardedCount        int            `json:"discarded_count"`
	LowSampleAdvisory     bool           `json:"low_sample_advisory"`
	Advisory              string         `json:"advisory,omitempty"`
}

// Analyzer performs first-digit tests. It keeps no state between calls and is
// safe for concurrent use.
type Analyzer struct {
	thresholds Thresholds
}

// NewAnalyzer constructs an Analyzer with the provided thresholds.
func NewAnalyzer(thresholds Thresholds) *Analyzer {
	return &Analyzer{thresholds: thresholds.sanitize()}
}

// DefaultAnalyzer constructs an Analyzer with the published thresholds.
func DefaultAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultThresholds())
}

// Thresholds returns the sanitized thresholds the analyzer applies.
func (analyzer *Analyzer) Thresholds() Thresholds {
	return analyzer.thresholds
}

// Analyze tallies leading digits of the non-zero amounts and scores their
// conformity. It returns an *InsufficientDataError when no amount is usable.
func (analyzer *Analyzer) Analyze(transactions []decimal.Decimal) (Result, error) {
	var digitCounts [DigitCount]int
	sampleSize := 0
	for _, transaction := range transactions {
		digit, defined := LeadingDigit(transaction)
		if !defined {
			continue
		}
		digitCounts[digit-1]++
		sampleSize++
	}
	return analyzer.score(digitCounts, sampleSize, len(transactions))
}

// AnalyzeFloats is Analyze for float inputs. NaN and infinite values are discarded.
func (analyzer *Analyzer) AnalyzeFloats(transactions []float64) (Result, error) {
	var digitCounts [DigitCount]int
	sampleSize := 0
	for _, transaction := range transactions {
		if math.IsNaN(transaction) || math.IsInf(transaction, 0) {
			continue
		}
		digit, defined := LeadingDigit(decimal.NewFromFloat(transaction))
		if !defined {
			continue
		}
		digitCounts[digit-1]++
		sampleSize++
	}
	return analyzer.score(digitCounts, sampleSize, len(transactions))
}

func (analyzer *Analyzer) score(digitCounts [DigitCount]int, sampleSize int, providedCount int) (Result, error) {
	discardedCount := providedCount - sampleSize
	if sampleSize == 0 {
		return Result{}, &InsufficientDataError{Provided: providedCount, Discarded: discardedCount}
	}

	expected := ExpectedProportions()
	var observed Proportions
	table := make(FrequencyTable, 0, DigitCount)
	for digitIndex := 0; digitIndex < DigitCount; digitIndex++ {
		observed[digitIndex] = float64(digitCounts[digitIndex]) / float64(sampleSize)
		table = append(table, DigitFrequency{
			Digit:              digitIndex + 1,
			ObservedCount:      digitCounts[digitIndex],
			ExpectedCount:      expected[digitIndex] * float64(sampleSize),
			ObservedProportion: observed[digitIndex],
			ExpectedProportion: expected[digitIndex],
			Deviation:          observed[digitIndex] - expected[digitIndex],
		})
	}

	meanAbsoluteDeviation := MeanAbsoluteDeviation(observed, expected)
	result := Result{
		Table:                 table,
		MeanAbsoluteDeviation: meanAbsoluteDeviation,
		Conformity:            ClassifyConformity(meanAbsoluteDeviation, analyzer.thresholds),
		SampleSize:            sampleSize,
		DiscardedCount:        discardedCount,
	}
	if sampleSize < analyzer.thresholds.MinimumRecommendedSampleSize {
		result.LowSampleAdvisory = true
		result.Advisory = fmt.Sprintf(lowSampleAdvisoryTemplateConstant, sampleSize, analyzer.thresholds.MinimumRecommendedSampleSize)
	}
	return result, nil
}

// ExpectedProportions returns log10(1 + 1/d) for digits 1 through 9.
func ExpectedProportions() Proportions {
	var expected Proportions
	for digitIndex := 0; digitIndex < DigitCount; digitIndex++ {
		digit := float64(digitIndex + 1)
		expected[digitIndex] = math.Log10(1 + 1/digit)
	}
	return expected
}

// MeanAbsoluteDeviation averages |observed - expected| over the nine digits.
func MeanAbsoluteDeviation(observed Proportions, expected Proportions) float64 {
	deviationSum := 0.0
	for digitIndex := 0; digitIndex < DigitCount; digitIndex++ {
		deviationSum += math.Abs(observed[digitIndex] - expected[digitIndex])
	}
	return deviationSum / DigitCount
}

// LeadingDigit returns the first significant digit of |value|. Zero has no
// leading digit.
func LeadingDigit(value decimal.Decimal) (int, bool) {
	if value.IsZero() {
		return 0, false
	}
	normalized := value.Abs()
	for normalized.GreaterThanOrEqual(normalizationUpperBound) {
		normalized = normalized.Shift(-normalizationShiftConstant)
	}
	for normalized.LessThan(normalizationLowerBound) {
		normalized = normalized.Shift(normalizationShiftConstant)
	}
	return int(normalized.IntPart()), true
}
