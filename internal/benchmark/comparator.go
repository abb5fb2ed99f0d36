package benchmark

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Direction tells where a company ratio sits relative to its benchmark.
type Direction string

// Supported directions.
const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
	DirectionAt    Direction = "at"
)

// Variance is the difference between a company ratio and its benchmark.
type Variance struct {
	Ratio      RatioName       `json:"ratio"`
	Company    decimal.Decimal `json:"company"`
	Benchmark  decimal.Decimal `json:"benchmark"`
	Difference decimal.Decimal `json:"difference"`
	Direction  Direction       `json:"direction"`
}

// Comparison collects variances for every benchmark the company ratios cover.
type Comparison struct {
	Ratios      Ratios      `json:"ratios"`
	Variances   []Variance  `json:"variances"`
	Unavailable []RatioName `json:"unavailable"`
}

// Comparator compares company ratios with a fixed benchmark table.
type Comparator struct {
	table map[RatioName]decimal.Decimal
}

// NewComparator constructs a Comparator. Table keys are matched case-insensitively.
func NewComparator(table map[string]decimal.Decimal) *Comparator {
	normalizedTable := make(map[RatioName]decimal.Decimal, len(table))
	for rawName, value := range table {
		normalizedName := strings.ToLower(strings.TrimSpace(rawName))
		if len(normalizedName) == 0 {
			continue
		}
		normalizedTable[RatioName(normalizedName)] = value
	}
	return &Comparator{table: normalizedTable}
}

// Compare subtracts each benchmark from the matching company ratio. Benchmarks
// without a company ratio are listed as unavailable. Output is sorted by ratio name.
func (comparator *Comparator) Compare(ratios Ratios) Comparison {
	benchmarkNames := make([]RatioName, 0, len(comparator.table))
	for name := range comparator.table {
		benchmarkNames = append(benchmarkNames, name)
	}
	sort.Slice(benchmarkNames, func(leftIndex int, rightIndex int) bool {
		return benchmarkNames[leftIndex] < benchmarkNames[rightIndex]
	})

	comparison := Comparison{Ratios: ratios, Variances: []Variance{}, Unavailable: []RatioName{}}
	for _, name := range benchmarkNames {
		benchmarkValue := comparator.table[name]
		companyValue, present := ratios[name]
		if !present {
			comparison.Unavailable = append(comparison.Unavailable, name)
			continue
		}
		difference := companyValue.Sub(benchmarkValue)
		comparison.Variances = append(comparison.Variances, Variance{
			Ratio:      name,
			Company:    companyValue,
			Benchmark:  benchmarkValue,
			Difference: difference,
			Direction:  directionOf(difference),
		})
	}
	return comparison
}

func directionOf(difference decimal.Decimal) Direction {
	switch difference.Sign() {
	case 1:
		return DirectionAbove
	case -1:
		return DirectionBelow
	default:
		return DirectionAt
	}
}
