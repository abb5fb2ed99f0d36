package benchmark

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/temirov/fsaudit/internal/statements"
)

// RatioName identifies a derived ratio. Names match benchmark table keys.
type RatioName string

// Supported ratios. Margins, returns and debt to assets are percentages.
const (
	RatioGrossMargin     RatioName = "gross_margin"
	RatioOperatingMargin RatioName = "operating_margin"
	RatioNetMargin       RatioName = "net_margin"
	RatioReturnOnAssets  RatioName = "return_on_assets"
	RatioReturnOnEquity  RatioName = "return_on_equity"
	RatioDebtToEquity    RatioName = "debt_to_equity"
	RatioDebtToAssets    RatioName = "debt_to_assets"
	RatioAssetTurnover   RatioName = "asset_turnover"
)

const ratioPrecisionConstant = 4

var percentMultiplier = decimal.NewFromInt(100)

// Ratios maps ratio names to values. Ratios that cannot be computed are absent.
type Ratios map[RatioName]decimal.Decimal

// Names returns the ratio names in ascending order.
func (ratios Ratios) Names() []RatioName {
	names := make([]RatioName, 0, len(ratios))
	for name := range ratios {
		names = append(names, name)
	}
	sort.Slice(names, func(leftIndex int, rightIndex int) bool {
		return names[leftIndex] < names[rightIndex]
	})
	return names
}

type ratioDefinition struct {
	name        RatioName
	numerator   statements.Field
	denominator statements.Field
	percentage  bool
}

var ratioDefinitions = []ratioDefinition{
	{name: RatioGrossMargin, numerator: statements.FieldGrossProfit, denominator: statements.FieldRevenue, percentage: true},
	{name: RatioOperatingMargin, numerator: statements.FieldOperatingIncome, denominator: statements.FieldRevenue, percentage: true},
	{name: RatioNetMargin, numerator: statements.FieldNetIncome, denominator: statements.FieldRevenue, percentage: true},
	{name: RatioReturnOnAssets, numerator: statements.FieldNetIncome, denominator: statements.FieldTotalAssets, percentage: true},
	{name: RatioReturnOnEquity, numerator: statements.FieldNetIncome, denominator: statements.FieldTotalEquity, percentage: true},
	{name: RatioDebtToEquity, numerator: statements.FieldTotalLiabilities, denominator: statements.FieldTotalEquity},
	{name: RatioDebtToAssets, numerator: statements.FieldTotalLiabilities, denominator: statements.FieldTotalAssets, percentage: true},
	{name: RatioAssetTurnover, numerator: statements.FieldRevenue, denominator: statements.FieldTotalAssets},
}

// ComputeRatios derives every ratio whose inputs are present and whose
// denominator is non-zero.
func ComputeRatios(model statements.Model) Ratios {
	ratios := make(Ratios, len(ratioDefinitions))
	for _, definition := range ratioDefinitions {
		numerator, numeratorPresent := model.Amount(definition.numerator).Value()
		denominator, denominatorPresent := model.Amount(definition.denominator).Value()
		if !numeratorPresent || !denominatorPresent || denominator.IsZero() {
			continue
		}
		value := numerator.Div(denominator)
		if definition.percentage {
			value = value.Mul(percentMultiplier)
		}
		ratios[definition.name] = value.Round(ratioPrecisionConstant)
	}
	return ratios
}
