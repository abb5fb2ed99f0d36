package auditor

import "github.com/shopspring/decimal"

// Thresholds holds the materiality settings applied by the rule battery.
// All equation checks compare the absolute difference against Tolerance;
// amounts are assumed to be expressed in one currency unit.
type Thresholds struct {
	Tolerance                      decimal.Decimal
	NegativeEquityWarningThreshold decimal.Decimal
	GrossMarginLowerBound          decimal.Decimal
	GrossMarginUpperBound          decimal.Decimal
	DebtToAssetsLowerBound         decimal.Decimal
	DebtToAssetsUpperBound         decimal.Decimal
	OperatingCashFlowLowerMultiple decimal.Decimal
	OperatingCashFlowUpperMultiple decimal.Decimal
}

// Default materiality values.
var (
	DefaultTolerance                      = decimal.RequireFromString("0.01")
	DefaultNegativeEquityWarningThreshold = decimal.Zero
	DefaultGrossMarginLowerBound          = decimal.NewFromInt(-100)
	DefaultGrossMarginUpperBound          = decimal.NewFromInt(100)
	DefaultDebtToAssetsLowerBound         = decimal.Zero
	DefaultDebtToAssetsUpperBound         = decimal.NewFromInt(200)
	DefaultOperatingCashFlowLowerMultiple = decimal.RequireFromString("0.5")
	DefaultOperatingCashFlowUpperMultiple = decimal.NewFromInt(2)
)

// DefaultThresholds returns the baseline materiality settings.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Tolerance:                      DefaultTolerance,
		NegativeEquityWarningThreshold: DefaultNegativeEquityWarningThreshold,
		GrossMarginLowerBound:          DefaultGrossMarginLowerBound,
		GrossMarginUpperBound:          DefaultGrossMarginUpperBound,
		DebtToAssetsLowerBound:         DefaultDebtToAssetsLowerBound,
		DebtToAssetsUpperBound:         DefaultDebtToAssetsUpperBound,
		OperatingCashFlowLowerMultiple: DefaultOperatingCashFlowLowerMultiple,
		OperatingCashFlowUpperMultiple: DefaultOperatingCashFlowUpperMultiple,
	}
}

func (thresholds Thresholds) sanitize() Thresholds {
	sanitized := thresholds
	sanitized.Tolerance = thresholds.Tolerance.Abs()
	if sanitized.GrossMarginLowerBound.GreaterThan(sanitized.GrossMarginUpperBound) {
		sanitized.GrossMarginLowerBound, sanitized.GrossMarginUpperBound = sanitized.GrossMarginUpperBound, sanitized.GrossMarginLowerBound
	}
	if sanitized.DebtToAssetsLowerBound.GreaterThan(sanitized.DebtToAssetsUpperBound) {
		sanitized.DebtToAssetsLowerBound, sanitized.DebtToAssetsUpperBound = sanitized.DebtToAssetsUpperBound, sanitized.DebtToAssetsLowerBound
	}
	if sanitized.OperatingCashFlowLowerMultiple.GreaterThan(sanitized.OperatingCashFlowUpperMultiple) {
		sanitized.OperatingCashFlowLowerMultiple, sanitized.OperatingCashFlowUpperMultiple = sanitized.OperatingCashFlowUpperMultiple, sanitized.OperatingCashFlowLowerMultiple
	}
	return sanitized
}
