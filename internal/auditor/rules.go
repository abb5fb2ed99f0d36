package auditor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/temirov/fsaudit/internal/statements"
)

const (
	amountPrecisionConstant            = 2
	equalityMismatchTemplateConstant   = "%s %s does not equal %s %s (discrepancy %s)"
	negativeAmountTemplateConstant     = "%s is negative: %s"
	positiveAmountTemplateConstant     = "%s is positive: %s (expected an outflow)"
	belowThresholdTemplateConstant     = "%s %s is below the warning threshold %s (shortfall %s)"
	exceedsAmountTemplateConstant      = "%s %s exceeds %s %s (excess %s)"
	ratioOutOfRangeTemplateConstant    = "%s %s%% is outside the expected range %s%% to %s%% (deviation %s)"
	cashFlowDivergenceTemplateConstant = "operating cash flow %s is outside %s to %s expected from net income %s (deviation %s)"
	missingFieldTemplateConstant       = "required field %s is missing"
	percentMultiplierConstant          = 100

	labelTotalAssets             = "total assets"
	labelTotalLiabilities        = "total liabilities"
	labelTotalEquity             = "total equity"
	labelLiabilitiesPlusEquity   = "liabilities plus equity"
	labelCash                    = "cash"
	labelAccountsReceivable      = "accounts receivable"
	labelInventory               = "inventory"
	labelShortTermDebt           = "short-term debt"
	labelCommonStock             = "common stock"
	labelRevenue                 = "revenue"
	labelCostOfGoodsSold         = "cost of goods sold"
	labelGrossProfit             = "gross profit"
	labelRevenueLessCost         = "revenue less cost of goods sold"
	labelOperatingIncome         = "operating income"
	labelGrossProfitLessExpenses = "gross profit less operating expenses"
	labelNetIncome               = "net income"
	labelOperatingIncomeLessTax  = "operating income less tax expense"
	labelNetChangeInCash         = "net change in cash"
	labelSumOfActivities         = "operating plus investing plus financing cash flow"
	labelEndingCash              = "ending cash"
	labelBeginningCashPlusChange = "beginning cash plus net change in cash"
	labelCapitalExpenditure      = "capital expenditure"
	labelDepreciation            = "depreciation"
	labelDebtIssuance            = "debt issuance"
	labelDebtRepayment           = "debt repayment"
	labelDividendsPaid           = "dividends paid"
	labelOperatingExpenses       = "operating expenses"
	labelTaxExpense              = "tax expense"
	labelGrossMargin             = "gross margin"
	labelOperatingMargin         = "operating margin"
	labelNetMargin               = "net margin"
	labelDebtToAssets            = "debt to assets"
)

var percentMultiplier = decimal.NewFromInt(percentMultiplierConstant)

// Violation explains why a rule fired.
type Violation struct {
	Message     string
	Discrepancy decimal.Decimal
}

// Rule is one named consistency check. Check reports a violation when the
// statement breaks the rule; rules never modify the statement.
type Rule struct {
	Code     Code
	Category Category
	Severity Severity
	Check    func(inputs *Inputs) (Violation, bool)
}

// Inputs gives rules read access to statement amounts and thresholds while
// recording required fields that turn out to be absent.
type Inputs struct {
	model      statements.Model
	thresholds Thresholds
	missing    []statements.Field
}

// Required returns the amount of a required field, recording it as missing when absent.
func (inputs *Inputs) Required(field statements.Field) decimal.Decimal {
	value, present := inputs.model.Amount(field).Value()
	if !present {
		inputs.missing = append(inputs.missing, field)
		return decimal.Zero
	}
	return value
}

// Optional returns the amount of a supplemental field and whether it is present.
func (inputs *Inputs) Optional(field statements.Field) (decimal.Decimal, bool) {
	return inputs.model.Amount(field).Value()
}

// Thresholds exposes the materiality settings of the running audit.
func (inputs *Inputs) Thresholds() Thresholds {
	return inputs.thresholds
}

func (inputs *Inputs) hasMissing() bool {
	return len(inputs.missing) > 0
}

// DefaultRules returns the rule battery in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Code: CodeBalanceEquation, Category: CategoryBalanceEquation, Severity: SeverityError, Check: checkBalanceEquation},

		{Code: CodeNegativeAssets, Category: CategorySignSanity, Severity: SeverityError, Check: requiredNonNegative(statements.FieldTotalAssets, labelTotalAssets)},
		{Code: CodeNegativeLiabilities, Category: CategorySignSanity, Severity: SeverityError, Check: requiredNonNegative(statements.FieldTotalLiabilities, labelTotalLiabilities)},
		{Code: CodeNegativeEquity, Category: CategorySignSanity, Severity: SeverityWarning, Check: checkNegativeEquity},
		{Code: CodeNegativeCash, Category: CategorySignSanity, Severity: SeverityError, Check: optionalNonNegative(statements.FieldCash, labelCash)},
		{Code: CodeNegativeAccountsReceivable, Category: CategorySignSanity, Severity: SeverityError, Check: optionalNonNegative(statements.FieldAccountsReceivable, labelAccountsReceivable)},
		{Code: CodeNegativeInventory, Category: CategorySignSanity, Severity: SeverityError, Check: optionalNonNegative(statements.FieldInventory, labelInventory)},
		{Code: CodeShortTermDebtExceedsLiabilities, Category: CategorySignSanity, Severity: SeverityError, Check: checkShortTermDebt},
		{Code: CodeNegativeCommonStock, Category: CategorySignSanity, Severity: SeverityError, Check: optionalNonNegative(statements.FieldCommonStock, labelCommonStock)},
		{Code: CodeCommonStockExceedsEquity, Category: CategorySignSanity, Severity: SeverityWarning, Check: checkCommonStock},

		{Code: CodeGrossProfitMismatch, Category: CategoryIncomeChain, Severity: SeverityError, Check: checkGrossProfit},
		{Code: CodeOperatingIncomeMismatch, Category: CategoryIncomeChain, Severity: SeverityError, Check: checkOperatingIncome},
		{Code: CodeNetIncomeMismatch, Category: CategoryIncomeChain, Severity: SeverityError, Check: checkNetIncome},

		{Code: CodeCashFlowReconciliation, Category: CategoryCashFlow, Severity: SeverityError, Check: checkCashFlowReconciliation},
		{Code: CodeEndingCashMismatch, Category: CategoryCashFlow, Severity: SeverityError, Check: checkEndingCash},
		{Code: CodePositiveCapitalExpenditure, Category: CategoryCashFlow, Severity: SeverityWarning, Check: optionalNonPositive(statements.FieldCapitalExpenditure, labelCapitalExpenditure)},
		{Code: CodeNegativeDepreciation, Category: CategoryCashFlow, Severity: SeverityError, Check: optionalNonNegative(statements.FieldDepreciation, labelDepreciation)},
		{Code: CodeNegativeDebtIssuance, Category: CategoryCashFlow, Severity: SeverityWarning, Check: optionalNonNegative(statements.FieldDebtIssuance, labelDebtIssuance)},
		{Code: CodePositiveDebtRepayment, Category: CategoryCashFlow, Severity: SeverityWarning, Check: optionalNonPositive(statements.FieldDebtRepayment, labelDebtRepayment)},
		{Code: CodePositiveDividends, Category: CategoryCashFlow, Severity: SeverityWarning, Check: optionalNonPositive(statements.FieldDividendsPaid, labelDividendsPaid)},

		{Code: CodeNegativeRevenue, Category: CategoryPlausibility, Severity: SeverityError, Check: requiredNonNegative(statements.FieldRevenue, labelRevenue)},
		{Code: CodeGrossMarginOutOfRange, Category: CategoryPlausibility, Severity: SeverityWarning, Check: marginWithinBand(statements.FieldGrossProfit, labelGrossMargin)},
		{Code: CodeCostOfGoodsSoldExceedsRevenue, Category: CategoryPlausibility, Severity: SeverityWarning, Check: checkCostOfGoodsSold},
		{Code: CodeNegativeOperatingExpenses, Category: CategoryPlausibility, Severity: SeverityError, Check: requiredNonNegative(statements.FieldOperatingExpenses, labelOperatingExpenses)},
		{Code: CodeNegativeTaxExpense, Category: CategoryPlausibility, Severity: SeverityWarning, Check: requiredNonNegative(statements.FieldTaxExpense, labelTaxExpense)},
		{Code: CodeOperatingMarginOutOfRange, Category: CategoryPlausibility, Severity: SeverityWarning, Check: marginWithinBand(statements.FieldOperatingIncome, labelOperatingMargin)},
		{Code: CodeNetMarginOutOfRange, Category: CategoryPlausibility, Severity: SeverityWarning, Check: marginWithinBand(statements.FieldNetIncome, labelNetMargin)},
		{Code: CodeDebtToAssetsOutOfRange, Category: CategoryPlausibility, Severity: SeverityWarning, Check: checkDebtToAssets},
		{Code: CodeOperatingCashFlowDivergence, Category: CategoryPlausibility, Severity: SeverityWarning, Check: checkOperatingCashFlowDivergence},
	}
}

func checkBalanceEquation(inputs *Inputs) (Violation, bool) {
	assets := inputs.Required(statements.FieldTotalAssets)
	liabilities := inputs.Required(statements.FieldTotalLiabilities)
	equity := inputs.Required(statements.FieldTotalEquity)
	return compareEquality(labelTotalAssets, assets, labelLiabilitiesPlusEquity, liabilities.Add(equity), inputs.thresholds.Tolerance)
}

func checkNegativeEquity(inputs *Inputs) (Violation, bool) {
	equity := inputs.Required(statements.FieldTotalEquity)
	threshold := inputs.thresholds.NegativeEquityWarningThreshold
	if !equity.LessThan(threshold) {
		return Violation{}, false
	}
	shortfall := equity.Sub(threshold)
	return Violation{
		Message:     fmt.Sprintf(belowThresholdTemplateConstant, labelTotalEquity, formatAmount(equity), formatAmount(threshold), formatAmount(shortfall)),
		Discrepancy: shortfall,
	}, true
}

func checkShortTermDebt(inputs *Inputs) (Violation, bool) {
	shortTermDebt, present := inputs.Optional(statements.FieldShortTermDebt)
	if !present {
		return Violation{}, false
	}
	liabilities := inputs.Required(statements.FieldTotalLiabilities)
	return compareExceeds(labelShortTermDebt, shortTermDebt, labelTotalLiabilities, liabilities)
}

func checkCommonStock(inputs *Inputs) (Violation, bool) {
	commonStock, present := inputs.Optional(statements.FieldCommonStock)
	if !present {
		return Violation{}, false
	}
	equity := inputs.Required(statements.FieldTotalEquity)
	if !commonStock.IsPositive() {
		return Violation{}, false
	}
	return compareExceeds(labelCommonStock, commonStock, labelTotalEquity, equity)
}

func checkGrossProfit(inputs *Inputs) (Violation, bool) {
	revenue := inputs.Required(statements.FieldRevenue)
	costOfGoodsSold := inputs.Required(statements.FieldCostOfGoodsSold)
	grossProfit := inputs.Required(statements.FieldGrossProfit)
	return compareEquality(labelGrossProfit, grossProfit, labelRevenueLessCost, revenue.Sub(costOfGoodsSold), inputs.thresholds.Tolerance)
}

func checkOperatingIncome(inputs *Inputs) (Violation, bool) {
	grossProfit := inputs.Required(statements.FieldGrossProfit)
	operatingExpenses := inputs.Required(statements.FieldOperatingExpenses)
	operatingIncome := inputs.Required(statements.FieldOperatingIncome)
	return compareEquality(labelOperatingIncome, operatingIncome, labelGrossProfitLessExpenses, grossProfit.Sub(operatingExpenses), inputs.thresholds.Tolerance)
}

func checkNetIncome(inputs *Inputs) (Violation, bool) {
	operatingIncome := inputs.Required(statements.FieldOperatingIncome)
	taxExpense := inputs.Required(statements.FieldTaxExpense)
	netIncome := inputs.Required(statements.FieldNetIncome)
	return compareEquality(labelNetIncome, netIncome, labelOperatingIncomeLessTax, operatingIncome.Sub(taxExpense), inputs.thresholds.Tolerance)
}

func checkCashFlowReconciliation(inputs *Inputs) (Violation, bool) {
	operating := inputs.Required(statements.FieldOperatingCashFlow)
	investing := inputs.Required(statements.FieldInvestingCashFlow)
	financing := inputs.Required(statements.FieldFinancingCashFlow)
	netChange := inputs.Required(statements.FieldNetChangeInCash)
	return compareEquality(labelNetChangeInCash, netChange, labelSumOfActivities, operating.Add(investing).Add(financing), inputs.thresholds.Tolerance)
}

func checkEndingCash(inputs *Inputs) (Violation, bool) {
	beginningCash := inputs.Required(statements.FieldBeginningCash)
	netChange := inputs.Required(statements.FieldNetChangeInCash)
	endingCash := inputs.Required(statements.FieldEndingCash)
	return compareEquality(labelEndingCash, endingCash, labelBeginningCashPlusChange, beginningCash.Add(netChange), inputs.thresholds.Tolerance)
}

func checkCostOfGoodsSold(inputs *Inputs) (Violation, bool) {
	revenue := inputs.Required(statements.FieldRevenue)
	costOfGoodsSold := inputs.Required(statements.FieldCostOfGoodsSold)
	if costOfGoodsSold.IsZero() {
		return Violation{}, false
	}
	return compareExceeds(labelCostOfGoodsSold, costOfGoodsSold, labelRevenue, revenue)
}

func checkDebtToAssets(inputs *Inputs) (Violation, bool) {
	liabilities := inputs.Required(statements.FieldTotalLiabilities)
	assets := inputs.Required(statements.FieldTotalAssets)
	if inputs.hasMissing() || assets.IsZero() {
		return Violation{}, false
	}
	ratio := liabilities.Div(assets).Mul(percentMultiplier)
	return compareBand(labelDebtToAssets, ratio, inputs.thresholds.DebtToAssetsLowerBound, inputs.thresholds.DebtToAssetsUpperBound)
}

func checkOperatingCashFlowDivergence(inputs *Inputs) (Violation, bool) {
	netIncome := inputs.Required(statements.FieldNetIncome)
	operatingCashFlow := inputs.Required(statements.FieldOperatingCashFlow)
	if !netIncome.IsPositive() {
		return Violation{}, false
	}
	lowerBound := netIncome.Mul(inputs.thresholds.OperatingCashFlowLowerMultiple)
	upperBound := netIncome.Mul(inputs.thresholds.OperatingCashFlowUpperMultiple)
	deviation, outside := deviationOutside(operatingCashFlow, lowerBound, upperBound)
	if !outside {
		return Violation{}, false
	}
	return Violation{
		Message:     fmt.Sprintf(cashFlowDivergenceTemplateConstant, formatAmount(operatingCashFlow), formatAmount(lowerBound), formatAmount(upperBound), formatAmount(netIncome), formatAmount(deviation)),
		Discrepancy: deviation,
	}, true
}

// marginWithinBand checks numerator/revenue against the gross margin band.
// A zero revenue skips the check.
func marginWithinBand(numeratorField statements.Field, label string) func(inputs *Inputs) (Violation, bool) {
	return func(inputs *Inputs) (Violation, bool) {
		revenue := inputs.Required(statements.FieldRevenue)
		numerator := inputs.Required(numeratorField)
		if inputs.hasMissing() || revenue.IsZero() {
			return Violation{}, false
		}
		margin := numerator.Div(revenue).Mul(percentMultiplier)
		return compareBand(label, margin, inputs.thresholds.GrossMarginLowerBound, inputs.thresholds.GrossMarginUpperBound)
	}
}

func requiredNonNegative(field statements.Field, label string) func(inputs *Inputs) (Violation, bool) {
	return func(inputs *Inputs) (Violation, bool) {
		return negativeViolation(label, inputs.Required(field))
	}
}

func optionalNonNegative(field statements.Field, label string) func(inputs *Inputs) (Violation, bool) {
	return func(inputs *Inputs) (Violation, bool) {
		value, present := inputs.Optional(field)
		if !present {
			return Violation{}, false
		}
		return negativeViolation(label, value)
	}
}

func optionalNonPositive(field statements.Field, label string) func(inputs *Inputs) (Violation, bool) {
	return func(inputs *Inputs) (Violation, bool) {
		value, present := inputs.Optional(field)
		if !present || !value.IsPositive() {
			return Violation{}, false
		}
		return Violation{
			Message:     fmt.Sprintf(positiveAmountTemplateConstant, label, formatAmount(value)),
			Discrepancy: value,
		}, true
	}
}

func negativeViolation(label string, value decimal.Decimal) (Violation, bool) {
	if !value.IsNegative() {
		return Violation{}, false
	}
	return Violation{
		Message:     fmt.Sprintf(negativeAmountTemplateConstant, label, formatAmount(value)),
		Discrepancy: value,
	}, true
}

func compareEquality(actualLabel string, actual decimal.Decimal, expectedLabel string, expected decimal.Decimal, tolerance decimal.Decimal) (Violation, bool) {
	discrepancy := actual.Sub(expected)
	if !discrepancy.Abs().GreaterThan(tolerance) {
		return Violation{}, false
	}
	return Violation{
		Message:     fmt.Sprintf(equalityMismatchTemplateConstant, actualLabel, formatAmount(actual), expectedLabel, formatAmount(expected), formatAmount(discrepancy)),
		Discrepancy: discrepancy,
	}, true
}

func compareExceeds(valueLabel string, value decimal.Decimal, limitLabel string, limit decimal.Decimal) (Violation, bool) {
	if !value.GreaterThan(limit) {
		return Violation{}, false
	}
	excess := value.Sub(limit)
	return Violation{
		Message:     fmt.Sprintf(exceedsAmountTemplateConstant, valueLabel, formatAmount(value), limitLabel, formatAmount(limit), formatAmount(excess)),
		Discrepancy: excess,
	}, true
}

func compareBand(label string, value decimal.Decimal, lowerBound decimal.Decimal, upperBound decimal.Decimal) (Violation, bool) {
	deviation, outside := deviationOutside(value, lowerBound, upperBound)
	if !outside {
		return Violation{}, false
	}
	return Violation{
		Message:     fmt.Sprintf(ratioOutOfRangeTemplateConstant, label, formatAmount(value), formatAmount(lowerBound), formatAmount(upperBound), formatAmount(deviation)),
		Discrepancy: deviation,
	}, true
}

// deviationOutside returns the signed distance from the nearest bound when value
// lies outside [lowerBound, upperBound].
func deviationOutside(value decimal.Decimal, lowerBound decimal.Decimal, upperBound decimal.Decimal) (decimal.Decimal, bool) {
	switch {
	case value.LessThan(lowerBound):
		return value.Sub(lowerBound), true
	case value.GreaterThan(upperBound):
		return value.Sub(upperBound), true
	default:
		return decimal.Zero, false
	}
}

func missingFieldFinding(field statements.Field, category Category) Finding {
	return Finding{
		Severity:    SeverityError,
		Code:        CodeMissingField,
		Category:    category,
		Message:     fmt.Sprintf(missingFieldTemplateConstant, field),
		Discrepancy: decimal.Zero,
	}
}

func formatAmount(value decimal.Decimal) string {
	return value.StringFixed(amountPrecisionConstant)
}
