package auditor

import "github.com/shopspring/decimal"

// Severity classifies how serious a finding is.
type Severity string

// Supported severities. ERROR marks a materially wrong statement; WARNING marks
// a suspicious but not disqualifying one.
const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Category groups rules by the statement relationship they verify.
type Category string

// Rule categories in evaluation order.
const (
	CategoryBalanceEquation Category = "balance_equation"
	CategorySignSanity      Category = "sign_sanity"
	CategoryIncomeChain     Category = "income_statement_chain"
	CategoryCashFlow        Category = "cash_flow_consistency"
	CategoryPlausibility    Category = "plausibility"
)

// Code is the stable identifier of the rule that produced a finding.
type Code string

// Finding codes.
const (
	CodeMissingField                    Code = "MISSING_FIELD"
	CodeBalanceEquation                 Code = "BALANCE_EQUATION"
	CodeNegativeAssets                  Code = "NEGATIVE_ASSETS"
	CodeNegativeLiabilities             Code = "NEGATIVE_LIABILITIES"
	CodeNegativeEquity                  Code = "NEGATIVE_EQUITY"
	CodeNegativeCash                    Code = "NEGATIVE_CASH"
	CodeNegativeAccountsReceivable      Code = "NEGATIVE_ACCOUNTS_RECEIVABLE"
	CodeNegativeInventory               Code = "NEGATIVE_INVENTORY"
	CodeShortTermDebtExceedsLiabilities Code = "SHORT_TERM_DEBT_EXCEEDS_LIABILITIES"
	CodeNegativeCommonStock             Code = "NEGATIVE_COMMON_STOCK"
	CodeCommonStockExceedsEquity        Code = "COMMON_STOCK_EXCEEDS_EQUITY"
	CodeGrossProfitMismatch             Code = "GROSS_PROFIT_MISMATCH"
	CodeOperatingIncomeMismatch         Code = "OPERATING_INCOME_MISMATCH"
	CodeNetIncomeMismatch               Code = "NET_INCOME_MISMATCH"
	CodeCashFlowReconciliation          Code = "CASH_FLOW_RECONCILIATION"
	CodeEndingCashMismatch              Code = "ENDING_CASH_MISMATCH"
	CodePositiveCapitalExpenditure      Code = "POSITIVE_CAPEX"
	CodeNegativeDepreciation            Code = "NEGATIVE_DEPRECIATION"
	CodeNegativeDebtIssuance            Code = "NEGATIVE_DEBT_ISSUANCE"
	CodePositiveDebtRepayment           Code = "POSITIVE_DEBT_REPAYMENT"
	CodePositiveDividends               Code = "POSITIVE_DIVIDENDS"
	CodeNegativeRevenue                 Code = "NEGATIVE_REVENUE"
	CodeGrossMarginOutOfRange           Code = "GROSS_MARGIN_OUT_OF_RANGE"
	CodeCostOfGoodsSoldExceedsRevenue   Code = "COGS_EXCEEDS_REVENUE"
	CodeNegativeOperatingExpenses       Code = "NEGATIVE_OPERATING_EXPENSES"
	CodeNegativeTaxExpense              Code = "NEGATIVE_TAX_EXPENSE"
	CodeOperatingMarginOutOfRange       Code = "OPERATING_MARGIN_OUT_OF_RANGE"
	CodeNetMarginOutOfRange             Code = "NET_MARGIN_OUT_OF_RANGE"
	CodeDebtToAssetsOutOfRange          Code = "DEBT_TO_ASSETS_OUT_OF_RANGE"
	CodeOperatingCashFlowDivergence     Code = "OPERATING_CASH_FLOW_DIVERGENCE"
)

// Finding records a single rule violation.
type Finding struct {
	Severity    Severity        `json:"severity"`
	Code        Code            `json:"code"`
	Category    Category        `json:"category"`
	Message     string          `json:"message"`
	Discrepancy decimal.Decimal `json:"discrepancy"`
}

// Counts summarizes findings by severity.
type Counts struct {
	Errors   int `json:"error_count"`
	Warnings int `json:"warning_count"`
}

// Report is the outcome of one audit pass. Findings keep rule evaluation order.
type Report struct {
	Subject        string    `json:"subject"`
	OverallPass    bool      `json:"overall_pass"`
	RulesEvaluated int       `json:"rules_evaluated"`
	Counts         Counts    `json:"counts"`
	Findings       []Finding `json:"findings"`
}

func newReport(subject string, rulesEvaluated int, findings []Finding) Report {
	counts := countFindings(findings)
	if findings == nil {
		findings = []Finding{}
	}
	return Report{
		Subject:        subject,
		OverallPass:    counts.Errors == 0,
		RulesEvaluated: rulesEvaluated,
		Counts:         counts,
		Findings:       findings,
	}
}

// ErrorCount returns the number of ERROR findings.
func (report Report) ErrorCount() int {
	return countFindings(report.Findings).Errors
}

// WarningCount returns the number of WARNING findings.
func (report Report) WarningCount() int {
	return countFindings(report.Findings).Warnings
}

// FindingsWithCode filters findings by code, preserving order.
func (report Report) FindingsWithCode(code Code) []Finding {
	var matched []Finding
	for _, finding := range report.Findings {
		if finding.Code == code {
			matched = append(matched, finding)
		}
	}
	return matched
}

func countFindings(findings []Finding) Counts {
	var counts Counts
	for _, finding := range findings {
		switch finding.Severity {
		case SeverityError:
			counts.Errors++
		case SeverityWarning:
			counts.Warnings++
		}
	}
	return counts
}
