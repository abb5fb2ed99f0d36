package auditor_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/temirov/fsaudit/internal/auditor"
	"github.com/temirov/fsaudit/internal/statements"
)

const (
	testAuditorSubtestTemplateConstant = "%d_%s"
	testCompanyConstant                = "Acme Corp"
	testPeriodConstant                 = "FY2024"
	testSubjectConstant                = "Acme Corp FY2024"
)

func consistentModel() statements.Model {
	return buildModel(func(balanceSheet *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {})
}

func buildModel(mutate func(balanceSheet *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, cashFlow *statements.CashFlowStatement)) statements.Model {
	balanceSheet := statements.BalanceSheet{
		TotalAssets:      statements.AmountFromInt(1000),
		TotalLiabilities: statements.AmountFromInt(600),
		TotalEquity:      statements.AmountFromInt(400),
	}
	incomeStatement := statements.IncomeStatement{
		Revenue:           statements.AmountFromInt(1000),
		CostOfGoodsSold:   statements.AmountFromInt(600),
		GrossProfit:       statements.AmountFromInt(400),
		OperatingExpenses: statements.AmountFromInt(250),
		OperatingIncome:   statements.AmountFromInt(150),
		TaxExpense:        statements.AmountFromInt(30),
		NetIncome:         statements.AmountFromInt(120),
	}
	cashFlow := statements.CashFlowStatement{
		OperatingCashFlow: statements.AmountFromInt(180),
		InvestingCashFlow: statements.AmountFromInt(-50),
		FinancingCashFlow: statements.AmountFromInt(-30),
		NetChangeInCash:   statements.AmountFromInt(100),
		BeginningCash:     statements.AmountFromInt(200),
		EndingCash:        statements.AmountFromInt(300),
	}
	mutate(&balanceSheet, &incomeStatement, &cashFlow)
	return statements.NewModel(testCompanyConstant, testPeriodConstant, balanceSheet, incomeStatement, cashFlow, nil)
}

func findingCodes(report auditor.Report) []auditor.Code {
	codes := make([]auditor.Code, 0, len(report.Findings))
	for _, finding := range report.Findings {
		codes = append(codes, finding.Code)
	}
	return codes
}

func TestAuditConsistentStatementsPass(testInstance *testing.T) {
	report := auditor.Default().Audit(consistentModel())

	require.True(testInstance, report.OverallPass)
	require.Empty(testInstance, report.Findings)
	require.NotNil(testInstance, report.Findings)
	require.Equal(testInstance, testSubjectConstant, report.Subject)
	require.Equal(testInstance, len(auditor.DefaultRules()), report.RulesEvaluated)
	require.Equal(testInstance, auditor.Counts{}, report.Counts)
}

func TestAuditBalanceEquation(testInstance *testing.T) {
	testCases := []struct {
		name                string
		totalEquity         decimal.Decimal
		expectPass          bool
		expectedDiscrepancy decimal.Decimal
	}{
		{
			name:                "equity_short_by_one_hundred",
			totalEquity:         decimal.NewFromInt(300),
			expectPass:          false,
			expectedDiscrepancy: decimal.NewFromInt(100),
		},
		{
			name:        "equation_holds",
			totalEquity: decimal.NewFromInt(400),
			expectPass:  true,
		},
		{
			name:        "difference_equal_to_tolerance",
			totalEquity: decimal.RequireFromString("399.99"),
			expectPass:  true,
		},
		{
			name:                "difference_just_over_tolerance",
			totalEquity:         decimal.RequireFromString("399.98"),
			expectPass:          false,
			expectedDiscrepancy: decimal.RequireFromString("0.02"),
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testAuditorSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			model := buildModel(func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.TotalEquity = statements.AmountOf(testCase.totalEquity)
			})

			report := auditor.Default().Audit(model)
			balanceFindings := report.FindingsWithCode(auditor.CodeBalanceEquation)

			if testCase.expectPass {
				require.Empty(testInstance, balanceFindings)
				return
			}
			require.Len(testInstance, balanceFindings, 1)
			require.Equal(testInstance, auditor.SeverityError, balanceFindings[0].Severity)
			require.Equal(testInstance, auditor.CategoryBalanceEquation, balanceFindings[0].Category)
			require.True(testInstance, testCase.expectedDiscrepancy.Equal(balanceFindings[0].Discrepancy), balanceFindings[0].Discrepancy.String())
			require.False(testInstance, report.OverallPass)
		})
	}
}

func TestAuditReportsExactlyOneBalanceFinding(testInstance *testing.T) {
	model := buildModel(func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
		balanceSheet.TotalEquity = statements.AmountFromInt(300)
	})

	report := auditor.Default().Audit(model)

	require.Equal(testInstance, []auditor.Code{auditor.CodeBalanceEquation}, findingCodes(report))
	require.Equal(testInstance, 1, report.ErrorCount())
	require.Contains(testInstance, report.Findings[0].Message, "100.00")
}

func TestDefaultRulesEvaluationOrder(testInstance *testing.T) {
	expectedOrder := []auditor.Code{
		auditor.CodeBalanceEquation,
		auditor.CodeNegativeAssets,
		auditor.CodeNegativeLiabilities,
		auditor.CodeNegativeEquity,
		auditor.CodeNegativeCash,
		auditor.CodeNegativeAccountsReceivable,
		auditor.CodeNegativeInventory,
		auditor.CodeShortTermDebtExceedsLiabilities,
		auditor.CodeNegativeCommonStock,
		auditor.CodeCommonStockExceedsEquity,
		auditor.CodeGrossProfitMismatch,
		auditor.CodeOperatingIncomeMismatch,
		auditor.CodeNetIncomeMismatch,
		auditor.CodeCashFlowReconciliation,
		auditor.CodeEndingCashMismatch,
		auditor.CodePositiveCapitalExpenditure,
		auditor.CodeNegativeDepreciation,
		auditor.CodeNegativeDebtIssuance,
		auditor.CodePositiveDebtRepayment,
		auditor.CodePositiveDividends,
		auditor.CodeNegativeRevenue,
		auditor.CodeGrossMarginOutOfRange,
		auditor.CodeCostOfGoodsSoldExceedsRevenue,
		auditor.CodeNegativeOperatingExpenses,
		auditor.CodeNegativeTaxExpense,
		auditor.CodeOperatingMarginOutOfRange,
		auditor.CodeNetMarginOutOfRange,
		auditor.CodeDebtToAssetsOutOfRange,
		auditor.CodeOperatingCashFlowDivergence,
	}

	rules := auditor.DefaultRules()
	ruleCodes := make([]auditor.Code, 0, len(rules))
	for _, rule := range rules {
		ruleCodes = append(ruleCodes, rule.Code)
	}
	require.Equal(testInstance, expectedOrder, ruleCodes)
}

func TestAuditFindingsFollowRuleOrderAcrossCategories(testInstance *testing.T) {
	model := buildModel(func(balanceSheet *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
		cashFlow.EndingCash = statements.AmountFromInt(310)
		incomeStatement.TaxExpense = statements.AmountFromInt(40)
		balanceSheet.TotalEquity = statements.AmountFromInt(300)
	})

	report := auditor.Default().Audit(model)

	require.Equal(testInstance, []auditor.Code{auditor.CodeBalanceEquation, auditor.CodeNetIncomeMismatch, auditor.CodeEndingCashMismatch}, findingCodes(report))
	require.Equal(testInstance, auditor.CategoryBalanceEquation, report.Findings[0].Category)
	require.Equal(testInstance, auditor.CategoryIncomeChain, report.Findings[1].Category)
	require.Equal(testInstance, auditor.CategoryCashFlow, report.Findings[2].Category)
	require.Equal(testInstance, 3, report.ErrorCount())
	require.False(testInstance, report.OverallPass)
}

func TestAuditRuleViolations(testInstance *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(balanceSheet *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, cashFlow *statements.CashFlowStatement)
		expectedCodes []auditor.Code
		expectPass    bool
	}{
		{
			name: "gross_profit_mismatch",
			mutate: func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				incomeStatement.CostOfGoodsSold = statements.AmountFromInt(650)
			},
			expectedCodes: []auditor.Code{auditor.CodeGrossProfitMismatch},
		},
		{
			name: "operating_income_mismatch",
			mutate: func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				incomeStatement.OperatingExpenses = statements.AmountFromInt(240)
			},
			expectedCodes: []auditor.Code{auditor.CodeOperatingIncomeMismatch},
		},
		{
			name: "net_income_mismatch",
			mutate: func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				incomeStatement.TaxExpense = statements.AmountFromInt(40)
			},
			expectedCodes: []auditor.Code{auditor.CodeNetIncomeMismatch},
		},
		{
			name: "cash_flow_reconciliation",
			mutate: func(_ *statements.BalanceSheet, _ *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
				cashFlow.InvestingCashFlow = statements.AmountFromInt(-60)
			},
			expectedCodes: []auditor.Code{auditor.CodeCashFlowReconciliation},
		},
		{
			name: "ending_cash_mismatch",
			mutate: func(_ *statements.BalanceSheet, _ *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
				cashFlow.EndingCash = statements.AmountFromInt(310)
			},
			expectedCodes: []auditor.Code{auditor.CodeEndingCashMismatch},
		},
		{
			name: "negative_equity_is_warning",
			mutate: func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.TotalLiabilities = statements.AmountFromInt(1100)
				balanceSheet.TotalEquity = statements.AmountFromInt(-100)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeEquity},
			expectPass:    true,
		},
		{
			name: "negative_optional_inventory",
			mutate: func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.Inventory = statements.AmountFromInt(-5)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeInventory},
		},
		{
			name: "short_term_debt_exceeds_liabilities",
			mutate: func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.ShortTermDebt = statements.AmountFromInt(700)
			},
			expectedCodes: []auditor.Code{auditor.CodeShortTermDebtExceedsLiabilities},
		},
		{
			name: "common_stock_exceeds_equity",
			mutate: func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.CommonStock = statements.AmountFromInt(500)
			},
			expectedCodes: []auditor.Code{auditor.CodeCommonStockExceedsEquity},
			expectPass:    true,
		},
		{
			name: "outflow_signs_reported_as_warnings",
			mutate: func(_ *statements.BalanceSheet, _ *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
				cashFlow.CapitalExpenditure = statements.AmountFromInt(20)
				cashFlow.DividendsPaid = statements.AmountFromInt(10)
			},
			expectedCodes: []auditor.Code{auditor.CodePositiveCapitalExpenditure, auditor.CodePositiveDividends},
			expectPass:    true,
		},
		{
			name: "negative_depreciation",
			mutate: func(_ *statements.BalanceSheet, _ *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
				cashFlow.Depreciation = statements.AmountFromInt(-15)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeDepreciation},
		},
		{
			name: "negative_balance_sheet_totals",
			mutate: func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.TotalAssets = statements.AmountFromInt(-100)
				balanceSheet.TotalLiabilities = statements.AmountFromInt(-60)
				balanceSheet.TotalEquity = statements.AmountFromInt(-40)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeAssets, auditor.CodeNegativeLiabilities, auditor.CodeNegativeEquity},
		},
		{
			name: "negative_optional_cash",
			mutate: func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.Cash = statements.AmountFromInt(-10)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeCash},
		},
		{
			name: "negative_optional_accounts_receivable",
			mutate: func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.AccountsReceivable = statements.AmountFromInt(-10)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeAccountsReceivable},
		},
		{
			name: "negative_optional_common_stock",
			mutate: func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.CommonStock = statements.AmountFromInt(-5)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeCommonStock},
		},
		{
			name: "liabilities_above_twice_assets",
			mutate: func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				balanceSheet.TotalLiabilities = statements.AmountFromInt(2500)
				balanceSheet.TotalEquity = statements.AmountFromInt(-1500)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeEquity, auditor.CodeDebtToAssetsOutOfRange},
			expectPass:    true,
		},
		{
			name: "cost_of_goods_sold_exceeds_revenue",
			mutate: func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				incomeStatement.CostOfGoodsSold = statements.AmountFromInt(1100)
				incomeStatement.GrossProfit = statements.AmountFromInt(-100)
				incomeStatement.OperatingIncome = statements.AmountFromInt(-350)
				incomeStatement.NetIncome = statements.AmountFromInt(-380)
			},
			expectedCodes: []auditor.Code{auditor.CodeCostOfGoodsSoldExceedsRevenue},
			expectPass:    true,
		},
		{
			name: "negative_operating_expenses",
			mutate: func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
				incomeStatement.OperatingExpenses = statements.AmountFromInt(-50)
				incomeStatement.OperatingIncome = statements.AmountFromInt(450)
				incomeStatement.NetIncome = statements.AmountFromInt(420)
				cashFlow.OperatingCashFlow = statements.AmountFromInt(500)
				cashFlow.NetChangeInCash = statements.AmountFromInt(420)
				cashFlow.EndingCash = statements.AmountFromInt(620)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeOperatingExpenses},
		},
		{
			name: "negative_tax_expense",
			mutate: func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				incomeStatement.TaxExpense = statements.AmountFromInt(-20)
				incomeStatement.NetIncome = statements.AmountFromInt(170)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeTaxExpense},
			expectPass:    true,
		},
		{
			name: "operating_and_net_margins_below_band",
			mutate: func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				incomeStatement.Revenue = statements.AmountFromInt(100)
				incomeStatement.CostOfGoodsSold = statements.AmountFromInt(60)
				incomeStatement.GrossProfit = statements.AmountFromInt(40)
				incomeStatement.OperatingIncome = statements.AmountFromInt(-210)
				incomeStatement.TaxExpense = statements.AmountFromInt(0)
				incomeStatement.NetIncome = statements.AmountFromInt(-210)
			},
			expectedCodes: []auditor.Code{auditor.CodeOperatingMarginOutOfRange, auditor.CodeNetMarginOutOfRange},
			expectPass:    true,
		},
		{
			name: "net_margin_below_band",
			mutate: func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
				incomeStatement.Revenue = statements.AmountFromInt(100)
				incomeStatement.CostOfGoodsSold = statements.AmountFromInt(60)
				incomeStatement.GrossProfit = statements.AmountFromInt(40)
				incomeStatement.OperatingExpenses = statements.AmountFromInt(30)
				incomeStatement.OperatingIncome = statements.AmountFromInt(10)
				incomeStatement.TaxExpense = statements.AmountFromInt(150)
				incomeStatement.NetIncome = statements.AmountFromInt(-140)
			},
			expectedCodes: []auditor.Code{auditor.CodeNetMarginOutOfRange},
			expectPass:    true,
		},
		{
			name: "negative_debt_issuance",
			mutate: func(_ *statements.BalanceSheet, _ *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
				cashFlow.DebtIssuance = statements.AmountFromInt(-40)
			},
			expectedCodes: []auditor.Code{auditor.CodeNegativeDebtIssuance},
			expectPass:    true,
		},
		{
			name: "positive_debt_repayment",
			mutate: func(_ *statements.BalanceSheet, _ *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
				cashFlow.DebtRepayment = statements.AmountFromInt(25)
			},
			expectedCodes: []auditor.Code{auditor.CodePositiveDebtRepayment},
			expectPass:    true,
		},
		{
			name: "operating_cash_flow_divergence",
			mutate: func(_ *statements.BalanceSheet, _ *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
				cashFlow.OperatingCashFlow = statements.AmountFromInt(30)
				cashFlow.InvestingCashFlow = statements.AmountFromInt(100)
			},
			expectedCodes: []auditor.Code{auditor.CodeOperatingCashFlowDivergence},
			expectPass:    true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testAuditorSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			report := auditor.Default().Audit(buildModel(testCase.mutate))

			require.Equal(testInstance, testCase.expectedCodes, findingCodes(report))
			require.Equal(testInstance, testCase.expectPass, report.OverallPass)
		})
	}
}

func TestAuditNegativeRevenue(testInstance *testing.T) {
	model := buildModel(func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
		incomeStatement.Revenue = statements.AmountFromInt(-100)
		incomeStatement.CostOfGoodsSold = statements.AmountFromInt(-500)
	})

	report := auditor.Default().Audit(model)

	negativeRevenueFindings := report.FindingsWithCode(auditor.CodeNegativeRevenue)
	require.Len(testInstance, negativeRevenueFindings, 1)
	require.Equal(testInstance, auditor.SeverityError, negativeRevenueFindings[0].Severity)
	require.False(testInstance, report.OverallPass)
}

func TestAuditZeroRevenueSkipsMarginChecks(testInstance *testing.T) {
	model := buildModel(func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, cashFlow *statements.CashFlowStatement) {
		incomeStatement.Revenue = statements.AmountFromInt(0)
		incomeStatement.CostOfGoodsSold = statements.AmountFromInt(0)
		incomeStatement.GrossProfit = statements.AmountFromInt(0)
		incomeStatement.OperatingExpenses = statements.AmountFromInt(0)
		incomeStatement.OperatingIncome = statements.AmountFromInt(0)
		incomeStatement.TaxExpense = statements.AmountFromInt(0)
		incomeStatement.NetIncome = statements.AmountFromInt(0)
	})

	report := auditor.Default().Audit(model)

	require.Empty(testInstance, report.FindingsWithCode(auditor.CodeGrossMarginOutOfRange))
	require.Empty(testInstance, report.FindingsWithCode(auditor.CodeOperatingMarginOutOfRange))
	require.Empty(testInstance, report.FindingsWithCode(auditor.CodeNetMarginOutOfRange))
	require.True(testInstance, report.OverallPass)
}

func TestAuditGrossMarginOutOfRange(testInstance *testing.T) {
	model := buildModel(func(_ *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
		incomeStatement.Revenue = statements.AmountFromInt(100)
		incomeStatement.CostOfGoodsSold = statements.AmountFromInt(-300)
	})

	report := auditor.Default().Audit(model)

	marginFindings := report.FindingsWithCode(auditor.CodeGrossMarginOutOfRange)
	require.Len(testInstance, marginFindings, 1)
	require.Equal(testInstance, auditor.SeverityWarning, marginFindings[0].Severity)
	require.True(testInstance, decimal.NewFromInt(300).Equal(marginFindings[0].Discrepancy), marginFindings[0].Discrepancy.String())
}

func TestAuditMissingFieldsBecomeFindings(testInstance *testing.T) {
	model := buildModel(func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
		balanceSheet.TotalEquity = statements.MissingAmount()
	})

	report := auditor.Default().Audit(model)

	missingFindings := report.FindingsWithCode(auditor.CodeMissingField)
	require.Len(testInstance, missingFindings, 1)
	require.Equal(testInstance, auditor.SeverityError, missingFindings[0].Severity)
	require.Equal(testInstance, auditor.CategoryBalanceEquation, missingFindings[0].Category)
	require.Contains(testInstance, missingFindings[0].Message, string(statements.FieldTotalEquity))
	require.Empty(testInstance, report.FindingsWithCode(auditor.CodeBalanceEquation))
	require.False(testInstance, report.OverallPass)
}

func TestAuditEmptyModelCompletes(testInstance *testing.T) {
	report := auditor.Default().Audit(statements.Model{})

	missingFindings := report.FindingsWithCode(auditor.CodeMissingField)
	require.Len(testInstance, missingFindings, len(statements.RequiredFields()))
	require.Equal(testInstance, len(missingFindings), len(report.Findings))
	require.False(testInstance, report.OverallPass)
}

func TestAuditIsIdempotent(testInstance *testing.T) {
	model := buildModel(func(balanceSheet *statements.BalanceSheet, incomeStatement *statements.IncomeStatement, _ *statements.CashFlowStatement) {
		balanceSheet.TotalEquity = statements.AmountFromInt(300)
		incomeStatement.TaxExpense = statements.MissingAmount()
	})
	statementAuditor := auditor.Default()

	firstReport := statementAuditor.Audit(model)
	secondReport := statementAuditor.Audit(model)

	require.Equal(testInstance, firstReport, secondReport)
}

func TestAuditCustomRules(testInstance *testing.T) {
	alwaysFiring := auditor.Rule{
		Code:     auditor.Code("CUSTOM"),
		Category: auditor.CategoryPlausibility,
		Severity: auditor.SeverityWarning,
		Check: func(inputs *auditor.Inputs) (auditor.Violation, bool) {
			return auditor.Violation{Message: "custom", Discrepancy: inputs.Thresholds().Tolerance}, true
		},
	}

	report := auditor.New(auditor.DefaultThresholds(), alwaysFiring, auditor.Rule{Code: auditor.Code("NO_CHECK")}).Audit(consistentModel())

	require.Equal(testInstance, 1, report.RulesEvaluated)
	require.Equal(testInstance, []auditor.Code{auditor.Code("CUSTOM")}, findingCodes(report))
	require.True(testInstance, report.OverallPass)
	require.Equal(testInstance, 1, report.WarningCount())
}

func TestAuditCustomTolerance(testInstance *testing.T) {
	thresholds := auditor.DefaultThresholds()
	thresholds.Tolerance = decimal.NewFromInt(-150)
	model := buildModel(func(balanceSheet *statements.BalanceSheet, _ *statements.IncomeStatement, _ *statements.CashFlowStatement) {
		balanceSheet.TotalEquity = statements.AmountFromInt(300)
	})

	report := auditor.New(thresholds).Audit(model)

	require.True(testInstance, decimal.NewFromInt(150).Equal(auditor.New(thresholds).Thresholds().Tolerance))
	require.Empty(testInstance, report.FindingsWithCode(auditor.CodeBalanceEquation))
}
