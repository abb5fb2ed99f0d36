package statements

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	subjectSeparatorConstant     = " "
	subjectUnnamedCompanyLiteral = "unnamed statement"
)

// BalanceSheet captures the balance sheet totals and optional supporting line items.
type BalanceSheet struct {
	TotalAssets        Amount `json:"total_assets"`
	TotalLiabilities   Amount `json:"total_liabilities"`
	TotalEquity        Amount `json:"total_equity"`
	Cash               Amount `json:"cash"`
	AccountsReceivable Amount `json:"accounts_receivable"`
	Inventory          Amount `json:"inventory"`
	ShortTermDebt      Amount `json:"short_term_debt"`
	CommonStock        Amount `json:"common_stock"`
}

// IncomeStatement captures the income statement chain under a simplified tax model.
type IncomeStatement struct {
	Revenue           Amount `json:"revenue"`
	CostOfGoodsSold   Amount `json:"cost_of_goods_sold"`
	GrossProfit       Amount `json:"gross_profit"`
	OperatingExpenses Amount `json:"operating_expenses"`
	OperatingIncome   Amount `json:"operating_income"`
	TaxExpense        Amount `json:"tax_expense"`
	NetIncome         Amount `json:"net_income"`
}

// CashFlowStatement captures cash flow totals and optional activity line items.
type CashFlowStatement struct {
	OperatingCashFlow  Amount `json:"operating_cf"`
	InvestingCashFlow  Amount `json:"investing_cf"`
	FinancingCashFlow  Amount `json:"financing_cf"`
	NetChangeInCash    Amount `json:"net_change_in_cash"`
	BeginningCash      Amount `json:"beginning_cash"`
	EndingCash         Amount `json:"ending_cash"`
	CapitalExpenditure Amount `json:"capital_expenditure"`
	Depreciation       Amount `json:"depreciation"`
	DebtIssuance       Amount `json:"debt_issuance"`
	DebtRepayment      Amount `json:"debt_repayment"`
	DividendsPaid      Amount `json:"dividends_paid"`
}

// Model groups the three statements with the transaction amounts of the same period.
// A Model is never modified after construction.
type Model struct {
	Company         string            `json:"company,omitempty"`
	Period          string            `json:"period,omitempty"`
	BalanceSheet    BalanceSheet      `json:"balance_sheet"`
	IncomeStatement IncomeStatement   `json:"income_statement"`
	CashFlow        CashFlowStatement `json:"cash_flow"`
	transactions    []decimal.Decimal
}

// NewModel assembles a Model, copying the transaction amounts.
func NewModel(company string, period string, balanceSheet BalanceSheet, incomeStatement IncomeStatement, cashFlow CashFlowStatement, transactions []decimal.Decimal) Model {
	return Model{
		Company:         strings.TrimSpace(company),
		Period:          strings.TrimSpace(period),
		BalanceSheet:    balanceSheet,
		IncomeStatement: incomeStatement,
		CashFlow:        cashFlow,
		transactions:    duplicateAmounts(transactions),
	}
}

// Transactions returns a copy of the transaction amounts in their original order.
func (model Model) Transactions() []decimal.Decimal {
	return duplicateAmounts(model.transactions)
}

// Subject labels the model for report headings.
func (model Model) Subject() string {
	parts := make([]string, 0, 2)
	if len(model.Company) > 0 {
		parts = append(parts, model.Company)
	}
	if len(model.Period) > 0 {
		parts = append(parts, model.Period)
	}
	if len(parts) == 0 {
		return subjectUnnamedCompanyLiteral
	}
	return strings.Join(parts, subjectSeparatorConstant)
}

// Amount resolves the amount stored for the provided field.
func (model Model) Amount(field Field) Amount {
	switch field {
	case FieldTotalAssets:
		return model.BalanceSheet.TotalAssets
	case FieldTotalLiabilities:
		return model.BalanceSheet.TotalLiabilities
	case FieldTotalEquity:
		return model.BalanceSheet.TotalEquity
	case FieldCash:
		return model.BalanceSheet.Cash
	case FieldAccountsReceivable:
		return model.BalanceSheet.AccountsReceivable
	case FieldInventory:
		return model.BalanceSheet.Inventory
	case FieldShortTermDebt:
		return model.BalanceSheet.ShortTermDebt
	case FieldCommonStock:
		return model.BalanceSheet.CommonStock
	case FieldRevenue:
		return model.IncomeStatement.Revenue
	case FieldCostOfGoodsSold:
		return model.IncomeStatement.CostOfGoodsSold
	case FieldGrossProfit:
		return model.IncomeStatement.GrossProfit
	case FieldOperatingExpenses:
		return model.IncomeStatement.OperatingExpenses
	case FieldOperatingIncome:
		return model.IncomeStatement.OperatingIncome
	case FieldTaxExpense:
		return model.IncomeStatement.TaxExpense
	case FieldNetIncome:
		return model.IncomeStatement.NetIncome
	case FieldOperatingCashFlow:
		return model.CashFlow.OperatingCashFlow
	case FieldInvestingCashFlow:
		return model.CashFlow.InvestingCashFlow
	case FieldFinancingCashFlow:
		return model.CashFlow.FinancingCashFlow
	case FieldNetChangeInCash:
		return model.CashFlow.NetChangeInCash
	case FieldBeginningCash:
		return model.CashFlow.BeginningCash
	case FieldEndingCash:
		return model.CashFlow.EndingCash
	case FieldCapitalExpenditure:
		return model.CashFlow.CapitalExpenditure
	case FieldDepreciation:
		return model.CashFlow.Depreciation
	case FieldDebtIssuance:
		return model.CashFlow.DebtIssuance
	case FieldDebtRepayment:
		return model.CashFlow.DebtRepayment
	case FieldDividendsPaid:
		return model.CashFlow.DividendsPaid
	default:
		return MissingAmount()
	}
}

func duplicateAmounts(amounts []decimal.Decimal) []decimal.Decimal {
	if amounts == nil {
		return nil
	}
	duplicated := make([]decimal.Decimal, len(amounts))
	copy(duplicated, amounts)
	return duplicated
}
