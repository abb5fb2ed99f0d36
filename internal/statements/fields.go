package statements

// Field names a statement line item using its document key path.
type Field string

// Balance sheet fields.
const (
	FieldTotalAssets        Field = "balance_sheet.total_assets"
	FieldTotalLiabilities   Field = "balance_sheet.total_liabilities"
	FieldTotalEquity        Field = "balance_sheet.total_equity"
	FieldCash               Field = "balance_sheet.cash"
	FieldAccountsReceivable Field = "balance_sheet.accounts_receivable"
	FieldInventory          Field = "balance_sheet.inventory"
	FieldShortTermDebt      Field = "balance_sheet.short_term_debt"
	FieldCommonStock        Field = "balance_sheet.common_stock"
)

// Income statement fields.
const (
	FieldRevenue           Field = "income_statement.revenue"
	FieldCostOfGoodsSold   Field = "income_statement.cost_of_goods_sold"
	FieldGrossProfit       Field = "income_statement.gross_profit"
	FieldOperatingExpenses Field = "income_statement.operating_expenses"
	FieldOperatingIncome   Field = "income_statement.operating_income"
	FieldTaxExpense        Field = "income_statement.tax_expense"
	FieldNetIncome         Field = "income_statement.net_income"
)

// Cash flow statement fields.
const (
	FieldOperatingCashFlow  Field = "cash_flow.operating_cf"
	FieldInvestingCashFlow  Field = "cash_flow.investing_cf"
	FieldFinancingCashFlow  Field = "cash_flow.financing_cf"
	FieldNetChangeInCash    Field = "cash_flow.net_change_in_cash"
	FieldBeginningCash      Field = "cash_flow.beginning_cash"
	FieldEndingCash         Field = "cash_flow.ending_cash"
	FieldCapitalExpenditure Field = "cash_flow.capital_expenditure"
	FieldDepreciation       Field = "cash_flow.depreciation"
	FieldDebtIssuance       Field = "cash_flow.debt_issuance"
	FieldDebtRepayment      Field = "cash_flow.debt_repayment"
	FieldDividendsPaid      Field = "cash_flow.dividends_paid"
)

var requiredFields = []Field{
	FieldTotalAssets,
	FieldTotalLiabilities,
	FieldTotalEquity,
	FieldRevenue,
	FieldCostOfGoodsSold,
	FieldGrossProfit,
	FieldOperatingExpenses,
	FieldOperatingIncome,
	FieldTaxExpense,
	FieldNetIncome,
	FieldOperatingCashFlow,
	FieldInvestingCashFlow,
	FieldFinancingCashFlow,
	FieldNetChangeInCash,
	FieldBeginningCash,
	FieldEndingCash,
}

// RequiredFields lists the line items every complete statement set must carry.
func RequiredFields() []Field {
	duplicated := make([]Field, len(requiredFields))
	copy(duplicated, requiredFields)
	return duplicated
}

// IsRequired reports whether the field belongs to the required set.
func (field Field) IsRequired() bool {
	for _, required := range requiredFields {
		if required == field {
			return true
		}
	}
	return false
}
