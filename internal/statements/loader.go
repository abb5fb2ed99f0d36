package statements

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	documentPathRequiredMessageConstant      = "statement document path must be provided"
	documentReadErrorTemplateConstant        = "failed to read statement document %s: %w"
	documentParseErrorTemplateConstant       = "failed to parse statement document: %w"
	documentFieldErrorTemplateConstant       = "field %s: %w"
	documentTransactionErrorTemplateConstant = "transaction %d: %w"
	documentEmptyMessageConstant             = "statement document is empty"
)

// ErrEmptyDocument indicates a document without any content.
var ErrEmptyDocument = errors.New(documentEmptyMessageConstant)

// FileReader reads statement documents from storage.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileReader reads files from the local filesystem.
type OSFileReader struct{}

// ReadFile delegates to os.ReadFile.
func (OSFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader parses statement documents into models.
type Loader struct {
	fileReader FileReader
}

// NewLoader constructs a Loader; a nil reader falls back to the local filesystem.
func NewLoader(fileReader FileReader) *Loader {
	if fileReader == nil {
		fileReader = OSFileReader{}
	}
	return &Loader{fileReader: fileReader}
}

// LoadFile reads and parses the document stored at filePath.
func (loader *Loader) LoadFile(filePath string) (Model, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Model{}, errors.New(documentPathRequiredMessageConstant)
	}

	contentBytes, readError := loader.fileReader.ReadFile(trimmedPath)
	if readError != nil {
		return Model{}, fmt.Errorf(documentReadErrorTemplateConstant, trimmedPath, readError)
	}

	return Parse(contentBytes)
}

// Parse decodes a YAML or JSON statement document.
func Parse(contentBytes []byte) (Model, error) {
	if len(strings.TrimSpace(string(contentBytes))) == 0 {
		return Model{}, fmt.Errorf(documentParseErrorTemplateConstant, ErrEmptyDocument)
	}

	var document statementDocument
	if unmarshalError := yaml.Unmarshal(contentBytes, &document); unmarshalError != nil {
		return Model{}, fmt.Errorf(documentParseErrorTemplateConstant, unmarshalError)
	}

	return document.model()
}

type statementDocument struct {
	Company         string                  `yaml:"company"`
	Period          string                  `yaml:"period"`
	BalanceSheet    balanceSheetDocument    `yaml:"balance_sheet"`
	IncomeStatement incomeStatementDocument `yaml:"income_statement"`
	CashFlow        cashFlowDocument        `yaml:"cash_flow"`
	Transactions    []string                `yaml:"transactions"`
}

type balanceSheetDocument struct {
	TotalAssets        *string `yaml:"total_assets"`
	TotalLiabilities   *string `yaml:"total_liabilities"`
	TotalEquity        *string `yaml:"total_equity"`
	Cash               *string `yaml:"cash"`
	AccountsReceivable *string `yaml:"accounts_receivable"`
	Inventory          *string `yaml:"inventory"`
	ShortTermDebt      *string `yaml:"short_term_debt"`
	CommonStock        *string `yaml:"common_stock"`
}

type incomeStatementDocument struct {
	Revenue           *string `yaml:"revenue"`
	CostOfGoodsSold   *string `yaml:"cost_of_goods_sold"`
	GrossProfit       *string `yaml:"gross_profit"`
	OperatingExpenses *string `yaml:"operating_expenses"`
	OperatingIncome   *string `yaml:"operating_income"`
	TaxExpense        *string `yaml:"tax_expense"`
	NetIncome         *string `yaml:"net_income"`
}

type cashFlowDocument struct {
	OperatingCashFlow  *string `yaml:"operating_cf"`
	InvestingCashFlow  *string `yaml:"investing_cf"`
	FinancingCashFlow  *string `yaml:"financing_cf"`
	NetChangeInCash    *string `yaml:"net_change_in_cash"`
	BeginningCash      *string `yaml:"beginning_cash"`
	EndingCash         *string `yaml:"ending_cash"`
	CapitalExpenditure *string `yaml:"capital_expenditure"`
	Depreciation       *string `yaml:"depreciation"`
	DebtIssuance       *string `yaml:"debt_issuance"`
	DebtRepayment      *string `yaml:"debt_repayment"`
	DividendsPaid      *string `yaml:"dividends_paid"`
}

type fieldBinding struct {
	field  Field
	raw    *string
	target *Amount
}

func (document statementDocument) model() (Model, error) {
	var balanceSheet BalanceSheet
	var incomeStatement IncomeStatement
	var cashFlow CashFlowStatement

	bindings := []fieldBinding{
		{field: FieldTotalAssets, raw: document.BalanceSheet.TotalAssets, target: &balanceSheet.TotalAssets},
		{field: FieldTotalLiabilities, raw: document.BalanceSheet.TotalLiabilities, target: &balanceSheet.TotalLiabilities},
		{field: FieldTotalEquity, raw: document.BalanceSheet.TotalEquity, target: &balanceSheet.TotalEquity},
		{field: FieldCash, raw: document.BalanceSheet.Cash, target: &balanceSheet.Cash},
		{field: FieldAccountsReceivable, raw: document.BalanceSheet.AccountsReceivable, target: &balanceSheet.AccountsReceivable},
		{field: FieldInventory, raw: document.BalanceSheet.Inventory, target: &balanceSheet.Inventory},
		{field: FieldShortTermDebt, raw: document.BalanceSheet.ShortTermDebt, target: &balanceSheet.ShortTermDebt},
		{field: FieldCommonStock, raw: document.BalanceSheet.CommonStock, target: &balanceSheet.CommonStock},
		{field: FieldRevenue, raw: document.IncomeStatement.Revenue, target: &incomeStatement.Revenue},
		{field: FieldCostOfGoodsSold, raw: document.IncomeStatement.CostOfGoodsSold, target: &incomeStatement.CostOfGoodsSold},
		{field: FieldGrossProfit, raw: document.IncomeStatement.GrossProfit, target: &incomeStatement.GrossProfit},
		{field: FieldOperatingExpenses, raw: document.IncomeStatement.OperatingExpenses, target: &incomeStatement.OperatingExpenses},
		{field: FieldOperatingIncome, raw: document.IncomeStatement.OperatingIncome, target: &incomeStatement.OperatingIncome},
		{field: FieldTaxExpense, raw: document.IncomeStatement.TaxExpense, target: &incomeStatement.TaxExpense},
		{field: FieldNetIncome, raw: document.IncomeStatement.NetIncome, target: &incomeStatement.NetIncome},
		{field: FieldOperatingCashFlow, raw: document.CashFlow.OperatingCashFlow, target: &cashFlow.OperatingCashFlow},
		{field: FieldInvestingCashFlow, raw: document.CashFlow.InvestingCashFlow, target: &cashFlow.InvestingCashFlow},
		{field: FieldFinancingCashFlow, raw: document.CashFlow.FinancingCashFlow, target: &cashFlow.FinancingCashFlow},
		{field: FieldNetChangeInCash, raw: document.CashFlow.NetChangeInCash, target: &cashFlow.NetChangeInCash},
		{field: FieldBeginningCash, raw: document.CashFlow.BeginningCash, target: &cashFlow.BeginningCash},
		{field: FieldEndingCash, raw: document.CashFlow.EndingCash, target: &cashFlow.EndingCash},
		{field: FieldCapitalExpenditure, raw: document.CashFlow.CapitalExpenditure, target: &cashFlow.CapitalExpenditure},
		{field: FieldDepreciation, raw: document.CashFlow.Depreciation, target: &cashFlow.Depreciation},
		{field: FieldDebtIssuance, raw: document.CashFlow.DebtIssuance, target: &cashFlow.DebtIssuance},
		{field: FieldDebtRepayment, raw: document.CashFlow.DebtRepayment, target: &cashFlow.DebtRepayment},
		{field: FieldDividendsPaid, raw: document.CashFlow.DividendsPaid, target: &cashFlow.DividendsPaid},
	}

	for _, binding := range bindings {
		if binding.raw == nil {
			continue
		}
		parsedAmount, parseError := ParseAmount(*binding.raw)
		if parseError != nil {
			return Model{}, fmt.Errorf(documentFieldErrorTemplateConstant, binding.field, parseError)
		}
		*binding.target = parsedAmount
	}

	transactions := make([]decimal.Decimal, 0, len(document.Transactions))
	for transactionIndex, rawTransaction := range document.Transactions {
		parsedAmount, parseError := ParseAmount(rawTransaction)
		if parseError != nil {
			return Model{}, fmt.Errorf(documentTransactionErrorTemplateConstant, transactionIndex, parseError)
		}
		transactionValue, _ := parsedAmount.Value()
		transactions = append(transactions, transactionValue)
	}

	return NewModel(document.Company, document.Period, balanceSheet, incomeStatement, cashFlow, transactions), nil
}
