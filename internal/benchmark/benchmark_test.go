package benchmark_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/temirov/fsaudit/internal/benchmark"
	"github.com/temirov/fsaudit/internal/statements"
)

func benchmarkModel(totalEquity statements.Amount, revenue statements.Amount) statements.Model {
	return statements.NewModel(
		"Acme Corp",
		"FY2024",
		statements.BalanceSheet{
			TotalAssets:      statements.AmountFromInt(1000),
			TotalLiabilities: statements.AmountFromInt(600),
			TotalEquity:      totalEquity,
		},
		statements.IncomeStatement{
			Revenue:         revenue,
			GrossProfit:     statements.AmountFromInt(400),
			OperatingIncome: statements.AmountFromInt(150),
			NetIncome:       statements.AmountFromInt(120),
		},
		statements.CashFlowStatement{},
		nil,
	)
}

func requireDecimal(testInstance *testing.T, expected string, actual decimal.Decimal) {
	testInstance.Helper()
	require.True(testInstance, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func TestComputeRatios(testInstance *testing.T) {
	ratios := benchmark.ComputeRatios(benchmarkModel(statements.AmountFromInt(400), statements.AmountFromInt(1000)))

	require.Len(testInstance, ratios, 8)
	requireDecimal(testInstance, "40", ratios[benchmark.RatioGrossMargin])
	requireDecimal(testInstance, "15", ratios[benchmark.RatioOperatingMargin])
	requireDecimal(testInstance, "12", ratios[benchmark.RatioNetMargin])
	requireDecimal(testInstance, "12", ratios[benchmark.RatioReturnOnAssets])
	requireDecimal(testInstance, "30", ratios[benchmark.RatioReturnOnEquity])
	requireDecimal(testInstance, "1.5", ratios[benchmark.RatioDebtToEquity])
	requireDecimal(testInstance, "60", ratios[benchmark.RatioDebtToAssets])
	requireDecimal(testInstance, "1", ratios[benchmark.RatioAssetTurnover])
}

func TestComputeRatiosOmitsUndefined(testInstance *testing.T) {
	ratios := benchmark.ComputeRatios(benchmarkModel(statements.AmountFromInt(0), statements.MissingAmount()))

	require.Equal(testInstance, []benchmark.RatioName{benchmark.RatioDebtToAssets, benchmark.RatioReturnOnAssets}, ratios.Names())
}

func TestComparatorCompare(testInstance *testing.T) {
	comparator := benchmark.NewComparator(map[string]decimal.Decimal{
		"Gross_Margin":     decimal.RequireFromString("38"),
		"net_margin":       decimal.RequireFromString("12"),
		"return_on_equity": decimal.RequireFromString("14.5"),
		"current_ratio":    decimal.RequireFromString("1.9"),
	})
	ratios := benchmark.Ratios{
		benchmark.RatioGrossMargin:    decimal.RequireFromString("40"),
		benchmark.RatioNetMargin:      decimal.RequireFromString("12"),
		benchmark.RatioReturnOnEquity: decimal.RequireFromString("10"),
	}

	comparison := comparator.Compare(ratios)

	require.Len(testInstance, comparison.Variances, 3)
	require.Equal(testInstance, benchmark.RatioGrossMargin, comparison.Variances[0].Ratio)
	require.Equal(testInstance, benchmark.DirectionAbove, comparison.Variances[0].Direction)
	requireDecimal(testInstance, "2", comparison.Variances[0].Difference)
	require.Equal(testInstance, benchmark.RatioNetMargin, comparison.Variances[1].Ratio)
	require.Equal(testInstance, benchmark.DirectionAt, comparison.Variances[1].Direction)
	require.Equal(testInstance, benchmark.RatioReturnOnEquity, comparison.Variances[2].Ratio)
	require.Equal(testInstance, benchmark.DirectionBelow, comparison.Variances[2].Direction)
	requireDecimal(testInstance, "-4.5", comparison.Variances[2].Difference)
	require.Equal(testInstance, []benchmark.RatioName{benchmark.RatioName("current_ratio")}, comparison.Unavailable)
}

func TestComparatorEmptyTable(testInstance *testing.T) {
	comparison := benchmark.NewComparator(nil).Compare(benchmark.Ratios{benchmark.RatioGrossMargin: decimal.NewFromInt(40)})

	require.Empty(testInstance, comparison.Variances)
	require.NotNil(testInstance, comparison.Variances)
	require.Empty(testInstance, comparison.Unavailable)
}
