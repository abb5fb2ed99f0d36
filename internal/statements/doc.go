// Package statements holds the financial statement model consumed by the
// auditor, the Benford analyzer, and the benchmark comparator.
//
// Model is a passive value: a balance sheet, an income statement, a cash flow
// statement, and the transaction amounts used for digit analysis. Amounts are
// optional decimals so that absent figures can be reported rather than guessed.
// Loader reads statement documents written in YAML or JSON.
package statements
