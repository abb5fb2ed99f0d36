// Package auditor checks the internal consistency of a financial statement set.
//
// The auditor runs an ordered battery of rules covering the accounting
// equation, sign sanity, the income statement chain, cash flow reconciliation,
// and plausibility ranges. Each violated rule yields a Finding with a
// severity; a Report passes when no ERROR finding is present.
package auditor
