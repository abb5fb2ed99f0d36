// Package benchmark derives financial ratios from a statement model and
// compares them with an industry benchmark table.
package benchmark
