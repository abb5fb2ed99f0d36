// Package benford compares the leading-digit distribution of transaction
// amounts with the distribution predicted by Benford's Law and scores the
// result with the mean absolute deviation.
package benford
