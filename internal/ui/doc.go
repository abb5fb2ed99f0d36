// Package ui renders audit reports, Benford results and benchmark comparisons
// for people and machines.
//
// Console renderers produce aligned plain text; the JSON renderer emits the
// structured results unchanged. Document processing events are reported
// through a zap logger configured for human-readable output.
package ui
