// Package cli constructs the fsaudit command-line interface, wiring the Cobra
// command hierarchy, the layered configuration loader and structured logging
// around the statement audit, Benford and benchmark commands.
package cli
