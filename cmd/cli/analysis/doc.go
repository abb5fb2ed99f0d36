// Package analysis wires the audit, benford and benchmark commands to the
// statement loader, the analysis engines and the renderers.
package analysis
