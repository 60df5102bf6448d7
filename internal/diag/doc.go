// Package diag defines the diagnostic model shared by the manifest pipeline.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEX/SYN/SEM/IO/PRJ/CHK prefixes), a short Message and
// an optional path and 1-based position. The package does no IO and no
// coloring; rendering lives in cmd/depsort.
package diag
