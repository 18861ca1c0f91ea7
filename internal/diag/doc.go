// Package diag defines the diagnostic model shared by all frontend phases.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form, a short Message, the Primary span and optional Notes
// pointing at related locations.
//
// Producers emit through a Reporter (BagReporter, DedupReporter) or add to a
// Bag directly. Bag enforces a limit, sorts deterministically and drops
// duplicates. Package diag performs no IO; rendering lives in internal/diagfmt.
package diag
