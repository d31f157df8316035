// Package model defines the core data structures shared across textcrawl.
//
// This package contains the following main types:
//   - RunConfig: The immutable per-run configuration (seed, budget, file mode)
//   - Event: Status notifications streamed from the controller to the shell
//   - RunSummary: The durable record of a finished run
//   - ErrorKind / Reason: Closed classification vocabularies
//
// Design decision: We keep these in a leaf package with no internal
// dependencies because the controller, the history database, and the
// report writers all need them; centralizing them prevents import cycles.
//
// The summary types are designed to be serializable for database storage
// and report output.
package model
