// Package database provides SQLite-based storage for textcrawl run history.
//
// This package implements the HistoryDB, which stores:
//   - One row per finished run (seed, corpus path, budget, outcome)
//   - The page list of each run, in page-number order
//   - URLs that failed to fetch, with their failure classification
//
// History is write-only from the crawler's point of view: the history
// command reads it, but no crawl is ever seeded or resumed from it.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
//  1. No external dependencies - the database is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. Sufficient performance for our use case
//  4. WAL mode provides good concurrent read performance
package database
