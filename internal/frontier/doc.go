// Package frontier provides the pending-URL queue and visited set that
// govern the breadth-first traversal.
//
// The frontier enforces the single crawl-ordering invariant the engine
// relies on: a URL offered once is returned by Pop exactly once and is
// never re-enqueued, for the whole lifetime of a run. Deduplication
// happens entirely here — callers offer every candidate link, duplicates
// included, and the frontier discards repeats.
//
// Design decision: We keep the frontier as an explicit object owned by
// the crawl controller rather than ambient fields on the controller
// because it is the one piece of state whose invariant is worth testing
// in isolation.
package frontier
