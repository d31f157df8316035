// Package crawl implements the breadth-first crawl loop and its
// lifecycle.
//
// The Controller owns one run at a time. Start seeds the frontier, binds
// a corpus file, and launches a single goroutine that pops URLs in
// discovery order, fetches them, extracts visible text and links, and
// appends one record per successful page. Progress is reported through a
// typed event channel that the presentation shell drains; the run ends
// with exactly one RunFinished event carrying the termination reason.
//
// A run ends in one of four ways: the page budget is reached (only
// successfully scraped pages count), the frontier drains, the operator
// requests a stop via Stop, or a corpus append fails. Stop is
// cooperative: the loop observes an atomic flag at the top of each
// iteration, so the page in flight always completes.
package crawl
