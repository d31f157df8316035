// Package corpus owns the append-only output file that accumulates the
// extracted text of a run.
//
// The file format is plain UTF-8 text: a fixed header line written once
// at file creation, then one record block per successfully scraped page
// in scrape order. No closing footer is written when a run ends; the
// file simply stops after the last record.
//
// Design decision: Records are written directly to the file descriptor
// without an application-level buffer. Every append therefore reaches
// the operating system before the next page is fetched, which is what
// makes a record the unit of loss on crash or forced stop.
package corpus
