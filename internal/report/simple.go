package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/textcrawl/textcrawl/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
//  1. It works in all terminals without compatibility issues
//  2. It's easier to pipe to files or other tools
//  3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showPages controls whether the per-page listing is included.
	showPages bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowPages includes the full per-page listing in the output.
func WithShowPages(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showPages = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showPages:  true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.RunSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writePages(&sb, summary)
	w.writeFailures(&sb, summary)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the summary header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.RunSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         CRAWL RUN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Seed URL:       %s\n", summary.SeedURL))
	sb.WriteString(fmt.Sprintf("Corpus File:    %s\n", summary.OutputPath))
	sb.WriteString(fmt.Sprintf("Started:        %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:       %s\n", summary.Duration.Round(time.Millisecond)))
	sb.WriteString(fmt.Sprintf("Pages Scraped:  %d / %d budget\n", summary.PagesScraped, summary.MaxPages))
	sb.WriteString(fmt.Sprintf("Finished:       %s\n", reasonText(summary.Reason)))
	sb.WriteString("\n")
}

// writePages writes the per-page listing.
func (w *SimpleWriter) writePages(sb *strings.Builder, summary *model.RunSummary) {
	if !w.showPages || len(summary.Pages) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, page := range summary.Pages {
		sb.WriteString(fmt.Sprintf("  #%-4d %s\n", page.Number, page.URL))
	}
	sb.WriteString("\n")
}

// writeFailures writes URLs that failed to fetch.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, summary *model.RunSummary) {
	if len(summary.Failures) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("FAILED FETCHES (%d)\n", len(summary.Failures)))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, failure := range summary.Failures {
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", failure.KindName, failure.URL))
	}
	sb.WriteString("\n")
}

// writeFooter writes the summary footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Summary generated by textcrawl\n")
	sb.WriteString("https://github.com/textcrawl/textcrawl\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// reasonText renders a termination reason for humans.
func reasonText(r model.Reason) string {
	switch r {
	case model.ReasonBudgetReached:
		return "page budget reached"
	case model.ReasonFrontierExhausted:
		return "no more links to follow"
	case model.ReasonStopped:
		return "stopped by operator"
	case model.ReasonWriteFailed:
		return "corpus write failed"
	default:
		return r.String()
	}
}
