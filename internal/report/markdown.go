package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/textcrawl/textcrawl/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writePages(md, summary)
	w.writeFailures(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the summary header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.RunSummary) {
	md.H1("Crawl Run Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed URL", "`" + summary.SeedURL + "`"},
			{"Corpus File", "`" + summary.OutputPath + "`"},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", summary.Duration.String()},
			{"Pages Scraped", strconv.Itoa(summary.PagesScraped) + " / " + strconv.Itoa(summary.MaxPages) + " budget"},
			{"Finished", w.getReasonText(summary)},
		},
	})
	md.PlainText("")

	w.writeAlert(md, summary)
}

// getReasonText returns the termination reason with a status marker.
func (w *MarkdownWriter) getReasonText(summary *model.RunSummary) string {
	switch summary.Reason {
	case model.ReasonBudgetReached:
		return "✅ Page budget reached"
	case model.ReasonFrontierExhausted:
		return "✅ No more links to follow"
	case model.ReasonStopped:
		return "⚠️ Stopped by operator"
	case model.ReasonWriteFailed:
		return "❌ Corpus write failed"
	default:
		return summary.ReasonName
	}
}

// writeAlert writes an appropriate alert based on the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.RunSummary) {
	switch {
	case summary.Reason == model.ReasonWriteFailed:
		md.Cautionf(
			"The run was aborted by a corpus write failure after %d page(s). Records already written are intact.",
			summary.PagesScraped,
		)
	case summary.Reason == model.ReasonStopped:
		md.Warningf(
			"The run was stopped before completing; %d page(s) were scraped.",
			summary.PagesScraped,
		)
	case summary.PagesScraped == 0:
		md.Note("No pages were scraped; check that the seed URL is reachable.")
	case len(summary.Failures) > 0:
		md.Importantf(
			"%d URL(s) failed to fetch during the run.",
			len(summary.Failures),
		)
	default:
		md.Tip("Every fetched URL was scraped successfully.")
	}
	md.PlainText("")
}

// writePages writes the per-page listing as a table.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, summary *model.RunSummary) {
	md.H2("Pages")
	md.PlainText("")

	if len(summary.Pages) == 0 {
		md.PlainText("No pages were scraped.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.Pages))
	for i, page := range summary.Pages {
		rows[i] = []string{
			strconv.Itoa(page.Number),
			truncateString(page.URL, 100),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes URLs that failed to fetch.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, summary *model.RunSummary) {
	if len(summary.Failures) == 0 {
		return
	}

	md.H2("Failed Fetches")
	md.PlainText("")

	rows := make([][]string, len(summary.Failures))
	for i, failure := range summary.Failures {
		rows[i] = []string{
			failure.KindName,
			truncateString(failure.URL, 100),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Kind", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the summary footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Summary generated by [textcrawl](https://github.com/textcrawl/textcrawl)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
