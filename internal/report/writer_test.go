package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/textcrawl/textcrawl/internal/model"
)

// newTestSummary builds a finished summary with two pages and one failure.
func newTestSummary() *model.RunSummary {
	cfg := model.RunConfig{SeedURL: "https://www.wikipedia.org", MaxPages: 50}
	started := time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC)

	s := model.NewRunSummary(cfg, "scraped_data_20260203-103000.txt", started)
	s.AddPage(1, "https://www.wikipedia.org")
	s.AddPage(2, "https://en.wikipedia.org/wiki/Main_Page")
	s.AddFailure("https://www.wikipedia.org/broken", model.ErrorKindTimeout)
	s.Finish(2, model.ReasonFrontierExhausted, started.Add(30*time.Second))
	return s
}

// TestSimpleWriter tests the human-readable format.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("includes run information and pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		n, err := w.Write(newTestSummary())
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		output := buf.String()
		for _, want := range []string{
			"CRAWL RUN SUMMARY",
			"https://www.wikipedia.org",
			"scraped_data_20260203-103000.txt",
			"Pages Scraped:  2 / 50 budget",
			"no more links to follow",
			"#1",
			"https://en.wikipedia.org/wiki/Main_Page",
			"[timeout] https://www.wikipedia.org/broken",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("page listing can be suppressed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithShowPages(false))

		if _, err := w.Write(newTestSummary()); err != nil {
			t.Fatalf("Write: %v", err)
		}

		if strings.Contains(buf.String(), "PAGES") {
			t.Error("page section present despite WithShowPages(false)")
		}
	})

	t.Run("stopped run names the operator", func(t *testing.T) {
		t.Parallel()

		s := newTestSummary()
		s.Finish(1, model.ReasonStopped, s.StartedAt.Add(time.Second))

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(s); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if !strings.Contains(buf.String(), "stopped by operator") {
			t.Errorf("output missing stop reason:\n%s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the markdown format.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders header table and page table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(newTestSummary()); err != nil {
			t.Fatalf("Write: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Crawl Run Summary",
			"| Property",
			"`https://www.wikipedia.org`",
			"## Pages",
			"https://en.wikipedia.org/wiki/Main_Page",
			"## Failed Fetches",
			"timeout",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("empty run renders a note instead of tables", func(t *testing.T) {
		t.Parallel()

		cfg := model.RunConfig{SeedURL: "https://a.example", MaxPages: 10}
		s := model.NewRunSummary(cfg, "out.txt", time.Now())
		s.Finish(0, model.ReasonFrontierExhausted, time.Now())

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(s); err != nil {
			t.Fatalf("Write: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "No pages were scraped.") {
			t.Errorf("output missing empty-run note:\n%s", output)
		}
		if strings.Contains(output, "## Failed Fetches") {
			t.Error("failure section present for a run with no failures")
		}
	})
}

// TestJSONWriter tests the JSON format.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(newTestSummary()); err != nil {
			t.Fatalf("Write: %v", err)
		}

		var got model.RunSummary
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if got.SeedURL != "https://www.wikipedia.org" {
			t.Errorf("SeedURL = %q", got.SeedURL)
		}
		if got.ReasonName != "frontier_exhausted" {
			t.Errorf("ReasonName = %q", got.ReasonName)
		}
		if len(got.Pages) != 2 {
			t.Errorf("pages = %d, want 2", len(got.Pages))
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(newTestSummary()); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"") {
			t.Error("output is not indented")
		}
	})
}

// failWriter fails every write with a fixed error.
type failWriter struct {
	err error
}

func (w *failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

// TestMultiWriter tests fan-out behavior.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to every writer", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

		if _, err := mw.Write(newTestSummary()); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if a.Len() == 0 || b.Len() == 0 {
			t.Error("one of the writers received no output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		sink := errors.New("sink broken")
		var after bytes.Buffer
		mw := NewMultiWriter(
			NewSimpleWriter(&failWriter{err: sink}),
			NewSimpleWriter(&after),
		)

		if _, err := mw.Write(newTestSummary()); !errors.Is(err, sink) {
			t.Fatalf("expected sink error, got %v", err)
		}
		if after.Len() != 0 {
			t.Error("writer after the failing one still received output")
		}
	})
}

// TestTruncateString tests the table-cell truncation helper.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string untouched", input: "abc", maxLen: 10, want: "abc"},
		{name: "exact length untouched", input: "abcde", maxLen: 5, want: "abcde"},
		{name: "long string gets ellipsis", input: "abcdefghij", maxLen: 8, want: "abcde..."},
		{name: "tiny limit cuts hard", input: "abcdefghij", maxLen: 2, want: "ab"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}
