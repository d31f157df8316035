package model

import (
	"testing"
	"time"
)

// TestErrorKindString tests the textual forms of fetch failure kinds.
func TestErrorKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrorKindTimeout, "timeout"},
		{ErrorKindConnectionFailed, "connection_failed"},
		{ErrorKindHTTPStatus, "http_status"},
		{ErrorKindOther, "other"},
		{ErrorKind(99), "other"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// TestParseErrorKind tests round-tripping error kinds through their
// textual form.
func TestParseErrorKind(t *testing.T) {
	t.Parallel()

	for _, kind := range []ErrorKind{ErrorKindOther, ErrorKindTimeout, ErrorKindConnectionFailed, ErrorKindHTTPStatus} {
		if got := ParseErrorKind(kind.String()); got != kind {
			t.Errorf("ParseErrorKind(%q) = %v, want %v", kind.String(), got, kind)
		}
	}

	if got := ParseErrorKind("no-such-kind"); got != ErrorKindOther {
		t.Errorf("ParseErrorKind(unknown) = %v, want ErrorKindOther", got)
	}
}

// TestReasonString tests the textual forms of run termination reasons.
func TestReasonString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason Reason
		want   string
	}{
		{ReasonBudgetReached, "budget_reached"},
		{ReasonFrontierExhausted, "frontier_exhausted"},
		{ReasonStopped, "stopped"},
		{ReasonWriteFailed, "write_failed"},
		{Reason(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("Reason(%d).String() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

// TestParseReason tests round-tripping reasons through their textual form.
func TestParseReason(t *testing.T) {
	t.Parallel()

	for _, reason := range []Reason{ReasonBudgetReached, ReasonFrontierExhausted, ReasonStopped, ReasonWriteFailed} {
		if got := ParseReason(reason.String()); got != reason {
			t.Errorf("ParseReason(%q) = %v, want %v", reason.String(), got, reason)
		}
	}
}

// TestRunSummaryLifecycle tests building a summary from run progress.
func TestRunSummaryLifecycle(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	cfg := RunConfig{SeedURL: "https://example.test/", MaxPages: 5}
	summary := NewRunSummary(cfg, "scraped_data_20260115-100000.txt", started)

	summary.AddPage(1, "https://example.test/")
	summary.AddPage(2, "https://example.test/about")
	summary.AddFailure("https://example.test/missing", ErrorKindHTTPStatus)
	summary.Finish(2, ReasonFrontierExhausted, started.Add(3*time.Second))

	if summary.PagesScraped != 2 {
		t.Errorf("PagesScraped = %d, want 2", summary.PagesScraped)
	}
	if len(summary.Pages) != 2 {
		t.Errorf("len(Pages) = %d, want 2", len(summary.Pages))
	}
	if summary.Pages[1].Number != 2 {
		t.Errorf("second page number = %d, want 2", summary.Pages[1].Number)
	}
	if len(summary.Failures) != 1 {
		t.Fatalf("len(Failures) = %d, want 1", len(summary.Failures))
	}
	if summary.Failures[0].KindName != "http_status" {
		t.Errorf("failure kind name = %q, want %q", summary.Failures[0].KindName, "http_status")
	}
	if summary.ReasonName != "frontier_exhausted" {
		t.Errorf("reason name = %q, want %q", summary.ReasonName, "frontier_exhausted")
	}
	if summary.Duration != 3*time.Second {
		t.Errorf("duration = %v, want 3s", summary.Duration)
	}
}
