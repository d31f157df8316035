package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/textcrawl/textcrawl/internal/database"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history" {
			t.Errorf("expected use 'history', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has limit flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.Shorthand != "l" {
			t.Errorf("expected shorthand 'l', got %q", flag.Shorthand)
		}
		if flag.DefValue != "20" {
			t.Errorf("expected default '20', got %q", flag.DefValue)
		}
	})

	t.Run("has run flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("run")
		if flag == nil {
			t.Fatal("expected run flag")
		}
		if flag.Shorthand != "r" {
			t.Errorf("expected shorthand 'r', got %q", flag.Shorthand)
		}
	})

	t.Run("has report format flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("json") == nil {
			t.Error("expected json flag")
		}
		if cmd.Flags().Lookup("markdown") == nil {
			t.Error("expected markdown flag")
		}
	})
}

// TestListRuns tests run listing against a temporary database.
func TestListRuns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	db, err := database.Open(tmpDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	t.Run("reports empty history", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetContext(context.Background())
		cmd.SetOut(&buf)

		if err := listRuns(cmd, db, 20); err != nil {
			t.Fatalf("listRuns() error = %v", err)
		}
		if !strings.Contains(buf.String(), "No runs recorded yet.") {
			t.Errorf("expected empty-history message, got %q", buf.String())
		}
	})

	t.Run("lists saved runs", func(t *testing.T) {
		summary := newTestRunSummary()
		if err := db.SaveRun(context.Background(), summary); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}

		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetContext(context.Background())
		cmd.SetOut(&buf)

		if err := listRuns(cmd, db, 20); err != nil {
			t.Fatalf("listRuns() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "SEED") {
			t.Errorf("expected table header, got %q", output)
		}
		if !strings.Contains(output, "https://a.example") {
			t.Errorf("expected seed URL in listing, got %q", output)
		}
		if !strings.Contains(output, "frontier_exhausted") {
			t.Errorf("expected end reason in listing, got %q", output)
		}
	})
}

// TestShowRun tests the single-run detail view.
func TestShowRun(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	db, err := database.Open(tmpDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	summary := newTestRunSummary()
	if err := db.SaveRun(context.Background(), summary); err != nil {
		t.Fatalf("failed to save run: %v", err)
	}

	t.Run("shows saved run", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetContext(context.Background())
		cmd.SetOut(&buf)

		if err := showRun(cmd, db, summary.ID); err != nil {
			t.Fatalf("showRun() error = %v", err)
		}
		if !strings.Contains(buf.String(), "https://a.example") {
			t.Errorf("expected seed URL in detail, got %q", buf.String())
		}
	})

	t.Run("shows saved run as JSON", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetContext(context.Background())
		cmd.SetOut(&buf)
		_ = cmd.Flags().Set("json", "true")

		if err := showRun(cmd, db, summary.ID); err != nil {
			t.Fatalf("showRun() error = %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("expected valid JSON detail, got error: %v", err)
		}
		if decoded["seed_url"] != "https://a.example" {
			t.Errorf("expected seed in JSON detail, got %v", decoded["seed_url"])
		}
	})

	t.Run("rejects conflicting formats", func(t *testing.T) {
		cmd := NewHistoryCmd()
		cmd.SetContext(context.Background())
		_ = cmd.Flags().Set("json", "true")
		_ = cmd.Flags().Set("markdown", "true")

		err := showRun(cmd, db, summary.ID)
		if err == nil {
			t.Fatal("expected error for conflicting report formats")
		}
		if !strings.Contains(err.Error(), "conflicting report formats") {
			t.Errorf("expected 'conflicting report formats' error, got: %v", err)
		}
	})

	t.Run("errors on unknown run ID", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetContext(context.Background())
		cmd.SetOut(&buf)

		err := showRun(cmd, db, 99999)
		if err == nil {
			t.Fatal("expected error for unknown run ID")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected 'not found' error, got: %v", err)
		}
	})
}
