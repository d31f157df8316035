package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/textcrawl/textcrawl/internal/config"
	"github.com/textcrawl/textcrawl/internal/database"
	"github.com/textcrawl/textcrawl/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past crawl runs recorded in the history database",
		Long: `History lists past crawl runs recorded in the local history database.
Runs are shown newest first with their seed, page count, and end reason.

Examples:
  # List the 20 most recent runs
  textcrawl history

  # List every recorded run
  textcrawl history --limit 0

  # Show the full page list of run 42
  textcrawl history --run 42

  # Show run 42 as JSON
  textcrawl history --run 42 --json`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 20,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().Int64P("run", "r", 0,
		"Show the detail of a single run by ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output the run detail as JSON (with --run)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the run detail as Markdown (with --run)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}

	// Listing never creates the database. No history means no runs.
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		if runID > 0 {
			return fmt.Errorf("no run history recorded yet: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}
	defer db.Close()

	if runID > 0 {
		return showRun(cmd, db, runID)
	}

	return listRuns(cmd, db, limit)
}

// showRun prints the full summary of a single run in the requested format.
func showRun(cmd *cobra.Command, db *database.HistoryDB, runID int64) error {
	summary, err := db.GetRun(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", runID, err)
	}
	if summary == nil {
		return fmt.Errorf("run %d not found", runID)
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if asJSON && asMarkdown {
		return config.ErrConflictingReportFormats
	}

	var w report.Writer
	switch {
	case asJSON:
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	case asMarkdown:
		w = report.NewMarkdownWriter(cmd.OutOrStdout())
	default:
		w = report.NewSimpleWriter(cmd.OutOrStdout())
	}

	_, err = w.Write(summary)
	return err
}

// listRuns prints a table of recorded runs, newest first.
func listRuns(cmd *cobra.Command, db *database.HistoryDB, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tSTARTED\tSEED\tPAGES\tREASON")
	for _, run := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\t%s\n",
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.SeedURL,
			run.PagesScraped,
			run.MaxPages,
			run.ReasonName,
		)
	}

	return nil
}
