// Package main provides the entry point for the textcrawl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for textcrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textcrawl",
		Short: "Breadth-first text scraper for building plain-text corpora",
		Long: `textcrawl crawls the web breadth-first from a seed URL and appends the
visible text of each page to a timestamped corpus file.

Each run stops when the page budget is reached, when no links remain,
or when interrupted with Ctrl-C. Run history is kept in a local SQLite
database and can be inspected with the history command.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
