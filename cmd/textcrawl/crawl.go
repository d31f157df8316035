package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/textcrawl/textcrawl/internal/config"
	"github.com/textcrawl/textcrawl/internal/crawl"
	"github.com/textcrawl/textcrawl/internal/database"
	"github.com/textcrawl/textcrawl/internal/fetch"
	"github.com/textcrawl/textcrawl/internal/log"
	"github.com/textcrawl/textcrawl/internal/model"
	"github.com/textcrawl/textcrawl/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed-url...]",
		Short: "Crawl the web breadth-first and scrape page text into a corpus file",
		Long: `Crawl starts from one or more seed URLs and follows links breadth-first,
appending the visible text of every fetched page to a corpus file named
scraped_data_<timestamp>.txt. Each seed gets its own run.

A run ends when the page budget is reached, when no links remain, or
when interrupted with Ctrl-C (the page in flight is finished first).
Failed pages are skipped and never retried.

Examples:
  # Crawl from the default seed (Wikipedia) with the default budget
  textcrawl crawl

  # Crawl 100 pages from a custom seed
  textcrawl crawl --max-pages 100 https://example.com

  # Continue filling the previous corpus file
  textcrawl crawl --append https://example.com

  # Write a markdown run summary to a file
  textcrawl crawl --markdown --output report.md https://example.com

Configuration file (.textcrawl) example:
  defaults:
    maxPages: 25
  seeds:
    "https://news.example":
      maxPages: 10
      append: true`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of successfully scraped pages per run")
	cmd.Flags().BoolP("append", "a", false,
		"Append to the previous run's corpus file instead of starting a new one")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for each page fetch")
	cmd.Flags().StringP("output-dir", "d", ".",
		"Directory where corpus files are written")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with HTTP requests")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .textcrawl in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON run summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown run summary (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write run summary to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Ctrl-C requests a cooperative stop: the page in flight completes
	// before the run ends. Signals are swallowed until stop() runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.Append, err = cmd.Flags().GetBool("append")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load seed-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.FileConfig = &config.File{
			Seeds: make(map[string]config.SeedConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}

	// Run history goes to the XDG data directory unless disabled.
	cfg.SaveToDB = !noHistory
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are seed URLs; default to Wikipedia like the
	// original script.
	cfg.Seeds = args
	if len(cfg.Seeds) == 0 {
		cfg.Seeds = []string{config.DefaultSeedURL}
	}

	return cfg, nil
}

// runCrawl executes one run per seed.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Debug("starting crawl",
		"seeds", cfg.Seeds,
		"max_pages", cfg.MaxPages,
		"output_dir", cfg.OutputDir,
		"save_history", cfg.SaveToDB,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Debug("history database opened", "dir", cfg.DBDir)
	}

	ctrl := newController(cfg, cfg.UserAgent, logger)

	for _, seed := range cfg.Seeds {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		runCfg, userAgent := buildRunConfig(cfg, seed)

		// A seed with its own User-Agent gets a dedicated client. The
		// shared controller keeps the corpus file chain for append runs.
		runCtrl := ctrl
		if userAgent != cfg.UserAgent {
			runCtrl = newController(cfg, userAgent, logger)
		}

		summary, err := runOne(ctx, runCtrl, runCfg, logger)
		if err != nil {
			return err
		}

		if err := outputReport(cfg, summary); err != nil {
			logger.Error("summary output failed", "seed", seed, "error", err)
		}

		if err := saveRun(ctx, db, summary, logger); err != nil {
			logger.Error("failed to save run history", "seed", seed, "error", err)
		}
	}

	return nil
}

// newController builds a controller with a fetch client using the given
// User-Agent.
func newController(cfg *config.Config, userAgent string, logger *slog.Logger) *crawl.Controller {
	fetcher := fetch.NewClient(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(userAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)

	return crawl.New(fetcher,
		crawl.WithLogger(logger),
		crawl.WithOutputDir(cfg.OutputDir),
	)
}

// buildRunConfig merges global settings with per-seed overrides from the
// config file. It returns the run configuration and the effective
// User-Agent for the seed.
func buildRunConfig(cfg *config.Config, seed string) (model.RunConfig, string) {
	runCfg := model.RunConfig{
		SeedURL:  seed,
		MaxPages: cfg.MaxPages,
		Append:   cfg.Append,
	}
	userAgent := cfg.UserAgent

	if cfg.FileConfig != nil {
		seedCfg := cfg.FileConfig.GetSeedConfig(seed)
		if seedCfg.MaxPages > 0 {
			runCfg.MaxPages = seedCfg.MaxPages
		}
		if seedCfg.Append != nil {
			runCfg.Append = *seedCfg.Append
		}
		if seedCfg.UserAgent != "" {
			userAgent = seedCfg.UserAgent
		}
	}

	return runCfg, userAgent
}

// runOne starts a single run, renders its events, and builds its summary.
func runOne(ctx context.Context, ctrl *crawl.Controller, runCfg model.RunConfig, logger *slog.Logger) (*model.RunSummary, error) {
	startedAt := time.Now()

	// The run gets a context detached from the signal context: a signal
	// must request a cooperative stop through the watcher below, not
	// abort the fetch in flight.
	if err := ctrl.Start(context.WithoutCancel(ctx), runCfg); err != nil {
		return nil, fmt.Errorf("failed to start run for %s: %w", runCfg.SeedURL, err)
	}

	summary := model.NewRunSummary(runCfg, ctrl.OutputPath(), startedAt)

	// Two concerns run concurrently: draining and rendering the event
	// stream, and translating a cancelled context into a cooperative
	// stop. The watcher exits when the run finishes on its own.
	var g errgroup.Group

	g.Go(func() error {
		for ev := range ctrl.Events() {
			renderEvent(ev, summary, startedAt)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
			logger.Debug("shutdown signal received, stopping run")
			ctrl.Stop()
		case <-ctrl.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	<-ctrl.Done()

	return summary, nil
}

// renderEvent prints one event to the terminal and folds it into the
// summary.
func renderEvent(ev model.Event, summary *model.RunSummary, startedAt time.Time) {
	switch e := ev.(type) {
	case model.RunStarted:
		fmt.Printf("Scraping %s into %s\n\n", e.SeedURL, e.OutputPath)
	case model.PageScraped:
		fmt.Printf("[SCRAPED] Page #%d: %s\n", e.PageNumber, e.URL)
		summary.AddPage(e.PageNumber, e.URL)
	case model.PageError:
		fmt.Printf("[ERROR]   %s: %s\n", e.URL, e.Kind)
		summary.AddFailure(e.URL, e.Kind)
	case model.StopRequested:
		fmt.Println("\nStopping after the current page...")
	case model.RunFinished:
		summary.Finish(e.PagesScraped, e.Reason, time.Now())
		fmt.Printf("\nRun finished in %s: %d page(s) scraped (%s)\n",
			time.Since(startedAt).Round(time.Millisecond), e.PagesScraped, e.Reason)
		if e.Err != nil {
			fmt.Fprintf(os.Stderr, "Run error: %v\n", e.Err)
		}
	}
}

// outputReport outputs the run summary in the requested format.
func outputReport(cfg *config.Config, summary *model.RunSummary) error {
	// The terminal already carries the live event stream; the default
	// format goes to stdout only when explicitly requested via --output
	// or a format flag.
	if !cfg.JSONReport && !cfg.MarkdownReport && cfg.ReportFile == "" {
		return nil
	}

	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output)
	}

	_, err := w.Write(summary)
	return err
}

// saveRun saves the run summary to the history database if enabled.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *database.HistoryDB, summary *model.RunSummary, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	// Saving must survive a cancelled crawl context: an interrupted run
	// is still history.
	if ctx.Err() != nil {
		ctx = context.Background()
	}

	if err := db.SaveRun(ctx, summary); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Debug("run saved to history", "id", summary.ID, "seed", summary.SeedURL)
	return nil
}
