package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request HTTP timeout. 10 seconds is enough
	// for ordinary web pages; a page that takes longer is skipped rather
	// than allowed to stall the whole crawl.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxPages is the maximum number of pages to scrape per run.
	// This prevents runaway crawling on large or infinitely-generating
	// sites. Users can override this via the --max-pages CLI flag.
	DefaultMaxPages = 50

	// DefaultSeedURL is the page the crawl starts from when no seed is
	// given on the command line.
	DefaultSeedURL = "https://www.wikipedia.org"

	// AppName is the application name used for XDG directory paths.
	AppName = "textcrawl"

	// DefaultUserAgent identifies textcrawl in HTTP requests.
	// A descriptive User-Agent is good practice and allows operators
	// to identify crawler traffic in their logs.
	DefaultUserAgent = "textcrawl/1.0 (+https://github.com/textcrawl/textcrawl)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for most HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for textcrawl.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Timeout is the HTTP timeout for each page fetch.
	// This applies to individual requests, not the overall run duration.
	Timeout time.Duration

	// MaxPages is the maximum number of pages to scrape per run.
	// Only successfully scraped pages count; fetch failures do not.
	// A value of 0 means use the default (DefaultMaxPages).
	MaxPages int

	// Seeds is the list of URLs to start crawling from, one run per seed.
	// When empty, DefaultSeedURL is used.
	Seeds []string

	// OutputDir is the directory where corpus files are written.
	// Defaults to the current working directory.
	OutputDir string

	// Append appends scraped pages to the previous run's corpus file
	// instead of starting a new timestamped file.
	Append bool

	// UserAgent is the User-Agent header sent with HTTP requests.
	// A descriptive User-Agent helps service operators identify crawler
	// traffic.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated to prevent memory exhaustion.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .textcrawl in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds seed-specific settings loaded from the config file.
	// This is populated by LoadConfigFile and consulted per run.
	FileConfig *File

	// JSONReport enables JSON run summary output instead of the
	// human-readable format. Useful for piping into other tools.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown run summary output instead of the
	// human-readable format. When true, outputs GitHub Flavored Markdown
	// with tables. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the run summary.
	// When set, the summary is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory path for storing the SQLite database.
	// When set, run history is saved to the database.
	// When empty, run history is not persisted.
	// Defaults to XDG data directory (~/.local/share/textcrawl on Linux).
	DBDir string

	// SaveToDB indicates whether to save run history to the database.
	// This is automatically set to true when DBDir is configured.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeout, page budget).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		MaxPages:    DefaultMaxPages,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for textcrawl.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/textcrawl
// On macOS: ~/Library/Application Support/textcrawl
// On Windows: %LOCALAPPDATA%\textcrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeed
	}

	for _, seed := range c.Seeds {
		if seed == "" {
			return ErrEmptySeed
		}
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// MaxPages must be positive; zero would mean a run that scrapes nothing
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// MaxBodySize must be non-negative; zero means use the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
