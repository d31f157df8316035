package model

import "time"

// RunConfig is the per-run configuration supplied by the presentation
// shell. It is created once at start and is immutable for the run's
// duration.
type RunConfig struct {
	// SeedURL is the absolute URL the breadth-first traversal starts from.
	// Must be non-empty.
	SeedURL string

	// MaxPages is the page budget: the maximum number of successfully
	// scraped pages before the run stops on its own. Must be positive.
	MaxPages int

	// Append reuses the previous run's corpus file instead of generating
	// a fresh timestamped one. With no prior run in this process, a new
	// file is generated anyway.
	Append bool
}

// PageRecord is the result of successfully fetching and extracting one
// URL. Records are transient: they are flushed to the corpus file as soon
// as they are produced and are not retained in memory.
type PageRecord struct {
	// Number is the 1-based page number in successful-scrape order.
	Number int

	// URL is the fetched URL as it was popped from the frontier.
	URL string

	// Text is the extracted plain-text body.
	Text string
}

// PageRef identifies one scraped page inside a RunSummary without
// carrying its text.
type PageRef struct {
	// Number is the 1-based page number.
	Number int `json:"number"`

	// URL is the fetched URL.
	URL string `json:"url"`
}

// PageFailure records one URL that failed to fetch during a run.
type PageFailure struct {
	// URL is the frontier URL that failed.
	URL string `json:"url"`

	// Kind classifies the failure.
	Kind ErrorKind `json:"-"`

	// KindName is the textual form of Kind, kept for serialization.
	KindName string `json:"kind"`
}

// RunSummary is the durable record of one finished run. The shell builds
// it from the event stream and hands it to the report writers and the
// history database.
type RunSummary struct {
	// ID is the database identifier, zero until the run is saved.
	ID int64 `json:"id,omitempty"`

	// SeedURL is the URL the run started from.
	SeedURL string `json:"seed_url"`

	// OutputPath is the corpus file the run wrote to.
	OutputPath string `json:"output_path"`

	// MaxPages is the page budget the run was configured with.
	MaxPages int `json:"max_pages"`

	// PagesScraped is the number of successfully scraped pages.
	PagesScraped int `json:"pages_scraped"`

	// Reason records why the run ended.
	Reason Reason `json:"-"`

	// ReasonName is the textual form of Reason, kept for serialization.
	ReasonName string `json:"reason"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`

	// Pages lists the scraped pages in page-number order.
	Pages []PageRef `json:"pages,omitempty"`

	// Failures lists URLs that failed to fetch, in occurrence order.
	Failures []PageFailure `json:"failures,omitempty"`
}

// NewRunSummary creates an empty summary for a run that just started.
func NewRunSummary(cfg RunConfig, outputPath string, startedAt time.Time) *RunSummary {
	return &RunSummary{
		SeedURL:    cfg.SeedURL,
		OutputPath: outputPath,
		MaxPages:   cfg.MaxPages,
		StartedAt:  startedAt,
	}
}

// AddPage appends a scraped page to the summary.
func (s *RunSummary) AddPage(number int, url string) {
	s.Pages = append(s.Pages, PageRef{Number: number, URL: url})
}

// AddFailure appends a failed URL to the summary.
func (s *RunSummary) AddFailure(url string, kind ErrorKind) {
	s.Failures = append(s.Failures, PageFailure{URL: url, Kind: kind, KindName: kind.String()})
}

// Finish records the terminal state of the run.
func (s *RunSummary) Finish(pages int, reason Reason, finishedAt time.Time) {
	s.PagesScraped = pages
	s.Reason = reason
	s.ReasonName = reason.String()
	s.Duration = finishedAt.Sub(s.StartedAt)
}
