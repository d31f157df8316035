package model

// Event is a status notification emitted by the crawl controller while a
// run is in progress. The presentation shell drains events from a channel
// and renders them on its own schedule; the controller never waits on
// rendering beyond the channel buffer.
//
// Design decision: We use a closed interface with one struct per event
// rather than a single struct with a kind field because:
//  1. Each event carries different data; sparse shared fields invite misuse
//  2. A type switch in the shell keeps the handling exhaustive and readable
//  3. The stream stays an ordered, typed record of the run
type Event interface {
	event()
}

// RunStarted is emitted exactly once at the beginning of a run, after the
// corpus file has been opened and the frontier seeded.
type RunStarted struct {
	// OutputPath is the corpus file bound to this run.
	OutputPath string

	// SeedURL is the URL the frontier was seeded with.
	SeedURL string
}

// PageScraped is emitted after a page has been fetched, extracted, and
// appended to the corpus.
type PageScraped struct {
	// PageNumber is the 1-based sequence number assigned in the order
	// pages are successfully scraped, not in discovery order.
	PageNumber int

	// URL is the frontier URL that was fetched.
	URL string
}

// PageError is emitted when a single page fails to fetch. The page is
// consumed from the frontier and never retried; the run continues.
type PageError struct {
	// URL is the frontier URL that failed.
	URL string

	// Kind classifies the failure.
	Kind ErrorKind

	// Err is the underlying error, kept for logging.
	Err error
}

// StopRequested is emitted when the loop first observes the cooperative
// stop flag. It is produced by the loop context, not by Stop itself, so
// the event channel keeps a single producer.
type StopRequested struct{}

// RunFinished is emitted exactly once per run, on every control-flow exit
// from the crawl loop.
type RunFinished struct {
	// PagesScraped is the final count of successfully scraped pages.
	// It equals the number of PageScraped events emitted during the run.
	PagesScraped int

	// Reason records why the run ended.
	Reason Reason

	// Err is the corpus write error when Reason is ReasonWriteFailed,
	// nil otherwise.
	Err error
}

func (RunStarted) event()    {}
func (PageScraped) event()   {}
func (PageError) event()     {}
func (StopRequested) event() {}
func (RunFinished) event()   {}

// ErrorKind classifies why a single page fetch failed.
type ErrorKind int

// Fetch failure classifications. A non-2xx response is a failure, not a
// partial success.
const (
	// ErrorKindOther covers failures that fit no other category
	// (malformed URL, body read error, and so on).
	ErrorKindOther ErrorKind = iota

	// ErrorKindTimeout means the request exceeded the fetch timeout.
	ErrorKindTimeout

	// ErrorKindConnectionFailed means the TCP connection could not be
	// established (refused, DNS failure, unreachable host).
	ErrorKindConnectionFailed

	// ErrorKindHTTPStatus means the server responded with a non-2xx
	// status code.
	ErrorKindHTTPStatus
)

// String returns the stable textual form used in logs, reports, and the
// history database.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTimeout:
		return "timeout"
	case ErrorKindConnectionFailed:
		return "connection_failed"
	case ErrorKindHTTPStatus:
		return "http_status"
	default:
		return "other"
	}
}

// ParseErrorKind converts the textual form back to an ErrorKind.
// Unknown strings map to ErrorKindOther.
func ParseErrorKind(s string) ErrorKind {
	switch s {
	case "timeout":
		return ErrorKindTimeout
	case "connection_failed":
		return ErrorKindConnectionFailed
	case "http_status":
		return ErrorKindHTTPStatus
	default:
		return ErrorKindOther
	}
}

// Reason records why a run reached its terminal state.
type Reason int

// Run termination reasons. Exactly one applies per run; when budget
// exhaustion and a stop request race on the same iteration boundary,
// whichever the loop observes first at loop-top wins.
const (
	// ReasonBudgetReached means the page budget was hit.
	ReasonBudgetReached Reason = iota

	// ReasonFrontierExhausted means no pending URLs remained.
	ReasonFrontierExhausted

	// ReasonStopped means the operator requested a stop.
	ReasonStopped

	// ReasonWriteFailed means a corpus file append failed. Already
	// written records are intact; each append is a complete unit.
	ReasonWriteFailed
)

// String returns the stable textual form used in logs, reports, and the
// history database.
func (r Reason) String() string {
	switch r {
	case ReasonBudgetReached:
		return "budget_reached"
	case ReasonFrontierExhausted:
		return "frontier_exhausted"
	case ReasonStopped:
		return "stopped"
	case ReasonWriteFailed:
		return "write_failed"
	default:
		return "unknown"
	}
}

// ParseReason converts the textual form back to a Reason. Unknown strings
// map to ReasonFrontierExhausted, the most neutral terminal state.
func ParseReason(s string) Reason {
	switch s {
	case "budget_reached":
		return ReasonBudgetReached
	case "stopped":
		return ReasonStopped
	case "write_failed":
		return ReasonWriteFailed
	default:
		return ReasonFrontierExhausted
	}
}
