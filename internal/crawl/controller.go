package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/textcrawl/textcrawl/internal/corpus"
	"github.com/textcrawl/textcrawl/internal/extract"
	"github.com/textcrawl/textcrawl/internal/fetch"
	"github.com/textcrawl/textcrawl/internal/frontier"
	"github.com/textcrawl/textcrawl/internal/model"
)

// DefaultEventBuffer is the event channel capacity. Large enough that a
// briefly busy consumer never stalls the loop, small enough that a stuck
// consumer is noticed.
const DefaultEventBuffer = 64

// State is the controller's lifecycle state.
type State int

// Controller lifecycle states. Transitions are strictly
// Idle -> Running -> (Stopping ->) Finished, and Finished behaves like
// Idle for the purpose of starting the next run.
const (
	// StateIdle means no run has been started yet.
	StateIdle State = iota

	// StateRunning means the crawl loop is active.
	StateRunning

	// StateStopping means a stop was requested and the loop has not yet
	// observed it.
	StateStopping

	// StateFinished means the last run has completed.
	StateFinished
)

// String returns the lifecycle state name for logs.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Fetcher retrieves one page. The controller depends on this interface
// rather than the concrete client so tests can substitute failures that
// are awkward to produce with a real server.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Result, error)
}

// recordWriter is the slice of corpus.Writer the loop needs. An
// interface so tests can inject append failures, which a healthy
// filesystem will not produce.
type recordWriter interface {
	Path() string
	AppendRecord(number int, url, text string) error
	Close() error
}

// Controller owns one crawl at a time: the frontier, the corpus writer,
// and the breadth-first loop. It reports progress through an event
// channel and accepts a cooperative stop request at any time.
//
// Design decision: One goroutine runs the whole loop. Frontier pops,
// fetches, extraction, and corpus appends happen in strict sequence, so
// the only synchronized pieces are the lifecycle state and the stop flag,
// which Stop touches from the shell's goroutine.
type Controller struct {
	// fetcher retrieves page content.
	fetcher Fetcher

	// logger receives debug detail the event stream omits.
	logger *slog.Logger

	// outputDir is where new corpus files are created.
	outputDir string

	// eventBuffer is the capacity of each run's event channel.
	eventBuffer int

	// frontier is reset and reseeded at the start of every run.
	frontier *frontier.Frontier

	// mu guards state and lastOutputPath.
	mu sync.Mutex

	// state is the lifecycle state, guarded by mu.
	state State

	// stopFlag is set by Stop and polled by the loop at iteration top.
	stopFlag atomic.Bool

	// lastOutputPath is the corpus file of the most recent run in this
	// process. Append mode reuses it.
	lastOutputPath string

	// events carries the current run's event stream. Recreated per run,
	// closed after RunFinished.
	events chan model.Event

	// done is closed when the current run's goroutine has fully exited.
	done chan struct{}

	// now is the clock, replaceable in tests for deterministic filenames.
	now func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithOutputDir sets the directory where corpus files are created.
// Defaults to the current working directory.
func WithOutputDir(dir string) Option {
	return func(c *Controller) {
		c.outputDir = dir
	}
}

// WithEventBuffer sets the event channel capacity.
func WithEventBuffer(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.eventBuffer = n
		}
	}
}

// New creates a Controller in the Idle state.
//
// Design decision: We require an external Fetcher because:
//  1. HTTP configuration (timeout, User-Agent, body cap) belongs to the
//     fetch package
//  2. Tests substitute fetchers that fail in controlled ways
func New(fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher:     fetcher,
		logger:      slog.Default(),
		outputDir:   ".",
		eventBuffer: DefaultEventBuffer,
		frontier:    frontier.New(),
		state:       StateIdle,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start validates cfg, binds a corpus file, seeds the frontier, and
// launches the crawl loop in a new goroutine. It returns ErrInvalidConfig
// (wrapped with detail) without touching the frontier or the filesystem
// when cfg is invalid, and ErrRunInProgress when called before the
// previous run finished.
//
// The ctx bounds the run's fetches. Cancelling it aborts in-flight
// requests, but an orderly shutdown should go through Stop.
func (c *Controller) Start(ctx context.Context, cfg model.RunConfig) error {
	if cfg.SeedURL == "" {
		return fmt.Errorf("%w: seed URL must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxPages <= 0 {
		return fmt.Errorf("%w: max pages must be positive, got %d", ErrInvalidConfig, cfg.MaxPages)
	}

	c.mu.Lock()
	if c.state == StateRunning || c.state == StateStopping {
		c.mu.Unlock()
		return ErrRunInProgress
	}

	path := filepath.Join(c.outputDir, corpus.Filename(c.now()))
	appendMode := false
	if cfg.Append && c.lastOutputPath != "" {
		path = c.lastOutputPath
		appendMode = true
	}

	writer, err := corpus.Open(path, appendMode)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("open corpus file: %w", err)
	}

	c.frontier.Reset()
	c.frontier.Offer(cfg.SeedURL)

	c.stopFlag.Store(false)
	c.events = make(chan model.Event, c.eventBuffer)
	c.done = make(chan struct{})
	c.state = StateRunning
	c.lastOutputPath = path
	c.mu.Unlock()

	c.logger.Debug("run starting",
		"seed", cfg.SeedURL,
		"max_pages", cfg.MaxPages,
		"output", path,
	)

	go c.run(ctx, cfg, writer)

	return nil
}

// Stop requests a cooperative stop of the current run. The loop finishes
// the page in flight and exits at the next iteration top. Stop is
// idempotent and is a no-op unless a run is active.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}
	c.stopFlag.Store(true)
	c.state = StateStopping
}

// Events returns the current run's event stream. The channel is closed
// after the RunFinished event. Valid between Start and the close of
// Done.
func (c *Controller) Events() <-chan model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events
}

// Done returns a channel closed when the current run's goroutine has
// fully exited.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OutputPath returns the corpus file of the most recent run, empty if no
// run has started in this process.
func (c *Controller) OutputPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOutputPath
}

// run executes the breadth-first loop. It owns the frontier and the
// writer for the duration and is the sole producer on the event channel.
func (c *Controller) run(ctx context.Context, cfg model.RunConfig, writer recordWriter) {
	var (
		pages  int
		reason model.Reason
		runErr error
	)

	defer func() {
		if err := writer.Close(); err != nil {
			c.logger.Warn("closing corpus file", "path", writer.Path(), "error", err)
		}

		c.events <- model.RunFinished{PagesScraped: pages, Reason: reason, Err: runErr}

		c.mu.Lock()
		c.state = StateFinished
		c.mu.Unlock()

		close(c.events)
		close(c.done)
	}()

	c.events <- model.RunStarted{OutputPath: writer.Path(), SeedURL: cfg.SeedURL}

	for {
		// Stop wins over every other exit condition: it is checked
		// first so a stop requested during the final page is honored
		// even when the budget is reached on the same iteration.
		if c.stopFlag.Load() {
			c.events <- model.StopRequested{}
			reason = model.ReasonStopped
			return
		}

		if pages >= cfg.MaxPages {
			reason = model.ReasonBudgetReached
			return
		}

		url, ok := c.frontier.Pop()
		if !ok {
			reason = model.ReasonFrontierExhausted
			return
		}

		result, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			kind := model.ErrorKindOther
			var fe *fetch.Error
			if errors.As(err, &fe) {
				kind = fe.Kind
			}
			c.logger.Debug("page fetch failed", "url", url, "kind", kind.String(), "error", err)
			c.events <- model.PageError{URL: url, Kind: kind, Err: err}
			continue
		}

		text := extract.Text(result.Body)
		links := extract.Links(result.Body, result.FinalURL)

		if err := writer.AppendRecord(pages+1, url, text); err != nil {
			reason = model.ReasonWriteFailed
			runErr = err
			return
		}

		pages++
		c.events <- model.PageScraped{PageNumber: pages, URL: url}

		for _, link := range links {
			c.frontier.Offer(link)
		}

		c.logger.Debug("page scraped",
			"number", pages,
			"url", url,
			"links", len(links),
			"pending", c.frontier.Pending(),
		)
	}
}
