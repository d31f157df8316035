package crawl

import "errors"

// Controller errors returned by Start before a run begins. Once the run
// goroutine is launched, failures surface as events, not errors.
//
// Design decision: We use package-level sentinel errors so the shell can
// use errors.Is() to distinguish operator mistakes (invalid config) from
// lifecycle misuse (starting while running) and phrase its messages
// accordingly.
var (
	// ErrInvalidConfig is returned when the run configuration fails
	// validation. The frontier and the corpus file are untouched.
	ErrInvalidConfig = errors.New("invalid run configuration")

	// ErrRunInProgress is returned when Start is called while a previous
	// run has not yet finished.
	ErrRunInProgress = errors.New("a run is already in progress")
)
