package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/textcrawl/textcrawl/internal/model"
)

// Error is the classified failure of a single fetch. Callers use the Kind
// to decide how to report the failure; the run-level policy (swallow and
// continue) is the same for every kind.
type Error struct {
	// Kind classifies the failure.
	Kind model.ErrorKind

	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status, set only when Kind is
	// model.ErrorKindHTTPStatus.
	StatusCode int

	// cause is the underlying error, nil for status errors.
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == model.ErrorKindHTTPStatus {
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.StatusCode)
	}
	if e.cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// classify maps a transport error to its ErrorKind.
//
// Timeouts are checked before connection failures because a timed-out
// dial surfaces as both a net.OpError and a timeout; the timeout is the
// more useful classification.
func classify(err error) model.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.ErrorKindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.ErrorKindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return model.ErrorKindConnectionFailed
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return model.ErrorKindConnectionFailed
	}

	return model.ErrorKindOther
}
