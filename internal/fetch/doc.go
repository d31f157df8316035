// Package fetch retrieves raw page content for single URLs over HTTP.
//
// The fetcher is deliberately minimal: one GET per URL, a hard
// per-request timeout, a capped body read, and no retries. Failures are
// never raised past the caller as panics or untyped errors; every failure
// path returns a *Error carrying one of the model.ErrorKind
// classifications (timeout, connection failure, non-2xx status, other).
//
// Design decision: We leave retry and backoff out because a failed fetch
// is defined as a terminal outcome for that URL within a run. Bounded
// retry would be a reasonable hardening point but changes observable
// behavior (event counts, page ordering), so it belongs behind an
// explicit decision, not here.
package fetch
