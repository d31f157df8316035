package log

import (
	"context"
	"io"
	"log/slog"
	"unicode/utf8"
)

// MaxAttrLen is the maximum length, in bytes, of a string attribute value
// before it is truncated. Crawled pages routinely carry URLs with long
// query strings and extracted text running to megabytes; log records must
// stay readable regardless of what the crawl encounters.
const MaxAttrLen = 512

// truncationMark is appended to values that were cut short.
const truncationMark = "...(truncated)"

// TruncateHandler wraps an slog.Handler to cap oversized string attributes.
// It intercepts log records and shortens string values that exceed
// MaxAttrLen before passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites can log page content without worrying about size
type TruncateHandler struct {
	// handler is the underlying slog handler that receives capped records.
	handler slog.Handler

	// maxLen is the attribute value cap in bytes.
	maxLen int
}

// NewTruncateHandler creates a new TruncateHandler wrapping the given handler.
// String attributes longer than MaxAttrLen are truncated before being passed
// to the underlying handler. If handler is nil, the returned TruncateHandler
// will use slog.Default().Handler().
func NewTruncateHandler(handler slog.Handler) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &TruncateHandler{handler: handler, maxLen: MaxAttrLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle caps the record's attributes and passes it to the underlying handler.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	capped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		capped.AddAttrs(h.capAttr(a))
		return true
	})

	return h.handler.Handle(ctx, capped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are capped before being added.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cappedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cappedAttrs[i] = h.capAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(cappedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// capAttr caps a single attribute, recursively handling groups.
func (h *TruncateHandler) capAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		cappedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			cappedAttrs[i] = h.capAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cappedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if len(strVal) > h.maxLen {
			return slog.String(a.Key, truncate(strVal, h.maxLen))
		}
	}

	return a
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence,
// then appends the truncation mark.
func truncate(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + truncationMark
}

// NewLogger creates a new slog.Logger with attribute truncation.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)

	return slog.New(NewTruncateHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with attribute truncation that
// outputs JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)

	return slog.New(NewTruncateHandler(jsonHandler))
}
