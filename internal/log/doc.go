// Package log provides logging functionality tuned for crawl output,
// built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized attribute values (page text, long URLs)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Attribute Truncation
//
// A crawler's natural log attributes are hostile to log readers: extracted
// page text can run to megabytes and URLs can carry kilobytes of query
// string. The TruncateHandler caps every string attribute at MaxAttrLen
// bytes so a single noisy page cannot flood the log, even in verbose mode.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("page scraped",
//	    "url", finalURL,
//	    "text", pageText, // capped at MaxAttrLen
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
