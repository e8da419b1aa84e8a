// Package log provides a redacting slog.Handler for the crawler.
//
// Per-site configuration can carry cookies and authorization headers, and
// workers log the requests they make. RedactHandler sits between the
// application and the real handler and masks credential-bearing attribute
// values so they never reach the log sink.
package log
