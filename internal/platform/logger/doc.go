// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package. Loggers built by Setup redact
// credentials from error attributes before they are written.
package logger
