// Package logger provides structured logging for medqueue.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, level control, global default
//   - context.go: context-carried logger and request IDs
//   - redact.go: masking of credentials before they reach the output
//
// The CLI logs to stderr so that command output on stdout stays machine-readable.
package logger
