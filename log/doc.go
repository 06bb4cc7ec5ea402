// Package log provides structured logging for bempline built on [log/slog].
//
// A [Logger] wraps a *slog.Logger with a Trace level, attribute-only call
// signatures, and a zero value that silently discards output. The package
// also maintains a default logger configured through [Config], which the
// CLI wires to its --log-* flags before commands run.
//
// Three output styles are supported: JSON, plain text, and colorized text
// (the default when pretty printing is enabled).
package log
