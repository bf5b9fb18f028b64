// Package logging provides structured logging for loxwatch.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the entire application.
//
// # Features
//
//   - Text output for interactive use (human-readable, default)
//   - JSON output when records are shipped to a log collector
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # text, json
//	  output: "stderr"   # stderr, stdout
//
// Logs default to stderr so they never interleave with the interactive
// menu and control listings printed on stdout.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("structure fetched", "controls", 142)
//	logger.Error("state read failed", "error", err)
//
// # Security
//
// Never log miniserver credentials, broker passwords, or tokens.
package logging
