// Package logging provides structured logging utilities for the
// tasklistfewer application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Token sanitization
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithRepo(slog.Default(), "owner/repo")
//	logger.Info("issue updated",
//	    logging.Issue(42),
//	    logging.Status("success"))
//
// # Security Considerations
//
// GitHub tokens are never logged directly; use SanitizeToken when a log
// entry has to acknowledge that a token exists.
package logging
