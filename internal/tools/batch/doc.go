// Package batch provides common utilities for batch operations across MCP tools.
//
// This package includes helpers for:
//   - Parsing parameters that accept both single issue numbers and arrays
//   - Formatting batch results in a consistent structure
//   - Handling partial failures in batch operations
package batch
