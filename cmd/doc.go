// Package cmd implements the command-line interface for tasklistfewer.
//
// This package provides the following commands:
//   - fix: Remove fenced tasklist blocks from GitHub issue bodies
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The fix command is the default command when no subcommand is specified.
package cmd
