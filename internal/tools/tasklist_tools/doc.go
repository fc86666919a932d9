// Package tasklist_tools provides MCP tools for cleaning up tasklist
// fences in GitHub issues.
//
// This package implements MCP (Model Context Protocol) tools that wrap the
// tasklist scanner and the GitHub client, letting AI assistants find and
// remove obsolete ```[tasklist] fenced blocks from issue bodies.
//
// # Available Tools
//
// Read-only:
//   - tasklist_scan: List issues in a repository that contain tasklist blocks
//   - tasklist_preview: Show the rewritten body of a single issue without saving
//
// Write (only registered when the server runs with --yolo):
//   - tasklist_fix: Rewrite one or more issue bodies, removing all tasklist fences
//
// # Authentication
//
// The tools use the GitHub token the server was started with (GITHUB_TOKEN
// or the token file). If no token is configured, tools return an error
// explaining how to provide one.
package tasklist_tools
