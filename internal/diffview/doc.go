// Package diffview renders line-based diffs between two versions of an
// issue body for terminal display.
//
// The diff itself comes from sergi/go-diff's diffmatchpatch, run in
// line mode so whole lines are compared instead of characters. Output is
// the familiar unified style: removed lines prefixed with "-", added lines
// with "+", unchanged lines with a space. Colorized output styles removals
// red and additions green via lipgloss.
package diffview
