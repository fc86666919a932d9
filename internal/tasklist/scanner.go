package tasklist

import (
	"regexp"
	"strings"
)

// DefaultContextLines is the number of surrounding lines shown with a block
// when the caller does not configure a window size.
const DefaultContextLines = 5

// blockPattern matches one fenced tasklist block. The open fence must sit on
// its own line (optional horizontal whitespace around the marker), the body
// is matched shortest-first so a later real closing fence is never swallowed,
// and the close fence must likewise fill its own line. Both \n and \r\n line
// endings are accepted. The match consumes the newline after the closing
// fence so that substituting the inner content leaves no empty line behind.
var blockPattern = regexp.MustCompile("(?ms)^[ \t]*```\\[tasklist\\][ \t]*\r?\n(.*?)^[ \t]*```[ \t]*\r?(?:\n|\\z)")

// Block is a single tasklist block occurrence in a document.
//
// Outer is the full fenced span including both fence lines; Inner is the
// content strictly between them, kept verbatim (including its trailing
// newline, if any). Start and End are byte offsets of Outer in the original
// document; they are the block's identity, so byte-identical blocks at
// different positions are distinct occurrences.
type Block struct {
	Outer string
	Inner string
	Start int
	End   int
}

// Scan returns every tasklist block in doc, left to right, non-overlapping.
// A document without tasklist fences yields nil.
func Scan(doc string) []Block {
	matches := blockPattern.FindAllStringSubmatchIndex(doc, -1)
	if len(matches) == 0 {
		return nil
	}

	blocks := make([]Block, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, Block{
			Outer: doc[m[0]:m[1]],
			Inner: doc[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		})
	}
	return blocks
}

// Window is the surrounding text shown alongside a block for review. Before
// and After hold up to n whole lines on either side of the block's outer
// span, fewer at document boundaries. It is display-only and never affects
// which text gets edited.
type Window struct {
	Before string
	Block  Block
	After  string
}

// WithBlock returns the window text with the block left in place.
func (w Window) WithBlock() string {
	return w.Before + w.Block.Outer + w.After
}

// WithoutBlock returns the window text with the fences stripped.
func (w Window) WithoutBlock() string {
	return w.Before + w.Block.Inner + w.After
}

// ContextWindow collects up to n full lines before and after the block's
// occurrence in doc. n <= 0 means no surrounding context.
func ContextWindow(doc string, b Block, n int) Window {
	w := Window{Block: b}
	if n <= 0 {
		return w
	}
	w.Before = trailingLines(doc[:b.Start], n)
	w.After = leadingLines(doc[b.End:], n)
	return w
}

// trailingLines returns the last n lines of s, trailing newlines included.
func trailingLines(s string, n int) string {
	if s == "" {
		return ""
	}
	// The block starts at a line boundary, so s ends with a newline (or is
	// the document start). Walk back n newlines from there.
	end := len(s)
	if strings.HasSuffix(s, "\n") {
		end--
	}
	pos := end
	for i := 0; i < n; i++ {
		idx := strings.LastIndexByte(s[:pos], '\n')
		if idx < 0 {
			return s
		}
		pos = idx
	}
	return s[pos+1:]
}

// leadingLines returns the first n lines of s, newlines included. The final
// line of a document may have no trailing newline and still counts.
func leadingLines(s string, n int) string {
	pos := 0
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(s[pos:], '\n')
		if idx < 0 {
			return s
		}
		pos += idx + 1
	}
	return s[:pos]
}
