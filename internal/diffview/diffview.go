package diffview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Renderer formats old/new text pairs as line diffs.
type Renderer struct {
	color bool
}

// NewRenderer creates a Renderer. With color enabled, removed lines are
// styled red and added lines green.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// Render returns the line diff between oldText and newText. Identical
// inputs yield an empty string.
func (r *Renderer) Render(oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	var b strings.Builder
	for _, d := range lineDiffs(oldText, newText) {
		prefix, style := " ", lipgloss.Style{}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, style = "-", removedStyle
		case diffmatchpatch.DiffInsert:
			prefix, style = "+", addedStyle
		}
		for _, line := range splitLines(d.Text) {
			out := prefix + line
			if r.color && prefix != " " {
				out = style.Render(out)
			}
			b.WriteString(out)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// lineDiffs computes a line-granularity diff. The line-to-rune mapping
// trick keeps diffmatchpatch from splitting inside lines.
func lineDiffs(oldText, newText string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// splitLines splits diff text into display lines, dropping the trailing
// empty element a final newline would otherwise produce.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}
