package diffview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIdenticalTextsIsEmpty(t *testing.T) {
	r := NewRenderer(false)
	assert.Empty(t, r.Render("same\ntext\n", "same\ntext\n"))
}

func TestRenderRemovedFences(t *testing.T) {
	r := NewRenderer(false)

	oldText := "intro\n```[tasklist]\n- [ ] a\n```\noutro\n"
	newText := "intro\n- [ ] a\noutro\n"

	out := r.Render(oldText, newText)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.Contains(t, lines, " intro")
	assert.Contains(t, lines, "-```[tasklist]")
	assert.Contains(t, lines, "-```")
	assert.Contains(t, lines, " - [ ] a")
	assert.Contains(t, lines, " outro")
	assert.NotContains(t, out, "+- [ ] a", "unchanged checklist line must not show as added")
}

func TestRenderPrefixes(t *testing.T) {
	tests := []struct {
		name    string
		oldText string
		newText string
		want    []string
	}{
		{
			name:    "pure removal",
			oldText: "keep\ndrop\n",
			newText: "keep\n",
			want:    []string{" keep", "-drop"},
		},
		{
			name:    "pure addition",
			oldText: "keep\n",
			newText: "keep\nnew\n",
			want:    []string{" keep", "+new"},
		},
		{
			name:    "replacement",
			oldText: "old line\n",
			newText: "new line\n",
			want:    []string{"-old line", "+new line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewRenderer(false).Render(tt.oldText, tt.newText)
			got := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderColorWrapsChangedLinesOnly(t *testing.T) {
	out := NewRenderer(true).Render("keep\ndrop\n", "keep\nnew\n")
	require.NotEmpty(t, out)

	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if strings.HasPrefix(line, " ") {
			assert.NotContains(t, line, "\x1b[", "context lines stay unstyled")
		}
	}
}
