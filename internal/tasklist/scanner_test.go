package tasklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		outer []string
		inner []string
	}{
		{
			name: "no blocks",
			doc:  "just some text\nwith lines\n",
		},
		{
			name:  "single block",
			doc:   "```[tasklist]\n- [ ] a\n- [ ] b\n```\n",
			outer: []string{"```[tasklist]\n- [ ] a\n- [ ] b\n```\n"},
			inner: []string{"- [ ] a\n- [ ] b\n"},
		},
		{
			name:  "block surrounded by prose",
			doc:   "intro\n```[tasklist]\n- [ ] a\n```\noutro\n",
			outer: []string{"```[tasklist]\n- [ ] a\n```\n"},
			inner: []string{"- [ ] a\n"},
		},
		{
			name:  "empty body",
			doc:   "```[tasklist]\n```\n",
			outer: []string{"```[tasklist]\n```\n"},
			inner: []string{""},
		},
		{
			name:  "body with blank lines kept verbatim",
			doc:   "```[tasklist]\n- [ ] a\n\n- [ ] b\n```\n",
			outer: []string{"```[tasklist]\n- [ ] a\n\n- [ ] b\n```\n"},
			inner: []string{"- [ ] a\n\n- [ ] b\n"},
		},
		{
			name:  "indented fences",
			doc:   "  ```[tasklist]\t\n- [ ] a\n\t```  \n",
			outer: []string{"  ```[tasklist]\t\n- [ ] a\n\t```  \n"},
			inner: []string{"- [ ] a\n"},
		},
		{
			name:  "crlf line endings",
			doc:   "```[tasklist]\r\n- [ ] a\r\n```\r\n",
			outer: []string{"```[tasklist]\r\n- [ ] a\r\n```\r\n"},
			inner: []string{"- [ ] a\r\n"},
		},
		{
			name:  "missing final newline",
			doc:   "```[tasklist]\n- [ ] a\n```",
			outer: []string{"```[tasklist]\n- [ ] a\n```"},
			inner: []string{"- [ ] a\n"},
		},
		{
			name: "two blocks in document order",
			doc:  "```[tasklist]\n- [ ] a\n```\nmiddle\n```[tasklist]\n- [ ] b\n```\n",
			outer: []string{
				"```[tasklist]\n- [ ] a\n```\n",
				"```[tasklist]\n- [ ] b\n```\n",
			},
			inner: []string{"- [ ] a\n", "- [ ] b\n"},
		},
		{
			name: "shortest match stops at first closing fence",
			doc:  "```[tasklist]\n- [ ] a\n```\nnot part of the block\n```\n",
			outer: []string{
				"```[tasklist]\n- [ ] a\n```\n",
			},
			inner: []string{"- [ ] a\n"},
		},
		{
			name: "fence preceded by text on the same line does not open",
			doc:  "see ```[tasklist]\n- [ ] a\n```\n",
		},
		{
			name: "unterminated fence is not a block",
			doc:  "```[tasklist]\n- [ ] a\n",
		},
		{
			name: "tag is case sensitive",
			doc:  "```[Tasklist]\n- [ ] a\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Scan(tt.doc)
			require.Len(t, blocks, len(tt.outer))
			for i, b := range blocks {
				assert.Equal(t, tt.outer[i], b.Outer)
				assert.Equal(t, tt.inner[i], b.Inner)
				assert.Equal(t, tt.outer[i], tt.doc[b.Start:b.End], "span offsets should address the outer text")
			}
		})
	}
}

func TestScanDuplicateBlocksAreDistinctOccurrences(t *testing.T) {
	doc := "```[tasklist]\n- [ ] same\n```\nbetween\n```[tasklist]\n- [ ] same\n```\n"

	blocks := Scan(doc)
	require.Len(t, blocks, 2)

	assert.Equal(t, blocks[0].Outer, blocks[1].Outer, "content is identical")
	assert.NotEqual(t, blocks[0].Start, blocks[1].Start, "positions must differ")
	assert.Less(t, blocks[0].End, blocks[1].Start, "spans must not overlap")
}

func TestContextWindow(t *testing.T) {
	doc := "one\ntwo\nthree\n```[tasklist]\n- [ ] a\n```\nfour\nfive\nsix\n"
	blocks := Scan(doc)
	require.Len(t, blocks, 1)

	tests := []struct {
		name   string
		n      int
		before string
		after  string
	}{
		{
			name:   "zero lines",
			n:      0,
			before: "",
			after:  "",
		},
		{
			name:   "two lines each side",
			n:      2,
			before: "two\nthree\n",
			after:  "four\nfive\n",
		},
		{
			name:   "clamped at document boundaries",
			n:      10,
			before: "one\ntwo\nthree\n",
			after:  "four\nfive\nsix\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ContextWindow(doc, blocks[0], tt.n)
			assert.Equal(t, tt.before, w.Before)
			assert.Equal(t, tt.after, w.After)
			assert.Equal(t, tt.before+blocks[0].Outer+tt.after, w.WithBlock())
			assert.Equal(t, tt.before+blocks[0].Inner+tt.after, w.WithoutBlock())
		})
	}
}

func TestContextWindowAtDocumentTop(t *testing.T) {
	doc := "```[tasklist]\n- [ ] a\n```\nafter1\nafter2\nafter3\n"
	blocks := Scan(doc)
	require.Len(t, blocks, 1)

	w := ContextWindow(doc, blocks[0], 2)
	assert.Empty(t, w.Before, "no lines exist before the document start")
	assert.Equal(t, "after1\nafter2\n", w.After)
}

func TestContextWindowLastLineWithoutNewline(t *testing.T) {
	doc := "```[tasklist]\n- [ ] a\n```\ntail"
	blocks := Scan(doc)
	require.Len(t, blocks, 1)

	w := ContextWindow(doc, blocks[0], 5)
	assert.Equal(t, "tail", w.After)
}
