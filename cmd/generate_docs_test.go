package cmd

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGenerateToolsMarkdown(t *testing.T) {
	tools := []mcp.Tool{
		{
			Name:        "tasklist_scan",
			Description: "List issues that contain tasklist blocks",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"repo": map[string]interface{}{
						"type":        "string",
						"description": "Repository in 'owner/name' form",
					},
					"state": map[string]interface{}{
						"type":        "string",
						"description": "Issue state filter",
					},
				},
				Required: []string{"repo"},
			},
		},
	}

	markdown := generateToolsMarkdown(tools)

	for _, want := range []string{
		"# MCP Tools Reference",
		"### tasklist_scan",
		"List issues that contain tasklist blocks",
		"`repo` (string, required)",
		"`state` (string, optional)",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestGenerateToolsMarkdownSortsTools(t *testing.T) {
	tools := []mcp.Tool{
		{Name: "tasklist_scan"},
		{Name: "tasklist_fix"},
		{Name: "tasklist_preview"},
	}

	markdown := generateToolsMarkdown(tools)

	fixPos := strings.Index(markdown, "### tasklist_fix")
	previewPos := strings.Index(markdown, "### tasklist_preview")
	scanPos := strings.Index(markdown, "### tasklist_scan")

	if fixPos == -1 || previewPos == -1 || scanPos == -1 {
		t.Fatal("Expected all tools in the generated markdown")
	}
	if !(fixPos < previewPos && previewPos < scanPos) {
		t.Error("Expected tools to be sorted by name")
	}
}
