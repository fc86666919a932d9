package tasklist_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/tasklistfewer/internal/diffview"
	"github.com/teemow/tasklistfewer/internal/github"
	"github.com/teemow/tasklistfewer/internal/instrumentation"
	"github.com/teemow/tasklistfewer/internal/server"
	"github.com/teemow/tasklistfewer/internal/tasklist"
	"github.com/teemow/tasklistfewer/internal/tools/batch"
	"github.com/teemow/tasklistfewer/internal/tools/common"
)

// getRepoFromArgs extracts and validates the repo argument ("owner/name").
func getRepoFromArgs(args map[string]interface{}) (string, error) {
	repo, ok := args["repo"].(string)
	if !ok || repo == "" {
		return "", fmt.Errorf("repo is required")
	}
	if err := github.ValidateRepo(repo); err != nil {
		return "", err
	}
	return repo, nil
}

// getStateFromArgs extracts the issue state filter, defaulting to "open".
func getStateFromArgs(args map[string]interface{}) (string, error) {
	state := github.StateOpen
	if stateVal, ok := args["state"].(string); ok && stateVal != "" {
		state = stateVal
	}
	if err := github.ValidateState(state); err != nil {
		return "", err
	}
	return state, nil
}

// getIssueNumberFromArgs extracts the issue number argument. JSON numbers
// arrive as float64.
func getIssueNumberFromArgs(args map[string]interface{}) (int, error) {
	switch v := args["issue"].(type) {
	case float64:
		if v < 1 {
			return 0, fmt.Errorf("issue must be a positive number")
		}
		return int(v), nil
	case int:
		if v < 1 {
			return 0, fmt.Errorf("issue must be a positive number")
		}
		return v, nil
	default:
		return 0, fmt.Errorf("issue is required")
	}
}

// getGitHubClient retrieves the GitHub client from the server context.
func getGitHubClient(sc *server.ServerContext) (*github.Client, error) {
	if !sc.HasToken() {
		return nil, fmt.Errorf(`GitHub token not configured.

Start the server with the GITHUB_TOKEN environment variable set, or place
a token in ~/keys/github-tasklistfewer.token.`)
	}
	return sc.GitHubClient()
}

// scanResult summarizes the tasklist blocks found in one issue.
type scanResult struct {
	Issue  int    `json:"issue"`
	Title  string `json:"title"`
	Blocks int    `json:"blocks"`
}

// previewResult describes the rewrite of a single issue body.
type previewResult struct {
	Issue   int    `json:"issue"`
	Blocks  int    `json:"blocks"`
	Changed bool   `json:"changed"`
	Diff    string `json:"diff,omitempty"`
	NewBody string `json:"newBody"`
}

// RegisterTasklistTools registers all tasklist-related tools with the MCP server
func RegisterTasklistTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerScanTool(s, sc)
	registerPreviewTool(s, sc)

	// The fix tool rewrites issue bodies, so it is only available when the
	// server was started with write access.
	if !readOnly {
		registerFixTool(s, sc)
	}

	return nil
}

// registerScanTool registers the read-only repository scan tool.
func registerScanTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	scanTool := mcp.NewTool("tasklist_scan",
		mcp.WithDescription("List issues in a GitHub repository that contain fenced [tasklist] blocks"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository in 'owner/name' form"),
		),
		mcp.WithString("state",
			mcp.Description("Issue state filter: 'open', 'closed' or 'all' (default: 'open')"),
		),
	)

	s.AddTool(scanTool, common.InstrumentedToolHandlerWithOperation("tasklist_scan", instrumentation.OperationList, sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		repo, err := getRepoFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		state, err := getStateFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getGitHubClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		issues, err := client.ListIssues(ctx, repo, state)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list issues: %v", err)), nil
		}

		results := []scanResult{}
		for i := range issues {
			blocks := tasklist.Scan(issues[i].Body)
			if len(blocks) == 0 {
				continue
			}
			results = append(results, scanResult{
				Issue:  issues[i].Number,
				Title:  issues[i].Title,
				Blocks: len(blocks),
			})
		}

		out, _ := json.MarshalIndent(results, "", "  ")
		return mcp.NewToolResultText(string(out)), nil
	}))
}

// registerPreviewTool registers the read-only single-issue preview tool.
func registerPreviewTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	previewTool := mcp.NewTool("tasklist_preview",
		mcp.WithDescription("Show how an issue body would look with all tasklist fences removed, without saving"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository in 'owner/name' form"),
		),
		mcp.WithNumber("issue",
			mcp.Required(),
			mcp.Description("Issue number"),
		),
	)

	s.AddTool(previewTool, common.InstrumentedToolHandlerWithOperation("tasklist_preview", instrumentation.OperationGet, sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		repo, err := getRepoFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		number, err := getIssueNumberFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := rewriteIssue(ctx, sc, repo, number, false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(out)), nil
	}))
}

// registerFixTool registers the write tool that persists the rewrite.
func registerFixTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	fixTool := mcp.NewTool("tasklist_fix",
		mcp.WithDescription("Remove all tasklist fences from one or more issue bodies and save the result"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository in 'owner/name' form"),
		),
		mcp.WithNumber("issues",
			mcp.Required(),
			mcp.Description("Issue number or array of issue numbers to fix"),
		),
	)

	s.AddTool(fixTool, common.InstrumentedToolHandlerWithOperation("tasklist_fix", instrumentation.OperationUpdate, sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		repo, err := getRepoFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		numbers, err := batch.ParseNumberOrArray(args["issues"], "issues")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results := batch.ProcessBatch(numbers, func(number int) (string, error) {
			result, err := rewriteIssue(ctx, sc, repo, number, true)
			if err != nil {
				return "", err
			}
			if !result.Changed {
				return "no tasklist blocks, nothing to do", nil
			}
			return fmt.Sprintf("updated, %d tasklist block(s) removed", result.Blocks), nil
		})

		return mcp.NewToolResultText(batch.FormatResults(results)), nil
	}))
}

// rewriteIssue fetches an issue, removes all tasklist fences from its body
// and, when persist is set, saves the new body back to GitHub.
func rewriteIssue(ctx context.Context, sc *server.ServerContext, repo string, number int, persist bool) (*previewResult, error) {
	client, err := getGitHubClient(sc)
	if err != nil {
		return nil, err
	}

	getCtx, getSpan := instrumentation.StartGitHubAPISpan(ctx, instrumentation.OperationGet, repo)
	issue, err := client.GetIssue(getCtx, repo, number)
	if err != nil {
		instrumentation.SetSpanError(getSpan, err)
		getSpan.End()
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}
	instrumentation.SetSpanSuccess(getSpan)
	getSpan.End()
	if issue.IsPullRequest() {
		return nil, fmt.Errorf("%s is a pull request, not an issue", issue.Ref(repo))
	}

	blocks := tasklist.Scan(issue.Body)
	outcome, err := tasklist.Resolve(issue.Body, tasklist.Options{
		Mode: tasklist.ModeAutoAccept,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite issue body: %w", err)
	}

	result := &previewResult{
		Issue:   issue.Number,
		Blocks:  len(blocks),
		Changed: outcome.Changed,
		NewBody: outcome.NewBody,
	}
	if outcome.Changed {
		result.Diff = diffview.NewRenderer(false).Render(issue.Body, outcome.NewBody)
	}

	if persist && outcome.Changed {
		updateCtx, updateSpan := instrumentation.StartGitHubAPISpan(ctx, instrumentation.OperationUpdate, repo)
		err := client.UpdateIssueBody(updateCtx, repo, issue.Number, outcome.NewBody)
		if err != nil {
			instrumentation.SetSpanError(updateSpan, err)
			updateSpan.End()
			return nil, fmt.Errorf("failed to update issue: %w", err)
		}
		instrumentation.SetSpanSuccess(updateSpan)
		updateSpan.End()

		if m := sc.Metrics(); m != nil {
			m.RecordIssueProcessed(ctx, instrumentation.ReduceRepoLabel(repo), instrumentation.ResultChanged)
			for range blocks {
				m.RecordBlockResolved(ctx, instrumentation.DecisionAccepted)
			}
		}
	}

	return result, nil
}
