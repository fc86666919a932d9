package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/tasklistfewer/internal/diffview"
	"github.com/teemow/tasklistfewer/internal/github"
	"github.com/teemow/tasklistfewer/internal/logging"
	"github.com/teemow/tasklistfewer/internal/prompt"
	"github.com/teemow/tasklistfewer/internal/tasklist"
)

var githubToken string

// readGithubConfig loads the GitHub token from the GITHUB_TOKEN environment
// variable, falling back to a token file in the user's keys directory.
func readGithubConfig() error {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		githubToken = token
		return nil
	}

	file := filepath.Join(homeDir(), "keys", "github-tasklistfewer.token")
	slurp, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("GITHUB_TOKEN not set and token file unreadable: %w", err)
	}
	token := strings.TrimSpace(string(slurp))
	if token == "" {
		return fmt.Errorf("token file %v is empty", file)
	}
	githubToken = token
	return nil
}

func newFixCmd() *cobra.Command {
	var (
		repo         string
		issueNumbers []int
		state        string
		contextLines int
		interactive  bool
		dryRun       bool
		noColor      bool
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Remove tasklist fences from GitHub issue bodies",
		Long: `Scan GitHub issues for fenced ` + "```[tasklist]" + ` blocks and rewrite their
bodies with the fences removed. The task items inside the fences are kept.

By default all matching issues are rewritten without prompting. With
--interactive each block is shown with surrounding context and can be
accepted or rejected individually. With --dry-run the rewritten bodies
are printed as diffs instead of being saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := github.ValidateRepo(repo); err != nil {
				return err
			}
			if err := github.ValidateState(state); err != nil {
				return err
			}
			if contextLines < 0 {
				return fmt.Errorf("context must not be negative")
			}

			if err := readGithubConfig(); err != nil {
				return fmt.Errorf("failed to read GitHub config: %w", err)
			}

			ctx := context.Background()
			client := github.NewClient(ctx, githubToken)

			opts := fixOptions{
				repo:         repo,
				state:        state,
				contextLines: contextLines,
				interactive:  interactive,
				dryRun:       dryRun,
				color:        !noColor,
			}

			if len(issueNumbers) > 0 {
				issues := make([]github.Issue, 0, len(issueNumbers))
				for _, number := range issueNumbers {
					if number < 1 {
						return fmt.Errorf("invalid issue number %d", number)
					}
					issue, err := client.GetIssue(ctx, repo, number)
					if err != nil {
						return fmt.Errorf("failed to get issue: %w", err)
					}
					issues = append(issues, *issue)
				}
				return fixIssues(ctx, client, issues, opts)
			}

			issues, err := client.ListIssues(ctx, repo, state)
			if err != nil {
				return fmt.Errorf("failed to list issues: %w", err)
			}
			return fixIssues(ctx, client, issues, opts)
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "Repository in 'owner/name' form (required)")
	cmd.Flags().IntSliceVar(&issueNumbers, "issue", nil, "Fix only the given issue numbers (repeatable) instead of scanning the repository")
	cmd.Flags().StringVar(&state, "state", github.StateOpen, "Issue state filter: open, closed or all")
	cmd.Flags().IntVar(&contextLines, "context", tasklist.DefaultContextLines, "Lines of context shown around each block in interactive mode")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Review each block before removing it")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print rewritten bodies as diffs without saving")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored diff output")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

type fixOptions struct {
	repo         string
	state        string
	contextLines int
	interactive  bool
	dryRun       bool
	color        bool

	// decide overrides the stdin prompter in interactive mode.
	decide tasklist.DecideFunc
}

// issueUpdater is the slice of the GitHub client that fixIssues needs to
// persist rewritten bodies.
type issueUpdater interface {
	UpdateIssueBody(ctx context.Context, repo string, number int, body string) error
}

// fixIssues rewrites the given issues one at a time. Issues rewritten before
// an abort keep their new bodies.
func fixIssues(ctx context.Context, client issueUpdater, issues []github.Issue, opts fixOptions) error {
	logger := logging.WithOperation(logging.WithRepo(slog.Default(), opts.repo), "fix")

	mode := tasklist.ModeAutoAccept
	decide := opts.decide
	if opts.interactive {
		mode = tasklist.ModeInteractive
		if decide == nil {
			decide = prompt.New(os.Stdin, os.Stdout, opts.color).Decide
		}
	}
	renderer := diffview.NewRenderer(opts.color)

	changed := 0
	for i := range issues {
		issue := &issues[i]
		if issue.IsPullRequest() {
			continue
		}

		blocks := tasklist.Scan(issue.Body)
		if len(blocks) == 0 {
			continue
		}
		logger.Info("found tasklist blocks", logging.Issue(issue.Number), logging.Blocks(len(blocks)))

		outcome, err := tasklist.Resolve(issue.Body, tasklist.Options{
			Mode:         mode,
			ContextLines: opts.contextLines,
			Decide:       decide,
			Label:        issue.Ref(opts.repo),
		})
		quit := errors.Is(err, tasklist.ErrQuit)
		if err != nil && !quit {
			return fmt.Errorf("failed to resolve %s: %w", issue.Ref(opts.repo), err)
		}

		if outcome.Changed {
			if opts.dryRun {
				fmt.Println(renderer.Render(issue.Body, outcome.NewBody))
			} else {
				if err := client.UpdateIssueBody(ctx, opts.repo, issue.Number, outcome.NewBody); err != nil {
					return fmt.Errorf("failed to update %s: %w", issue.Ref(opts.repo), err)
				}
				logger.Info("issue updated", logging.Issue(issue.Number))
			}
			changed++
		}

		if quit {
			// Issues rewritten so far stay rewritten.
			logger.Info("aborted", logging.Issue(issue.Number))
			return nil
		}
	}

	logger.Info("done", slog.Int("issues_changed", changed))
	return nil
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	// Windows fallback
	return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
}
