package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com"

// Client talks to the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client authenticated with the given personal access
// token. An empty token yields an unauthenticated client.
func NewClient(ctx context.Context, token string) *Client {
	httpClient := http.DefaultClient
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, src)
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
}

// ValidateRepo checks that repo has the "owner/name" form.
func ValidateRepo(repo string) error {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}
	return nil
}

// ListIssues lists the repository's issues matching the given state filter.
// Pull requests, which the API mixes into the listing, are filtered out.
func (c *Client) ListIssues(ctx context.Context, repo, state string) ([]Issue, error) {
	if err := ValidateRepo(repo); err != nil {
		return nil, err
	}
	if err := ValidateState(state); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/issues?state=%s&per_page=100", c.baseURL, repo, state)
	var all []Issue
	if err := c.do(ctx, http.MethodGet, url, nil, &all); err != nil {
		return nil, fmt.Errorf("failed to list issues for %s: %w", repo, err)
	}

	issues := make([]Issue, 0, len(all))
	for _, issue := range all {
		if issue.IsPullRequest() {
			continue
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// GetIssue fetches a single issue by number.
func (c *Client) GetIssue(ctx context.Context, repo string, number int) (*Issue, error) {
	if err := ValidateRepo(repo); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, repo, number)
	var issue Issue
	if err := c.do(ctx, http.MethodGet, url, nil, &issue); err != nil {
		return nil, fmt.Errorf("failed to get issue %s#%d: %w", repo, number, err)
	}
	return &issue, nil
}

// UpdateIssueBody replaces the issue's body text.
func (c *Client) UpdateIssueBody(ctx context.Context, repo string, number int, body string) error {
	if err := ValidateRepo(repo); err != nil {
		return err
	}

	payload, err := json.Marshal(struct {
		Body string `json:"body"`
	}{Body: body})
	if err != nil {
		return fmt.Errorf("failed to encode issue body: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, repo, number)
	if err := c.do(ctx, http.MethodPatch, url, payload, nil); err != nil {
		return fmt.Errorf("failed to update issue %s#%d: %w", repo, number, err)
	}
	return nil
}

// do performs one API request and decodes the JSON response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, url string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s not found (check the repository name and token permissions)", url)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("fetching %v, http status %s", url, res.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
