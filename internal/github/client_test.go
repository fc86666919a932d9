package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(context.Background(), "")
	client.baseURL = srv.URL
	return client
}

func TestValidateRepo(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		wantErr bool
	}{
		{name: "valid", repo: "golang/go"},
		{name: "missing owner", repo: "/go", wantErr: true},
		{name: "missing name", repo: "golang/", wantErr: true},
		{name: "no slash", repo: "golang", wantErr: true},
		{name: "too many parts", repo: "a/b/c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepo(tt.repo)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateState(t *testing.T) {
	assert.NoError(t, ValidateState(StateOpen))
	assert.NoError(t, ValidateState(StateClosed))
	assert.NoError(t, ValidateState(StateAll))
	assert.Error(t, ValidateState("reopened"))
}

func TestListIssuesFiltersPullRequests(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/issues", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"number": 1, "title": "an issue", "body": "text", "state": "open"},
			{"number": 2, "title": "a pr", "body": "", "state": "open",
			 "pull_request": {"url": "https://api.github.com/repos/owner/repo/pulls/2"}},
			{"number": 3, "title": "another issue", "body": "", "state": "open"}
		]`))
	})

	issues, err := client.ListIssues(context.Background(), "owner/repo", StateOpen)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, 1, issues[0].Number)
	assert.Equal(t, 3, issues[1].Number)
}

func TestListIssuesRejectsBadInput(t *testing.T) {
	client := NewClient(context.Background(), "")

	_, err := client.ListIssues(context.Background(), "not-a-repo", StateOpen)
	assert.Error(t, err)

	_, err = client.ListIssues(context.Background(), "owner/repo", "bogus")
	assert.Error(t, err)
}

func TestGetIssue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/issues/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"number": 42, "title": "t", "body": "hello", "state": "open"}`))
	})

	issue, err := client.GetIssue(context.Background(), "owner/repo", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, issue.Number)
	assert.Equal(t, "hello", issue.Body)
	assert.False(t, issue.IsPullRequest())
	assert.Equal(t, "owner/repo#42", issue.Ref("owner/repo"))
}

func TestGetIssueNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetIssue(context.Background(), "owner/repo", 9999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateIssueBody(t *testing.T) {
	var got struct {
		Body string `json:"body"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/owner/repo/issues/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"number": 7}`))
	})

	err := client.UpdateIssueBody(context.Background(), "owner/repo", 7, "- [ ] a\n")
	require.NoError(t, err)
	assert.Equal(t, "- [ ] a\n", got.Body)
}

func TestUpdateIssueBodyServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.UpdateIssueBody(context.Background(), "owner/repo", 7, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http status")
}
