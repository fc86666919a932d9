package github

import "fmt"

// Issue state filters accepted by ListIssues.
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

// Issue is the subset of a GitHub issue that tasklistfewer works with.
type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	State  string `json:"state"`

	// PullRequest is set by the API when the "issue" is actually a pull
	// request; the issues listing endpoint returns both.
	PullRequest *struct {
		URL string `json:"url"`
	} `json:"pull_request,omitempty"`
}

// IsPullRequest reports whether this issue is really a pull request.
func (i *Issue) IsPullRequest() bool {
	return i.PullRequest != nil
}

// Ref returns the "owner/repo#number" form used in prompts and logs.
func (i *Issue) Ref(repo string) string {
	return fmt.Sprintf("%s#%d", repo, i.Number)
}

// ValidateState checks that state is one of the accepted filter values.
func ValidateState(state string) error {
	switch state {
	case StateOpen, StateClosed, StateAll:
		return nil
	}
	return fmt.Errorf("invalid issue state %q, must be one of: open, closed, all", state)
}
