package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/teemow/tasklistfewer/internal/github"
	"github.com/teemow/tasklistfewer/internal/instrumentation"
)

// ServerContext holds the shared state for the MCP server.
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	githubToken  string
	githubClient *github.Client
	metrics      *instrumentation.Metrics
	mu           sync.RWMutex
	shutdown     bool
}

// NewServerContext creates a new server context. The GitHub token may be
// empty; in that case the client works unauthenticated and write operations
// will fail at the API.
func NewServerContext(ctx context.Context, githubToken string) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:         shutdownCtx,
		cancel:      cancel,
		githubToken: githubToken,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// GitHubClient returns the GitHub client, creating it on first use.
func (sc *ServerContext) GitHubClient() (*github.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil, fmt.Errorf("server context is shut down")
	}
	if sc.githubClient == nil && sc.githubToken == "" {
		return nil, fmt.Errorf("no GitHub token configured")
	}
	if sc.githubClient == nil {
		sc.githubClient = github.NewClient(sc.ctx, sc.githubToken)
	}
	return sc.githubClient, nil
}

// SetGitHubClient sets the GitHub client, mainly for tests.
func (sc *ServerContext) SetGitHubClient(client *github.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.githubClient = client
}

// HasToken reports whether a GitHub token was configured.
func (sc *ServerContext) HasToken() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.githubToken != ""
}

// SetMetrics sets the metrics recorder used by tool handlers.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
