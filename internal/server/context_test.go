package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/tasklistfewer/internal/github"
	"github.com/teemow/tasklistfewer/internal/instrumentation"
)

func TestNewServerContext(t *testing.T) {
	sc := NewServerContext(context.Background(), "test-token")
	require.NotNil(t, sc)

	assert.True(t, sc.HasToken())
	assert.False(t, sc.IsShutdown())
}

func TestServerContextHasToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected bool
	}{
		{
			name:     "with token",
			token:    "ghp_example",
			expected: true,
		},
		{
			name:     "without token",
			token:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewServerContext(context.Background(), tt.token)
			assert.Equal(t, tt.expected, sc.HasToken())
		})
	}
}

func TestServerContextGitHubClient(t *testing.T) {
	sc := NewServerContext(context.Background(), "test-token")

	client, err := sc.GitHubClient()
	require.NoError(t, err)
	require.NotNil(t, client)

	// Subsequent calls return the same client.
	again, err := sc.GitHubClient()
	require.NoError(t, err)
	assert.Same(t, client, again)
}

func TestServerContextGitHubClientWithoutToken(t *testing.T) {
	sc := NewServerContext(context.Background(), "")

	client, err := sc.GitHubClient()
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestServerContextSetGitHubClient(t *testing.T) {
	sc := NewServerContext(context.Background(), "test-token")

	injected := &github.Client{}
	sc.SetGitHubClient(injected)

	client, err := sc.GitHubClient()
	require.NoError(t, err)
	assert.Same(t, injected, client)
}

func TestServerContextMetrics(t *testing.T) {
	sc := NewServerContext(context.Background(), "test-token")
	assert.Nil(t, sc.Metrics())

	metrics := &instrumentation.Metrics{}
	sc.SetMetrics(metrics)
	assert.Same(t, metrics, sc.Metrics())
}

func TestServerContextShutdown(t *testing.T) {
	sc := NewServerContext(context.Background(), "test-token")
	require.False(t, sc.IsShutdown())

	sc.Shutdown()
	assert.True(t, sc.IsShutdown())

	// GitHub client creation is refused after shutdown.
	_, err := sc.GitHubClient()
	assert.Error(t, err)
}
