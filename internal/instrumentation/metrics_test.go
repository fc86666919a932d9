package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics builds a Metrics recorder backed by a manual reader so the
// recorded data can be collected and inspected.
func newTestMetrics(t *testing.T, detailedLabels bool) (*Metrics, *metric.ManualReader) {
	t.Helper()

	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	m, err := NewMetrics(provider.Meter("test"), detailedLabels)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *metric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func metricNames(rm metricdata.ResourceMetrics) map[string]bool {
	names := make(map[string]bool)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}
	return names
}

func TestRecordGitHubAPIOperation(t *testing.T) {
	m, reader := newTestMetrics(t, false)

	m.RecordGitHubAPIOperation(context.Background(), OperationUpdate, StatusSuccess, 100*time.Millisecond)

	names := metricNames(collect(t, reader))
	assert.True(t, names["github_api_operations_total"])
	assert.True(t, names["github_api_operation_duration_seconds"])
}

func TestRecordIssueProcessedAndBlocks(t *testing.T) {
	m, reader := newTestMetrics(t, false)

	m.RecordIssueProcessed(context.Background(), "owner/repo", ResultChanged)
	m.RecordIssueProcessed(context.Background(), "owner/repo", ResultUnchanged)
	m.RecordBlockResolved(context.Background(), DecisionAccepted)
	m.RecordBlockResolved(context.Background(), DecisionRejected)

	names := metricNames(collect(t, reader))
	assert.True(t, names["issues_processed_total"])
	assert.True(t, names["tasklist_blocks_total"])
}

func TestRecordToolInvocation(t *testing.T) {
	m, reader := newTestMetrics(t, false)

	m.RecordToolInvocation(context.Background(), "tasklist_fix", StatusSuccess, 50*time.Millisecond)

	names := metricNames(collect(t, reader))
	assert.True(t, names["mcp_tool_invocations_total"])
	assert.True(t, names["mcp_tool_duration_seconds"])
}

func TestRecordHTTPRequestAndSessions(t *testing.T) {
	m, reader := newTestMetrics(t, false)

	m.RecordHTTPRequest(context.Background(), "POST", "/mcp", 200, 10*time.Millisecond)
	m.IncrementActiveSessions(context.Background())
	m.DecrementActiveSessions(context.Background())

	names := metricNames(collect(t, reader))
	assert.True(t, names["http_requests_total"])
	assert.True(t, names["http_request_duration_seconds"])
	assert.True(t, names["active_sessions"])
}

func TestRepoLabelOnlyWithDetailedLabels(t *testing.T) {
	findRepoAttr := func(rm metricdata.ResourceMetrics) bool {
		for _, sm := range rm.ScopeMetrics {
			for _, met := range sm.Metrics {
				sum, ok := met.Data.(metricdata.Sum[int64])
				if !ok {
					continue
				}
				for _, dp := range sum.DataPoints {
					if _, found := dp.Attributes.Value(attribute.Key(attrRepo)); found {
						return true
					}
				}
			}
		}
		return false
	}

	// Default: repo label suppressed.
	m, reader := newTestMetrics(t, false)
	m.RecordIssueProcessed(context.Background(), "owner/repo", ResultChanged)
	assert.False(t, findRepoAttr(collect(t, reader)))

	// Detailed labels: repo label present.
	m, reader = newTestMetrics(t, true)
	m.RecordIssueProcessed(context.Background(), "owner/repo", ResultChanged)
	assert.True(t, findRepoAttr(collect(t, reader)))
}
