// Package instrumentation provides OpenTelemetry instrumentation for the
// tasklistfewer MCP server.
//
// This package enables observability through:
//   - OpenTelemetry metrics for HTTP requests, GitHub API calls, and tool use
//   - Distributed tracing for request flows and API calls
//   - Prometheus metrics export via /metrics endpoint on a dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_sessions: Gauge of active MCP sessions
//
// GitHub API Metrics:
//   - github_api_operations_total: Counter of GitHub API operations by operation, status
//   - github_api_operation_duration_seconds: Histogram of GitHub API operation durations
//
// Tasklist Metrics:
//   - issues_processed_total: Counter of issues processed by result
//   - tasklist_blocks_total: Counter of resolved tasklist blocks by decision
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: tasklistfewer)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordGitHubAPIOperation(ctx, "update", "success", time.Since(start))
//	recorder.RecordToolInvocation(ctx, "tasklist_fix", "success", time.Since(start))
package instrumentation
