package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/tasklistfewer/internal/instrumentation"
	"github.com/teemow/tasklistfewer/internal/logging"
	"github.com/teemow/tasklistfewer/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with tracing and metrics.
// Every invocation runs inside a tool span; invocation count and duration
// are recorded when the server context carries a metrics recorder.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := logging.WithTool(slog.Default(), toolName)

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		ctx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		result, err := handler(ctx, request)
		duration := time.Since(start)

		// Tool errors are reported through result.IsError, not err
		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				instrumentation.SetSpanError(span, err)
			}
		} else {
			instrumentation.SetSpanSuccess(span)
		}

		if metrics := sc.Metrics(); metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
		}

		logger.Debug("tool invocation",
			logging.Status(status),
			slog.Duration(logging.KeyDuration, duration),
			slog.String("trace_id", instrumentation.GetTraceID(ctx)),
			logging.Err(err))

		return result, err
	}
}

// InstrumentedToolHandlerWithOperation is like InstrumentedToolHandler but
// also records the underlying GitHub API operation for service-level
// observability. The tool's duration stands in for the API call's.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithOperation("my_tool", instrumentation.OperationList, sc, handler))
func InstrumentedToolHandlerWithOperation(
	toolName string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wrapped := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}

		if metrics := sc.Metrics(); metrics != nil {
			metrics.RecordGitHubAPIOperation(ctx, operation, status, duration)
		}

		return result, err
	}
	return InstrumentedToolHandler(toolName, sc, wrapped)
}
