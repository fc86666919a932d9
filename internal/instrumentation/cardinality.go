package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with repository names.

// ReduceRepoLabel reduces a full "owner/name" repository to its owner.
// An organization usually has few owners but many repositories, so the
// owner keeps the label set bounded.
//
// Example:
//
//	ReduceRepoLabel("golang/go")   // "golang"
//	ReduceRepoLabel("invalid")     // "unknown"
//	ReduceRepoLabel("")            // "unknown"
func ReduceRepoLabel(repo string) string {
	if repo == "" {
		return "unknown"
	}

	parts := strings.Split(repo, "/")
	if len(parts) == 2 && parts[0] != "" {
		return parts[0]
	}

	return "unknown"
}

// Common operation types for GitHub API metrics.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationUpdate = "update"
)
