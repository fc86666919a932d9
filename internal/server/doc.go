// Package server provides the MCP server context and operational HTTP
// endpoints for the tasklistfewer application.
//
// # Key Components
//
// ServerContext owns the GitHub client and telemetry recorder shared by all
// MCP tool handlers. The client is created lazily from the configured token
// so that a server can start without GitHub credentials and report a useful
// error on first tool use instead.
//
// HealthChecker serves /healthz and /readyz endpoints for the HTTP
// transport.
//
// MetricsServer exposes Prometheus metrics on a dedicated port, isolating
// operational metrics from the MCP traffic.
package server
