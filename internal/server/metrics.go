package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teemow/tasklistfewer/internal/instrumentation"
	"github.com/teemow/tasklistfewer/internal/logging"
)

// DefaultMetricsAddr is the default address for the metrics server.
const DefaultMetricsAddr = ":9090"

// MetricsServerConfig holds configuration for the metrics HTTP server.
type MetricsServerConfig struct {
	// Addr is the address to listen on (e.g. ":9090")
	Addr string
	// Enabled indicates whether the metrics server should start
	Enabled bool
	// InstrumentationProvider provides the Prometheus registry
	InstrumentationProvider *instrumentation.Provider
	// HealthChecker provides health check endpoints (optional)
	HealthChecker *HealthChecker
}

// MetricsServer serves Prometheus metrics and health endpoints over HTTP.
type MetricsServer struct {
	config MetricsServerConfig
	server *http.Server
	logger logging.Logger
}

// NewMetricsServer creates a new metrics server with the given configuration.
func NewMetricsServer(config MetricsServerConfig, logger logging.Logger) *MetricsServer {
	if config.Addr == "" {
		config.Addr = DefaultMetricsAddr
	}
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &MetricsServer{
		config: config,
		logger: logger,
	}
}

// Start starts the metrics server in a goroutine. It returns immediately.
// If the server is disabled, Start is a no-op.
func (m *MetricsServer) Start(ctx context.Context) error {
	return m.StartWithReadySignal(ctx, nil)
}

// StartWithReadySignal starts the metrics server and closes the ready
// channel once the listener is about to accept connections. The server
// shuts down when ctx is cancelled.
func (m *MetricsServer) StartWithReadySignal(ctx context.Context, ready chan<- struct{}) error {
	if !m.config.Enabled {
		if ready != nil {
			close(ready)
		}
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	if m.config.HealthChecker != nil {
		m.config.HealthChecker.RegisterHealthEndpoints(mux)
	}

	m.server = &http.Server{
		Addr:              m.config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		m.logger.Info("starting metrics server", slog.String("addr", m.config.Addr))
		if ready != nil {
			close(ready)
		}
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("metrics server failed", logging.Err(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.Shutdown(shutdownCtx); err != nil {
			m.logger.Error("metrics server shutdown failed", logging.Err(err))
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	if err := m.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down metrics server: %w", err)
	}
	return nil
}

// Addr returns the address the metrics server is configured to listen on.
func (m *MetricsServer) Addr() string {
	return m.config.Addr
}
