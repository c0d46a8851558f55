// Package server exposes the dashboard over HTTP: server-rendered pages, a JSON API and a
// separate monitoring listener for metrics and health checks.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Run serves srv until ctx is cancelled and then shuts it down gracefully.
func Run(ctx context.Context, log *slog.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		log.InfoContext(ctx, "HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server on %s failed: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil { //nolint:contextcheck // parent ctx is already done
		return fmt.Errorf("failed to shut down http server on %s: %w", srv.Addr, err)
	}
	log.InfoContext(ctx, "HTTP server stopped", "address", srv.Addr)

	return nil
}

// NewHTTPServer wraps handler in an http.Server with sane timeouts.
func NewHTTPServer(address string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// NewMonitoringHandler serves /metrics from reg and /healthz from a HealthChecker.
func NewMonitoringHandler(log *slog.Logger, reg *prometheus.Registry, db DBPinger, sourceURL string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          reg,
	}))
	mux.Handle("/healthz", NewHealthChecker(db, sourceURL, log))

	return mux
}

// StartMonitoringServer runs the monitoring listener on port until ctx is cancelled.
func StartMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	db DBPinger,
	port int,
	sourceURL string,
) {
	log = log.With(slog.String("division", "monitoring"))
	srv := NewHTTPServer(":"+strconv.Itoa(port), NewMonitoringHandler(log, reg, db, sourceURL))

	if err := Run(ctx, log, srv); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", sl.Err(err))
	}
}
