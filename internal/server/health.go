package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
)

type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether the bookmark database and the upstream user API are reachable.
// A nil DBPinger means the service runs without a database and the check is skipped.
type HealthChecker struct {
	db         DBPinger
	sourceURL  string
	httpClient *http.Client
	log        *slog.Logger
}

func NewHealthChecker(db DBPinger, sourceURL string, log *slog.Logger) *HealthChecker {
	clientTO := 5
	return &HealthChecker{
		db:         db,
		sourceURL:  sourceURL,
		httpClient: &http.Client{Timeout: time.Duration(clientTO) * time.Second},
		log:        log.With(slog.String("division", "health")),
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	h.log.DebugContext(ctx, "Performing health checks...")

	status := make(map[string]string)
	overallStatus := http.StatusOK

	switch {
	case h.db == nil:
		status["database"] = "disabled"
	case h.db.Ping(ctx) != nil:
		status["database"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(ctx, "Health check failed: DB ping")
	default:
		status["database"] = "ok"
	}

	status["upstream"] = h.checkUpstream(ctx)
	if status["upstream"] != "ok" {
		overallStatus = http.StatusServiceUnavailable
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err := json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(ctx, "Failed to write health check response", sl.Err(err))
	}

	h.log.DebugContext(ctx, "Health checks completed", "status", overallStatus)
}

func (h *HealthChecker) checkUpstream(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.sourceURL, nil)
	if err != nil {
		h.log.WarnContext(ctx, "Health check failed: bad upstream url", "url", h.sourceURL, sl.Err(err))
		return "unreachable"
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.log.WarnContext(ctx, "Health check failed: upstream unreachable", "url", h.sourceURL, sl.Err(err))
		return "unreachable"
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			h.log.WarnContext(ctx, "Failed to close response body", sl.Err(err))
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		h.log.WarnContext(
			ctx,
			"Health check failed: upstream returned error status",
			"url",
			h.sourceURL,
			"status_code",
			resp.StatusCode,
		)
		return "degraded"
	}

	return "ok"
}
