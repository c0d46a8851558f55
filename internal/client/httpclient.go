package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
)

// CreateHTTPClient initializes an HTTP client for the upstream user API.
// Every request carries the service User-Agent and is bounded by timeout.
func CreateHTTPClient(log *slog.Logger, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{next: http.DefaultTransport, userAgent: models.UserAgent},
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

// RoundTrip sets the User-Agent header on a clone of the request.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	return t.next.RoundTrip(req)
}
