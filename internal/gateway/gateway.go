// Package gateway is the single chokepoint for all backend HTTP traffic.
// No other package constructs requests: controllers call the typed
// endpoint methods here and receive either decoded results or a
// classified *Error. The gateway holds no session state; authenticated
// calls take the bearer token explicitly.
package gateway

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Gateway issues requests against one backend base URL.
type Gateway struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New constructs a Gateway for the given base URL.
// Additional options can be provided via functional arguments.
func New(baseURL string, log zerolog.Logger, opts ...Option) (*Gateway, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	g := &Gateway{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// BaseURL returns the configured backend base URL.
func (g *Gateway) BaseURL() string { return g.baseURL }

// send executes req, records metrics, and classifies every failure.
// On success it returns the raw response body for the endpoint to decode.
func (g *Gateway) send(req *http.Request, operation, fallback string) ([]byte, error) {
	req.Header.Set("X-Request-Id", uuid.NewString())
	requestsTotal.WithLabelValues(operation).Inc()

	resp, err := g.http.Do(req)
	if err != nil {
		requestFailuresTotal.WithLabelValues(operation).Inc()
		if isTimeoutErr(err) {
			g.log.Warn().Err(err).Str("operation", operation).Msg("request timed out")
			return nil, NewTimeoutError(operation, err)
		}
		g.log.Warn().Err(err).Str("operation", operation).Msg("request failed")
		return nil, NewNetworkError(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		requestFailuresTotal.WithLabelValues(operation).Inc()
		return nil, NewNetworkError(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		requestFailuresTotal.WithLabelValues(operation).Inc()
		msg := errorDetail(body, fallback)
		g.log.Debug().Int("status", resp.StatusCode).Str("operation", operation).Str("detail", msg).Msg("backend returned error")
		return nil, NewAPIError(operation, resp.StatusCode, msg)
	}
	return body, nil
}

// isTimeoutErr distinguishes deadline failures from other transport
// errors so callers can render "request timed out" guidance.
func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
