package gateway

// Functional options that configure the Gateway during construction.
// Keeping them in a standalone file makes it easy to discover all
// available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Gateway during construction in New.
// Options must be deterministic and side-effect free.
type Option func(*Gateway) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP
// request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(g *Gateway) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		g.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client entirely. Useful in
// tests that need a preconfigured transport.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) error {
		if c == nil {
			return fmt.Errorf("http client must not be nil")
		}
		g.http = c
		return nil
	}
}

// WithDebugLogging wraps the gateway's transport so each request and
// response is dumped to the logger when enabled is true.
// Do not enable this option in production environments as dumps include
// headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(g *Gateway) error {
		if enabled {
			base := g.http.Transport
			if base == nil {
				base = http.DefaultTransport
			}
			g.http.Transport = &debugTransport{base: base, log: g.log}
		}
		return nil
	}
}
