// Package docs drives the on-demand fetch of the user's document
// inventory.
package docs

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nixai/knowledge-assistant/internal/gateway"
	"github.com/nixai/knowledge-assistant/internal/types"
)

// Gateway is the slice of the API gateway this controller calls.
type Gateway interface {
	Documents(ctx context.Context, token string) ([]types.DocumentSummary, error)
}

// CredentialSource provides the current bearer token.
type CredentialSource interface {
	Credential() string
}

// Controller holds the last successfully fetched snapshot. A failed
// refresh keeps the previous snapshot displayed; stale-but-valid beats
// empty.
type Controller struct {
	gw    Gateway
	creds CredentialSource
	log   zerolog.Logger

	mu       sync.Mutex
	snapshot []types.DocumentSummary
	loading  bool
}

// NewController builds a DocumentsController with an empty snapshot.
func NewController(gw Gateway, creds CredentialSource, log zerolog.Logger) *Controller {
	return &Controller{gw: gw, creds: creds, log: log}
}

// Refresh replaces the snapshot wholesale with the backend's current
// inventory. Concurrent refreshes are serialized by rejection: a second
// call while one is outstanding fails fast instead of racing. On
// failure the prior snapshot is retained and the error returned for
// optional display.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return gateway.NewValidationError("refresh already in progress")
	}
	c.loading = true
	c.mu.Unlock()

	docs, err := c.gw.Documents(ctx, c.creds.Credential())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.log.Warn().Err(err).Msg("document refresh failed, keeping previous snapshot")
		return err
	}
	c.snapshot = docs
	c.log.Debug().Int("count", len(docs)).Msg("document inventory refreshed")
	return nil
}

// Snapshot returns a copy of the last successful fetch.
func (c *Controller) Snapshot() []types.DocumentSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.DocumentSummary, len(c.snapshot))
	copy(out, c.snapshot)
	return out
}

// Loading reports whether a refresh is outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
