// Package chat drives the ask-question → await-answer → append flow and
// owns the session transcript.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nixai/knowledge-assistant/internal/gateway"
	"github.com/nixai/knowledge-assistant/internal/types"
)

// defaultAnswer fills in when the backend returns a 2xx with no answer
// field at all.
const defaultAnswer = "No answer received"

// Gateway is the slice of the API gateway this controller calls.
type Gateway interface {
	Ask(ctx context.Context, token, question string) (*gateway.AskResult, error)
	ChatHistory(ctx context.Context, token string) ([]types.ChatTurn, error)
}

// CredentialSource provides the current bearer token.
type CredentialSource interface {
	Credential() string
}

// Controller owns the ordered transcript and the input buffer. Exactly
// one Ask may be in flight; a racing second call is rejected so a
// double-submit can never append duplicate turns.
type Controller struct {
	gw    Gateway
	creds CredentialSource
	log   zerolog.Logger
	now   func() time.Time

	mu         sync.Mutex
	transcript []types.ChatTurn
	input      string
	asking     bool
	loading    bool
}

// NewController builds a ChatController. The transcript starts empty;
// call LoadHistory to populate it from the backend.
func NewController(gw Gateway, creds CredentialSource, log zerolog.Logger) *Controller {
	return &Controller{gw: gw, creds: creds, log: log, now: time.Now}
}

// LoadHistory replaces the transcript wholesale with the backend's
// stored sequence (last fetch wins). Failure is non-fatal: it is logged
// and the transcript is left as it was, so the chat surface stays
// usable.
func (c *Controller) LoadHistory(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	history, err := c.gw.ChatHistory(ctx, c.creds.Credential())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load chat history")
		return
	}
	c.transcript = history
	c.log.Debug().Int("turns", len(history)).Msg("chat history loaded")
}

// Ask sends the trimmed question and appends exactly one ChatTurn on
// success. Blank input and re-entrant calls are rejected before any
// network traffic. On failure the transcript and the input buffer are
// both left untouched so the question is not lost.
func (c *Controller) Ask(ctx context.Context, question string) (*types.ChatTurn, error) {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return nil, gateway.NewValidationError("question must not be blank")
	}

	c.mu.Lock()
	if c.asking {
		c.mu.Unlock()
		return nil, gateway.NewValidationError("a question is already in flight")
	}
	c.asking = true
	c.mu.Unlock()

	res, err := c.gw.Ask(ctx, c.creds.Credential(), trimmed)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.asking = false
	if err != nil {
		c.log.Warn().Err(err).Msg("ask failed")
		return nil, err
	}

	answer := res.Answer
	if answer == "" {
		answer = defaultAnswer
	}
	sources := res.Sources
	if sources == nil {
		sources = []types.Source{}
	}
	turn := types.ChatTurn{
		Question:  trimmed,
		Answer:    answer,
		Sources:   sources,
		Timestamp: c.now(),
	}
	c.transcript = append(c.transcript, turn)
	c.input = ""
	return &turn, nil
}

// Transcript returns a copy of the ordered transcript; insertion order
// is chronological order.
func (c *Controller) Transcript() []types.ChatTurn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.ChatTurn, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Input returns the current input buffer.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SetInput replaces the input buffer.
func (c *Controller) SetInput(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = q
}

// Asking reports whether an Ask is outstanding.
func (c *Controller) Asking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.asking
}

// LoadingHistory reports whether a LoadHistory is outstanding.
func (c *Controller) LoadingHistory() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
