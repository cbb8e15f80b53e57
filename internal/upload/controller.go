// Package upload drives the file-selection → submit → acknowledgment
// flow for one document at a time.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nixai/knowledge-assistant/internal/gateway"
)

// Phase is the position in the single-slot upload state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFileSelected
	PhaseUploading
	PhaseSucceeded
	PhaseFailed
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFileSelected:
		return "file_selected"
	case PhaseUploading:
		return "uploading"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Gateway is the slice of the API gateway this controller calls.
type Gateway interface {
	Upload(ctx context.Context, token, filename string, r io.Reader) (*gateway.UploadAck, error)
}

// CredentialSource provides the current bearer token.
type CredentialSource interface {
	Credential() string
}

// Controller holds the single upload slot. Only one upload may be in
// flight; a second Submit while uploading is rejected, and SelectFile is
// likewise refused mid-flight so the slot cannot be corrupted.
type Controller struct {
	gw    Gateway
	creds CredentialSource
	log   zerolog.Logger

	mu      sync.Mutex
	phase   Phase
	name    string
	data    []byte
	message string
}

// NewController builds an UploadController in the Idle phase.
func NewController(gw Gateway, creds CredentialSource, log zerolog.Logger) *Controller {
	return &Controller{gw: gw, creds: creds, log: log, phase: PhaseIdle}
}

// SelectFile stages a file for upload, replacing any prior selection and
// clearing the prior result message. Refused while an upload is in
// flight. The backend enforces the PDF/TXT restriction; the server is
// the authority on accepted types.
func (c *Controller) SelectFile(name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseUploading {
		return gateway.NewValidationError("an upload is already in progress")
	}
	c.name = name
	c.data = data
	c.message = ""
	c.phase = PhaseFileSelected
	return nil
}

// Submit sends the staged file as a multipart request. Success records
// an acknowledgment message and clears the selection; "success" means
// the backend accepted and queued the document, not that it is indexed.
// Failure records the message but keeps the selection so the user can
// retry without reselecting.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.phase == PhaseUploading {
		c.mu.Unlock()
		return gateway.NewValidationError("an upload is already in progress")
	}
	if c.name == "" {
		c.mu.Unlock()
		return gateway.NewValidationError("no file selected")
	}
	name, data := c.name, c.data
	c.phase = PhaseUploading
	c.message = ""
	c.mu.Unlock()

	ack, err := c.gw.Upload(ctx, c.creds.Credential(), name, bytes.NewReader(data))

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Str("filename", name).Msg("upload failed")
		c.phase = PhaseFailed
		c.message = gateway.MessageFor(err)
		return err
	}

	c.phase = PhaseSucceeded
	c.message = fmt.Sprintf("%s (%s)", ack.Message, ack.Filename)
	c.name = ""
	c.data = nil
	c.log.Info().Str("filename", ack.Filename).Msg("upload accepted")
	return nil
}

// Reset returns the controller to Idle, dropping any selection and
// result message.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseUploading {
		return
	}
	c.phase = PhaseIdle
	c.name = ""
	c.data = nil
	c.message = ""
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// SelectedFile returns the staged filename, empty when nothing is
// selected.
func (c *Controller) SelectedFile() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// ResultMessage returns the message from the most recent submit.
func (c *Controller) ResultMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}
