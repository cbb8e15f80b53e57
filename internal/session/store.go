// Package session owns the authenticated identity and bearer credential.
// It is the only writer of persisted session state; every other component
// reads the credential through the Store's accessor.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nixai/knowledge-assistant/internal/gateway"
	"github.com/nixai/knowledge-assistant/internal/session/storage"
	"github.com/nixai/knowledge-assistant/internal/types"
)

var errMissingIdentity = errors.New("login response carries no user identity")

// State is the session lifecycle position. The machine cycles for the
// life of the process: LoggedOut → LoggingIn → LoggedIn → LoggedOut, with
// LoggingIn → LoginFailed on error.
type State int

const (
	StateLoggedOut State = iota
	StateLoggingIn
	StateLoggedIn
	StateLoginFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateLoggingIn:
		return "logging_in"
	case StateLoggedIn:
		return "logged_in"
	case StateLoginFailed:
		return "login_failed"
	default:
		return "unknown"
	}
}

// LoginCaller is the slice of the gateway the session layer needs.
type LoginCaller interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResponse, error)
}

// Store holds the current session and its durable copy. All state
// transitions happen here; accessors return value copies.
type Store struct {
	gw      LoginCaller
	storage storage.Store
	log     zerolog.Logger

	mu       sync.Mutex
	state    State
	identity types.Identity
	token    string
	lastErr  string
}

// NewStore constructs the Store and attempts a silent restore from
// persisted state. A malformed or half-present record is treated as "no
// session": both values are cleared and the store settles LoggedOut.
func NewStore(gw LoginCaller, st storage.Store, log zerolog.Logger) *Store {
	s := &Store{gw: gw, storage: st, log: log, state: StateLoggedOut}
	s.restore()
	return s
}

// restore reads the persisted record. Parse failures are fully recovered
// here and never surfaced; they only downgrade to LoggedOut.
func (s *Store) restore() {
	rec, err := s.storage.Load()
	if err != nil {
		s.log.Debug().Err(err).Msg("session restore failed, clearing persisted state")
		_ = s.storage.Clear()
		return
	}
	if rec == nil {
		return
	}
	if rec.Token == "" || rec.Identity.UserID == "" {
		// Credential without identity (or vice versa) is no session.
		s.log.Debug().Msg("incomplete persisted session, clearing")
		_ = s.storage.Clear()
		return
	}
	s.state = StateLoggedIn
	s.token = rec.Token
	s.identity = rec.Identity
	s.log.Debug().Str("user_id", rec.Identity.UserID).Msg("session restored")
}

// Login authenticates against the backend and persists the resulting
// credential and identity together. A login already in flight rejects
// the new attempt rather than interleaving.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	if s.state == StateLoggingIn {
		s.mu.Unlock()
		return gateway.NewValidationError("a login attempt is already in progress")
	}
	s.state = StateLoggingIn
	s.lastErr = ""
	s.mu.Unlock()

	lr, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return s.failLogin(err)
	}
	if lr.AccessToken == "" {
		return s.failLogin(gateway.NewParseError("login", errors.New("login response missing access token")))
	}
	id, err := reconcileIdentity(lr)
	if err != nil {
		return s.failLogin(err)
	}

	rec := &storage.Record{Token: lr.AccessToken, Identity: id}
	if err := s.storage.Save(rec); err != nil {
		s.log.Error().Err(err).Msg("persisting session failed")
		return s.failLogin(&gateway.Error{Kind: gateway.KindParse, Message: "could not persist session", Underlying: err})
	}

	s.mu.Lock()
	s.state = StateLoggedIn
	s.token = lr.AccessToken
	s.identity = id
	s.mu.Unlock()
	s.log.Info().Str("user_id", id.UserID).Msg("logged in")
	return nil
}

func (s *Store) failLogin(err error) error {
	s.mu.Lock()
	s.state = StateLoginFailed
	s.lastErr = gateway.MessageFor(err)
	s.token = ""
	s.identity = types.Identity{}
	s.mu.Unlock()
	return err
}

// Logout erases both persisted values and transitions to LoggedOut
// unconditionally. No network call is made; the token is simply
// forgotten.
func (s *Store) Logout() {
	if err := s.storage.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("clearing persisted session failed")
	}
	s.mu.Lock()
	s.state = StateLoggedOut
	s.token = ""
	s.identity = types.Identity{}
	s.lastErr = ""
	s.mu.Unlock()
	s.log.Info().Msg("logged out")
}

// State returns the current session state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LoggedIn reports whether authenticated surfaces may be used.
func (s *Store) LoggedIn() bool { return s.State() == StateLoggedIn }

// Identity returns the authenticated identity, zero outside LoggedIn.
func (s *Store) Identity() types.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoggedIn {
		return types.Identity{}
	}
	return s.identity
}

// Credential returns the bearer token, empty outside LoggedIn.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoggedIn {
		return ""
	}
	return s.token
}

// LastError returns the user-facing message from the most recent failed
// login attempt.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
