package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can render different guidance.
type Kind int

const (
	// KindAPI: backend reachable, returned a non-success status with a message.
	KindAPI Kind = iota

	// KindNetwork: transport-level failure (DNS, connection refused).
	KindNetwork

	// KindTimeout: the request exceeded the gateway's deadline.
	KindTimeout

	// KindValidation: a client-side precondition failed; no request was sent.
	KindValidation

	// KindParse: the peer responded with a body the client cannot decode.
	KindParse
)

// String returns a human-readable representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindValidation:
		return "validation"
	case KindParse:
		return "parse"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error wraps a failure with classification metadata. Message is always
// safe to show to the user as-is; Underlying carries the raw cause for
// logs and error-chain inspection.
type Error struct {
	Kind       Kind
	Status     int // HTTP status code (0 for non-HTTP failures)
	Message    string
	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error { return e.Underlying }

// Fixed user-facing phrases for failures that carry no backend message.
const (
	networkMessage = "cannot reach backend"
	timeoutMessage = "request timed out"
)

// NewAPIError reports a non-success HTTP status. msg is the backend's
// detail field or the per-call fallback phrase.
func NewAPIError(operation string, status int, msg string) *Error {
	return &Error{
		Kind:       KindAPI,
		Status:     status,
		Message:    msg,
		Underlying: fmt.Errorf("%s failed: HTTP %d", operation, status),
	}
}

// NewNetworkError reports a transport-level failure.
func NewNetworkError(operation string, err error) *Error {
	return &Error{
		Kind:       KindNetwork,
		Message:    networkMessage,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// NewTimeoutError reports a request that exceeded its deadline.
func NewTimeoutError(operation string, err error) *Error {
	return &Error{
		Kind:       KindTimeout,
		Message:    timeoutMessage,
		Underlying: fmt.Errorf("%s timed out: %w", operation, err),
	}
}

// NewValidationError reports a client-side precondition failure.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Underlying: errors.New(msg)}
}

// NewParseError reports an undecodable success response or malformed
// persisted state.
func NewParseError(operation string, err error) *Error {
	return &Error{
		Kind:       KindParse,
		Message:    "unexpected response from backend",
		Underlying: fmt.Errorf("%s parse error: %w", operation, err),
	}
}

func isKind(err error, k Kind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == k
}

// IsAPI reports whether err is a backend-returned error.
func IsAPI(err error) bool { return isKind(err, KindAPI) }

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsTimeout reports whether err is a deadline failure.
func IsTimeout(err error) bool { return isKind(err, KindTimeout) }

// IsValidation reports whether err is a client-side precondition failure.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsParse reports whether err is a decode failure.
func IsParse(err error) bool { return isKind(err, KindParse) }

// MessageFor extracts the user-facing message from a classified error,
// falling back to a generic phrase for anything unclassified.
func MessageFor(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return "something went wrong"
}
