package gateway

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		pred func(error) bool
	}{
		{NewAPIError("ask", 500, "boom"), IsAPI},
		{NewNetworkError("ask", errors.New("refused")), IsNetwork},
		{NewTimeoutError("ask", errors.New("deadline")), IsTimeout},
		{NewValidationError("blank"), IsValidation},
		{NewParseError("ask", errors.New("bad json")), IsParse},
	}
	for _, c := range cases {
		if !c.pred(c.err) {
			t.Errorf("predicate rejected %v", c.err)
		}
	}
	if IsAPI(errors.New("plain")) {
		t.Error("plain error classified as API")
	}
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("context: %w", NewTimeoutError("docs", errors.New("deadline")))
	if !IsTimeout(err) {
		t.Fatalf("wrapped timeout not detected: %v", err)
	}
}

func TestMessageFor(t *testing.T) {
	t.Parallel()
	if got := MessageFor(NewAPIError("ask", 400, "Only PDF/TXT")); got != "Only PDF/TXT" {
		t.Fatalf("api message: %q", got)
	}
	if got := MessageFor(errors.New("internal")); got != "something went wrong" {
		t.Fatalf("generic message: %q", got)
	}
}

func TestErrorString(t *testing.T) {
	t.Parallel()
	e := NewAPIError("upload", 400, "Only PDF/TXT")
	if got := e.Error(); got != "[api] HTTP 400: Only PDF/TXT" {
		t.Fatalf("Error(): %q", got)
	}
	if e.Unwrap() == nil {
		t.Fatal("expected underlying error")
	}
}
