package docs

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nixai/knowledge-assistant/internal/gateway"
	"github.com/nixai/knowledge-assistant/internal/types"
)

type staticCreds struct{}

func (staticCreds) Credential() string { return "tok" }

type stubGateway struct {
	mu      sync.Mutex
	calls   int
	docs    []types.DocumentSummary
	err     error
	entered chan struct{}
	block   chan struct{}
}

func (s *stubGateway) Documents(ctx context.Context, token string) ([]types.DocumentSummary, error) {
	s.mu.Lock()
	s.calls++
	if s.entered != nil && s.calls == 1 {
		close(s.entered)
	}
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	return s.docs, s.err
}

func newTestController(gw Gateway) *Controller {
	return NewController(gw, staticCreds{}, zerolog.Nop())
}

func TestRefresh_ReplacesSnapshot(t *testing.T) {
	t.Parallel()
	gw := &stubGateway{docs: []types.DocumentSummary{{Name: "a.pdf", Chunks: 3, EmbeddingCount: 3}}}
	c := newTestController(gw)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	snap := c.Snapshot()
	if len(snap) != 1 || snap[0].Name != "a.pdf" || snap[0].Chunks != 3 {
		t.Fatalf("snapshot: %+v", snap)
	}
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()
	gw := &stubGateway{docs: []types.DocumentSummary{{Name: "a.pdf", Chunks: 3, EmbeddingCount: 3}}}
	c := newTestController(gw)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	gw.mu.Lock()
	gw.docs = nil
	gw.err = gateway.NewNetworkError("documents", context.DeadlineExceeded)
	gw.mu.Unlock()

	if err := c.Refresh(context.Background()); !gateway.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	snap := c.Snapshot()
	if len(snap) != 1 || snap[0].Name != "a.pdf" {
		t.Fatalf("stale snapshot lost: %+v", snap)
	}
	if c.Loading() {
		t.Fatal("loading flag stuck after failure")
	}
}

func TestRefresh_ConcurrentCallRejected(t *testing.T) {
	t.Parallel()
	entered := make(chan struct{})
	block := make(chan struct{})
	gw := &stubGateway{docs: []types.DocumentSummary{}, entered: entered, block: block}
	c := newTestController(gw)

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()
	<-entered

	if !c.Loading() {
		t.Fatal("Loading flag not set mid-flight")
	}
	if err := c.Refresh(context.Background()); !gateway.IsValidation(err) {
		t.Fatalf("expected rejection, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.calls != 1 {
		t.Fatalf("gateway reached %d times", gw.calls)
	}
}

func TestSnapshot_Isolation(t *testing.T) {
	t.Parallel()
	gw := &stubGateway{docs: []types.DocumentSummary{{Name: "a.pdf"}}}
	c := newTestController(gw)
	_ = c.Refresh(context.Background())

	snap := c.Snapshot()
	snap[0].Name = "mutated"
	if c.Snapshot()[0].Name != "a.pdf" {
		t.Fatal("Snapshot returned aliased memory")
	}
}
