package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nixai/knowledge-assistant/internal/types"
)

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	fs := NewFileStore(path)

	rec := &Record{
		Token:    "t1",
		Identity: types.Identity{UserID: "u1", Email: "user@example.com", Name: "User"},
	}
	if err := fs.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := fs.Load()
	if err != nil || got == nil {
		t.Fatalf("Load: got=%+v err=%v", got, err)
	}
	if got.Token != rec.Token || got.Identity != rec.Identity {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("session file mode: %v", info.Mode().Perm())
	}
}

func TestFileStore_MissingFileIsNoSession(t *testing.T) {
	t.Parallel()
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	rec, err := fs.Load()
	if err != nil || rec != nil {
		t.Fatalf("expected (nil, nil), got (%+v, %v)", rec, err)
	}
}

func TestFileStore_CorruptFileErrors(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestFileStore_Clear(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	fs := NewFileStore(path)
	_ = fs.Save(&Record{Token: "t", Identity: types.Identity{UserID: "u"}})

	if err := fs.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if rec, _ := fs.Load(); rec != nil {
		t.Fatalf("record survived clear: %+v", rec)
	}
	// Clearing twice is fine.
	if err := fs.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestMemStore_CopiesRecords(t *testing.T) {
	t.Parallel()
	ms := NewMemStore()
	rec := &Record{Token: "t", Identity: types.Identity{UserID: "u"}}
	_ = ms.Save(rec)
	rec.Token = "mutated"

	got, _ := ms.Load()
	if got.Token != "t" {
		t.Fatalf("store aliased caller memory: %+v", got)
	}
}
