package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestCLI_LoginUploadAskDocs(t *testing.T) {
	// Stub backend
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "t1",
			"token_type":   "bearer",
			"user":         map[string]string{"user_id": "u1", "email": "user@example.com", "name": "User"},
		})
	})
	mux.HandleFunc("/ask", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"answer":  "X is Y",
			"sources": []map[string]string{{"content": "...", "filename": "doc.pdf"}},
		})
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, hdr, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message":  "Uploaded! Processing...",
			"filename": hdr.Filename,
		})
	})
	mux.HandleFunc("/documents", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"docs": []map[string]any{{"name": "doc.pdf", "chunks": 3, "embedding_count": 3}},
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Setenv("ASSISTANT_SERVICE_URL", srv.URL)
	t.Setenv("ASSISTANT_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))

	// Authenticated commands refuse before login.
	root := NewRootCmd()
	root.SetArgs([]string{"ask", "What is X?"})
	if err := root.Execute(); err == nil {
		t.Fatal("ask must refuse while logged out")
	}

	root = NewRootCmd()
	root.SetArgs([]string{"login", "--email", "user@example.com", "--password", "password123"})
	if err := root.Execute(); err != nil {
		t.Fatalf("login cmd failed: %v", err)
	}

	root = NewRootCmd()
	root.SetArgs([]string{"ask", "What is X?"})
	if err := root.Execute(); err != nil {
		t.Fatalf("ask cmd failed: %v", err)
	}

	doc := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(doc, []byte("some notes"), 0o600); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	root = NewRootCmd()
	root.SetArgs([]string{"upload", doc})
	if err := root.Execute(); err != nil {
		t.Fatalf("upload cmd failed: %v", err)
	}

	root = NewRootCmd()
	root.SetArgs([]string{"docs"})
	if err := root.Execute(); err != nil {
		t.Fatalf("docs cmd failed: %v", err)
	}

	root = NewRootCmd()
	root.SetArgs([]string{"logout"})
	if err := root.Execute(); err != nil {
		t.Fatalf("logout cmd failed: %v", err)
	}

	// Session gone again.
	root = NewRootCmd()
	root.SetArgs([]string{"whoami"})
	if err := root.Execute(); err == nil {
		t.Fatal("whoami must refuse after logout")
	}
}
