package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Identity is the user profile associated with an authenticated session.
// It is always created and destroyed together with the bearer credential.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// DocumentSummary is a read-only projection of an indexed document. The
// backend owns it; the client only fetches and displays snapshots.
type DocumentSummary struct {
	Name           string `json:"name"`
	Chunks         int    `json:"chunks"`
	EmbeddingCount int    `json:"embedding_count"`
}

// Source is a cited excerpt returned alongside an answer. It belongs to
// exactly one ChatTurn and is never persisted on its own.
type Source struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

// ChatTurn is one question/answer/sources record in the chat transcript.
// Turns are immutable once created; the transcript is append-only.
type ChatTurn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Sources   []Source  `json:"sources"`
	Timestamp time.Time `json:"timestamp"`
}
