// Package storage is the persistence port for session state. The token
// and the identity live in one record so they are written and cleared
// together, which keeps the credential/identity pairing invariant at
// the storage layer rather than hoping callers maintain it.
package storage

import (
	"github.com/nixai/knowledge-assistant/internal/types"
)

// Record is the durable session state: the bearer token and the identity
// it was issued for. Both-or-neither: a Record never persists with only
// one of the two populated.
type Record struct {
	Token    string         `json:"token"`
	Identity types.Identity `json:"identity"`
}

// Store loads, saves, and clears the persisted session record.
// Load returns (nil, nil) when no record has ever been saved.
type Store interface {
	Load() (*Record, error)
	Save(*Record) error
	Clear() error
}
