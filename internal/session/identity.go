package session

import (
	"github.com/nixai/knowledge-assistant/internal/gateway"
	"github.com/nixai/knowledge-assistant/internal/types"
)

// reconcileIdentity normalizes the two tolerated login response layouts
// into the canonical Identity. Precedence: a field nested under "user"
// wins over the flat sibling of the same name; flat fields only fill
// gaps the nested layout left empty.
//
// A response from which no user_id can be recovered is rejected rather
// than silently producing a half-empty identity.
func reconcileIdentity(lr *gateway.LoginResponse) (types.Identity, error) {
	var id types.Identity
	if lr.User != nil {
		id.UserID = lr.User.UserID
		id.Email = lr.User.Email
		id.Name = lr.User.Name
	}
	if id.UserID == "" {
		id.UserID = lr.UserID
	}
	if id.Email == "" {
		id.Email = lr.Email
	}
	if id.Name == "" {
		id.Name = lr.Name
	}

	if id.UserID == "" {
		return types.Identity{}, gateway.NewParseError("login", errMissingIdentity)
	}
	return id, nil
}
