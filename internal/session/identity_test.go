package session

import (
	"testing"

	"github.com/nixai/knowledge-assistant/internal/gateway"
	"github.com/nixai/knowledge-assistant/internal/types"
)

func TestReconcileIdentity(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		in      gateway.LoginResponse
		want    types.Identity
		wantErr bool
	}{
		{
			name: "nested only",
			in:   gateway.LoginResponse{User: &gateway.UserPayload{UserID: "u1", Email: "e1", Name: "n1"}},
			want: types.Identity{UserID: "u1", Email: "e1", Name: "n1"},
		},
		{
			name: "flat only",
			in:   gateway.LoginResponse{UserID: "u2", Email: "e2", Name: "n2"},
			want: types.Identity{UserID: "u2", Email: "e2", Name: "n2"},
		},
		{
			name: "nested wins over flat",
			in: gateway.LoginResponse{
				User:   &gateway.UserPayload{UserID: "u1", Email: "e1", Name: "n1"},
				UserID: "u2", Email: "e2", Name: "n2",
			},
			want: types.Identity{UserID: "u1", Email: "e1", Name: "n1"},
		},
		{
			name: "flat fills nested gaps",
			in: gateway.LoginResponse{
				User: &gateway.UserPayload{UserID: "u1"},
				Name: "n2", Email: "e2",
			},
			want: types.Identity{UserID: "u1", Email: "e2", Name: "n2"},
		},
		{
			name:    "no identity at all",
			in:      gateway.LoginResponse{AccessToken: "t"},
			wantErr: true,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got, err := reconcileIdentity(&c.in)
			if c.wantErr {
				if !gateway.IsParse(err) {
					t.Fatalf("expected parse error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("reconcile: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %+v want %+v", got, c.want)
			}
		})
	}
}
