// Package testutil holds in-memory repositories and session helpers for service and
// handler tests.
package testutil

import (
	"context"

	"github.com/go-chi/jwtauth/v5"

	"github.com/willykudo/pionix/internal/domain/user"
)

var tokenAuth = jwtauth.New("HS256", []byte("testutil-secret"), nil)

// WithSession returns ctx carrying verified claims for u, as the jwtauth verifier would.
func WithSession(ctx context.Context, u user.User) context.Context {
	token, _, err := tokenAuth.Encode(map[string]any{
		"user_id":  u.ID,
		"username": u.Username,
		"name":     u.Name,
		"role":     string(u.Role),
		"type":     "access",
	})
	if err != nil {
		panic(err)
	}
	return jwtauth.NewContext(ctx, token, nil)
}

// NoopTx runs fn directly.
type NoopTx struct{}

func (NoopTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
