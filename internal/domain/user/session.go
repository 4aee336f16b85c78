package user

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// Session is the authenticated caller, read once from the verified access token.
type Session struct {
	UserID   string
	Username string
	Name     string
	Role     Role
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func (s Session) Can(p Permission) bool {
	return HasPermission(s.Role, p)
}

// SessionFromContext extracts the caller from the jwtauth claims in ctx.
func SessionFromContext(ctx context.Context) (Session, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil || claims == nil {
		return Session{}, ErrSessionMissing
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Session{}, ErrSessionMissing
	}
	role, _ := claims["role"].(string)
	username, _ := claims["username"].(string)
	name, _ := claims["name"].(string)

	return Session{
		UserID:   userID,
		Username: username,
		Name:     name,
		Role:     Role(role),
	}, nil
}
