package testutil

import (
	"context"
	"sync"

	"github.com/willykudo/pionix/internal/domain/auth"
)

type refreshEntry struct {
	userID  string
	revoked bool
}

// JWTRepo stores refresh tokens in memory; expiry is ignored.
type JWTRepo struct {
	mu     sync.Mutex
	tokens map[string]*refreshEntry
}

func NewJWTRepo() *JWTRepo {
	return &JWTRepo{tokens: make(map[string]*refreshEntry)}
}

func (r *JWTRepo) CreateRefreshToken(ctx context.Context, userID, token string, expiresAt int64, _ auth.SessionTrackingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = &refreshEntry{userID: userID}
	return nil
}

func (r *JWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tokens[token]
	if !ok {
		return "", false, auth.ErrInvalidToken
	}
	return e.userID, e.revoked, nil
}

func (r *JWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.tokens[token]; ok {
		e.revoked = true
	}
	return nil
}

func (r *JWTRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.tokens {
		if e.userID == userID {
			e.revoked = true
		}
	}
	return nil
}

// TokenRevoker records the users whose access tokens were revoked.
type TokenRevoker struct {
	mu      sync.Mutex
	Revoked []string
}

func (r *TokenRevoker) RevokeUserTokens(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Revoked = append(r.Revoked, userID)
	return nil
}
