package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/cache"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidTokenType = errors.New("unexpected token type")

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)

	// ParseRefreshToken verifies signature, expiry and type and returns the subject.
	ParseRefreshToken(token string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth

	// RevokeToken blacklists a token until its own expiry.
	RevokeToken(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, token string) bool

	// RevokeUserTokens invalidates every access token already issued to userID.
	RevokeUserTokens(ctx context.Context, userID string) error
}

type JWTService struct {
	accessTokenExpirationTime  time.Duration
	refreshTokenExpirationTime time.Duration
	tokenAuth                  *jwtauth.JWTAuth
	revoked                    cache.RevocationStore
	now                        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService parses the expirations up front; durations use time.ParseDuration syntax ("15m", "168h").
func NewJWTService(secretKey, accessTokenExpirationTime, refreshTokenExpirationTime string, revoked cache.RevocationStore) (*JWTService, error) {
	accessExp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	refreshExp, err := time.ParseDuration(refreshTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	if revoked == nil {
		revoked = cache.NewMemoryStore()
	}

	return &JWTService{
		accessTokenExpirationTime:  accessExp,
		refreshTokenExpirationTime: refreshExp,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revoked:                    revoked,
		now:                        time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	issuedAt := j.now()
	expiresAt = issuedAt.Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]any{
		"user_id":  u.ID,
		"username": u.Username,
		"name":     u.Name,
		"role":     string(u.Role),
		"type":     TokenTypeAccess,
		"iat":      issuedAt.Unix(),
		"exp":      expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTokenExpirationTime).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]any{
		"user_id": userID,
		"type":    TokenTypeRefresh,
		"exp":     expiresAt,
		// jti keeps two refresh tokens minted in the same second distinct
		"jti": uuid.NewString(),
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeRefresh {
		return "", ErrInvalidTokenType
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

func (j *JWTService) RevokeToken(ctx context.Context, tokenString string) error {
	ttl := j.accessTokenExpirationTime
	if token, err := j.tokenAuth.Decode(tokenString); err == nil && !token.Expiration().IsZero() {
		ttl = token.Expiration().Sub(j.now())
	}
	return j.revoked.Revoke(ctx, tokenString, ttl)
}

func (j *JWTService) RevokeUserTokens(ctx context.Context, userID string) error {
	return j.revoked.RevokeSubject(ctx, userID, j.now(), j.accessTokenExpirationTime)
}

// IsTokenRevoked fails closed: a store error counts as revoked. A token is also revoked
// when its user was revoked in or after the second it was issued.
func (j *JWTService) IsTokenRevoked(ctx context.Context, tokenString string) bool {
	revoked, err := j.revoked.IsRevoked(ctx, tokenString)
	if err != nil || revoked {
		return true
	}

	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return false
	}
	userIDVal, ok := token.Get("user_id")
	if !ok {
		return false
	}
	userID, _ := userIDVal.(string)
	if userID == "" {
		return false
	}

	since, ok, err := j.revoked.SubjectRevokedAt(ctx, userID)
	if err != nil {
		return true
	}
	return ok && token.IssuedAt().Unix() <= since.Unix()
}
