package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/willykudo/pionix/internal/domain/auth"
	"github.com/willykudo/pionix/internal/handler/http/response"
	"github.com/willykudo/pionix/internal/pkg/jwt"
)

// checkAccessToken reports why the verified token in r cannot be used as an access token.
func checkAccessToken(r *http.Request, jwtService jwt.Service) error {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return err
	}
	if token == nil {
		return auth.ErrInvalidToken
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != jwt.TokenTypeAccess {
		return auth.ErrInvalidToken
	}

	if jwtService.IsTokenRevoked(r.Context(), jwtauth.TokenFromHeader(r)) {
		return auth.ErrTokenRevoked
	}
	return nil
}

// AuthRequired rejects requests without a verified, unrevoked access token. It runs after
// jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if err := checkAccessToken(r, jwtService); err != nil {
				writeAuthError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// AuthOptional lets anonymous requests through but holds a presented token to the same
// rules as AuthRequired, so handlers never see a session from a revoked or refresh token.
func AuthOptional(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			err := checkAccessToken(r, jwtService)
			if err != nil && !errors.Is(err, jwtauth.ErrNoTokenFound) {
				writeAuthError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrTokenRevoked) {
		response.HandleError(w, err)
		return
	}
	response.Unauthorized(w, err.Error())
}
