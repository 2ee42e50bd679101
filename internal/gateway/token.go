package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource resolves the bearer token of the active session.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type TokenSourceFunc func(ctx context.Context) (string, error)

func (fn TokenSourceFunc) AccessToken(ctx context.Context) (string, error) {
	return fn(ctx)
}

type StaticToken string

func (token StaticToken) AccessToken(context.Context) (string, error) {
	return string(token), nil
}

// usableToken rejects empty tokens and JWTs whose exp claim has passed.
// Signatures are the backend's concern; opaque tokens are passed through.
func usableToken(raw string, now time.Time) bool {
	token := strings.TrimSpace(raw)
	if token == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(now) {
		return false
	}
	return true
}

// TokenExpiry returns the exp claim of a JWT access token, if present.
func TokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(raw), &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
