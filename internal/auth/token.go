// Package auth acquires and caches the ClientSuccess access token.
package auth

import (
	"context"
	"time"
)

// Token is an access token returned by POST /v1/auth. The API does not report
// an expiry, so the token is kept until it is invalidated.
type Token struct {
	AccessToken string
	ObtainedAt  time.Time
}

// TokenManager supplies the Authorization header value.
type TokenManager interface {
	// GetToken returns the cached token, acquiring one if none is cached.
	GetToken(ctx context.Context) (string, error)
	// Invalidate drops the cached token.
	Invalidate()
}

// StaticTokenManager serves a token obtained elsewhere, for example one
// saved by the CLI login command.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a manager that always returns token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the static token.
func (m *StaticTokenManager) GetToken(context.Context) (string, error) {
	return m.token, nil
}

// Invalidate is a no-op; a static token cannot be re-acquired.
func (m *StaticTokenManager) Invalidate() {}
