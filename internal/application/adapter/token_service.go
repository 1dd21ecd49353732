package adapter

import (
	"context"
	"time"
)

// Staff roles carried in access tokens.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleViewer = "viewer"
)

// TokenClaims represents the claims contained in an access token.
type TokenClaims struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// TokenService validates access tokens issued by the identity provider.
type TokenService interface {
	// GenerateAccessToken issues a token; used by tooling and tests.
	GenerateAccessToken(ctx context.Context, subject, email, role string) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
