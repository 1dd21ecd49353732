// Package adapters holds the infrastructure implementations of application ports
// that do not belong to persistence or email.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/residence-hub/backend/internal/application/adapter"
)

const (
	accessTokenTTL  = 12 * time.Hour
	clockSkewLeeway = 30 * time.Second

	tokenTypeAccess = "access"
	tokenIssuer     = "residence-hub"
)

// staffClaims is the JWT payload the identity provider signs for staff members.
type staffClaims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenService validates HS256 tokens signed with secret.
func NewTokenService(secret string) adapter.TokenService {
	return &tokenService{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkewLeeway),
		),
	}
}

func (s *tokenService) GenerateAccessToken(ctx context.Context, subject, email, role string) (string, error) {
	now := time.Now().UTC()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, staffClaims{
		Email:     email,
		Role:      role,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) ValidateAccessToken(ctx context.Context, raw string) (*adapter.TokenClaims, error) {
	claims := &staffClaims{}
	if _, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	switch {
	case claims.TokenType != tokenTypeAccess:
		return nil, errors.New("not an access token")
	case claims.Subject == "":
		return nil, errors.New("token has no subject")
	}

	return &adapter.TokenClaims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
