// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/residence-hub/backend/internal/application/adapter"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// StaffIDKey is the context key for the token subject.
	StaffIDKey ContextKey = "staff_id"
	// StaffEmailKey is the context key for the authenticated staff email.
	StaffEmailKey ContextKey = "staff_email"
	// StaffRoleKey is the context key for the staff role.
	StaffRoleKey ContextKey = "staff_role"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abort(c, http.StatusUnauthorized, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		c.Set(string(StaffIDKey), claims.Subject)
		c.Set(string(StaffEmailKey), claims.Email)
		c.Set(string(StaffRoleKey), claims.Role)

		c.Next()
	}
}

// RequireRole rejects requests whose token role is not one of roles.
// It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, _ := GetStaffRoleFromContext(c)
		if _, ok := allowed[role]; !ok {
			abort(c, http.StatusForbidden, "Insufficient permissions for this operation", domainerror.ErrCodeForbidden)
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetActorFromContext returns the identity recorded in audit entries:
// the staff email, or the token subject when no email was issued.
func GetActorFromContext(c *gin.Context) string {
	if email, ok := GetStaffEmailFromContext(c); ok && email != "" {
		return email
	}
	id, _ := c.Get(string(StaffIDKey))
	s, _ := id.(string)
	return s
}

// GetStaffEmailFromContext extracts the staff email from the Gin context.
func GetStaffEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(StaffEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}

// GetStaffRoleFromContext extracts the staff role from the Gin context.
func GetStaffRoleFromContext(c *gin.Context) (string, bool) {
	role, exists := c.Get(string(StaffRoleKey))
	if !exists {
		return "", false
	}
	roleStr, ok := role.(string)
	return roleStr, ok
}
