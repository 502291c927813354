// Package middleware contains the HTTP pipeline components: request
// tagging, logging, authentication, throttling and error translation.
package middleware

import (
	"strings"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for the handlers downstream.
const (
	keyUserID  = "userID"
	keyRole    = "role"
	keyIsStaff = "isStaff"
)

// AuthMiddleware validates bearer tokens and enforces role gates.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the access token and stores the caller identity
// on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		c.Set(keyUserID, claims.UserID)
		c.Set(keyRole, claims.Role)
		c.Set(keyIsStaff, claims.IsStaff)

		return next(c)
	}
}

// RequireRole is a middleware factory that rejects callers without the
// given role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(keyRole).(string)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Role information missing")
			}

			if role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "This action requires the '"+requiredRole+"' role")
			}

			return next(c)
		}
	}
}

// GetUserID returns the authenticated caller's account ID.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(keyUserID).(uuid.UUID)

	return id, ok
}

// GetRole returns the authenticated caller's role.
func GetRole(c echo.Context) (string, bool) {
	role, ok := c.Get(keyRole).(string)

	return role, ok
}
