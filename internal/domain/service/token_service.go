package service

import (
	"github.com/google/uuid"
)

// Claims carries the authenticated identity extracted from a bearer token.
type Claims struct {
	UserID  uuid.UUID
	Role    string // "customer" or "business".
	IsStaff bool
}

// TokenService defines the interface for issuing and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed access token for the given identity.
	GenerateToken(userID uuid.UUID, role string, isStaff bool) (string, error)

	// ValidateToken checks a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
