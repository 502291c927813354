// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username         string
	Email            string
	Password         string
	RepeatedPassword string
	Type             string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the token payload after a successful registration or login.
type AuthOutput struct {
	Token    string
	Username string
	Email    string
	UserID   uuid.UUID
}

// AccountUsecase defines the interface for registration and login.
// This is the contract that the delivery layer depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
}
