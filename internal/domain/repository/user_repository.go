// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// Create persists a new account. Username and email collisions surface
	// as domain errors via the storage unique constraints.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single account by its login name.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindBusinessByID retrieves an account that exists AND holds the
	// business role; ErrUserNotFound otherwise.
	FindBusinessByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Update modifies an existing account.
	Update(ctx context.Context, user *entity.User) error

	// ListByType retrieves all accounts holding the given role.
	ListByType(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// CountByType counts accounts holding the given role.
	CountByType(ctx context.Context, role entity.Role) (int64, error)
}
