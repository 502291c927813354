package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput carries a partial profile update. Nil fields are left
// untouched. The account type is not listed here on purpose; it can never
// change after registration.
type UpdateProfileInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	File         *string
	Location     *string
	Tel          *string
	Description  *string
	WorkingHours *string
}

// ProfileUsecase defines the interface for profile reads and updates.
type ProfileUsecase interface {
	// GetProfile retrieves a single profile by account ID.
	GetProfile(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateProfile applies a partial update. Only the profile owner may
	// write; anyone else gets a forbidden error.
	UpdateProfile(ctx context.Context, actorID, id uuid.UUID, input UpdateProfileInput) (*entity.User, error)

	// ListBusinessProfiles retrieves every business account.
	ListBusinessProfiles(ctx context.Context) ([]*entity.User, error)

	// ListCustomerProfiles retrieves every customer account.
	ListCustomerProfiles(ctx context.Context) ([]*entity.User, error)
}
