package impl

import (
	"context"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileService struct {
	userRepo repository.UserRepository
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
}

// NewProfileService creates a new profile service instance.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
	}
}

// GetProfile retrieves a single profile by account ID.
func (s *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// UpdateProfile applies a partial profile update on behalf of the owner.
func (s *profileService) UpdateProfile(ctx context.Context, actorID, id uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	if actorID != id {
		return nil, domainerrors.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	applyProfilePatch(user, input)

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, err
	}

	// Re-read so the caller sees the stored state, including updated_at.
	updated, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload user after update")
	}

	return updated, nil
}

// applyProfilePatch copies the non-nil patch fields onto the entity.
func applyProfilePatch(user *entity.User, input usecase.UpdateProfileInput) {
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.File != nil {
		user.File = *input.File
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Tel != nil {
		user.Tel = *input.Tel
	}
	if input.Description != nil {
		user.Description = *input.Description
	}
	if input.WorkingHours != nil {
		user.WorkingHours = *input.WorkingHours
	}
}

// ListBusinessProfiles retrieves every business account.
func (s *profileService) ListBusinessProfiles(ctx context.Context) ([]*entity.User, error) {
	users, err := s.userRepo.ListByType(ctx, entity.RoleBusiness)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list business profiles")
	}

	return users, nil
}

// ListCustomerProfiles retrieves every customer account.
func (s *profileService) ListCustomerProfiles(ctx context.Context) ([]*entity.User, error) {
	users, err := s.userRepo.ListByType(ctx, entity.RoleCustomer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer profiles")
	}

	return users, nil
}
