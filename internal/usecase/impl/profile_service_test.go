package impl

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	mockRepo "marketplace/internal/mocks/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (usecase.ProfileUsecase, *mockRepo.MockUserRepository) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	service := NewProfileService(ProfileServiceParams{UserRepo: mockUserRepo})

	return service, mockUserRepo
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	service, mockUserRepo := newProfileService(t)

	ctx := context.Background()
	id := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrUserNotFound)

	_, err := service.GetProfile(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile_OwnerOnly(t *testing.T) {
	service, _ := newProfileService(t)

	location := "Berlin"
	_, err := service.UpdateProfile(context.Background(), uuid.New(), uuid.New(), usecase.UpdateProfileInput{
		Location: &location,
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestProfileService_UpdateProfile_AppliesOnlySuppliedFields(t *testing.T) {
	service, mockUserRepo := newProfileService(t)

	ctx := context.Background()
	id := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, id).Return(&entity.User{
		ID:        id,
		Username:  "studio",
		FirstName: "Sam",
		Location:  "Hamburg",
		Tel:       "040-123",
		Type:      entity.RoleBusiness,
	}, nil).Once()

	mockUserRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			assert.Equal(t, "Berlin", user.Location)
			// Untouched fields survive the patch.
			assert.Equal(t, "Sam", user.FirstName)
			assert.Equal(t, "040-123", user.Tel)
			assert.Equal(t, entity.RoleBusiness, user.Type)
		}).
		Return(nil)

	reloaded := &entity.User{ID: id, Username: "studio", Location: "Berlin", Type: entity.RoleBusiness}
	mockUserRepo.EXPECT().FindByID(ctx, id).Return(reloaded, nil).Once()

	location := "Berlin"
	user, err := service.UpdateProfile(ctx, id, id, usecase.UpdateProfileInput{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, reloaded, user)
}

func TestProfileService_ListProfilesByRole(t *testing.T) {
	service, mockUserRepo := newProfileService(t)

	ctx := context.Background()

	businesses := []*entity.User{{ID: uuid.New(), Type: entity.RoleBusiness}}
	customers := []*entity.User{{ID: uuid.New(), Type: entity.RoleCustomer}}

	mockUserRepo.EXPECT().ListByType(ctx, entity.RoleBusiness).Return(businesses, nil)
	mockUserRepo.EXPECT().ListByType(ctx, entity.RoleCustomer).Return(customers, nil)

	got, err := service.ListBusinessProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, businesses, got)

	got, err = service.ListCustomerProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, customers, got)
}
