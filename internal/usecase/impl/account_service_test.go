package impl

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	mockRepo "marketplace/internal/mocks/repository"
	mockSvc "marketplace/internal/mocks/service"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (usecase.AccountUsecase, *mockRepo.MockUserRepository, *mockSvc.MockPasswordHasher, *mockSvc.MockTokenService) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	mockHasher := mockSvc.NewMockPasswordHasher(t)
	mockTokenSvc := mockSvc.NewMockTokenService(t)

	service := NewAccountService(AccountServiceParams{
		UserRepo:       mockUserRepo,
		PasswordHasher: mockHasher,
		TokenService:   mockTokenSvc,
	})

	return service, mockUserRepo, mockHasher, mockTokenSvc
}

func TestAccountService_Register_Success(t *testing.T) {
	service, mockUserRepo, mockHasher, mockTokenSvc := newAccountService(t)

	ctx := context.Background()
	userID := uuid.New()

	mockHasher.EXPECT().Hash("s3cret-pass").Return("hashed", nil)

	mockUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			assert.Equal(t, "anna", user.Username)
			assert.Equal(t, "anna@example.com", user.Email)
			assert.Equal(t, "hashed", user.PasswordHash)
			assert.Equal(t, entity.RoleCustomer, user.Type)
			user.ID = userID
		}).
		Return(nil)

	mockTokenSvc.EXPECT().GenerateToken(userID, "customer", false).Return("token-123", nil)

	out, err := service.Register(ctx, usecase.RegisterInput{
		Username:         "anna",
		Email:            "anna@example.com",
		Password:         "s3cret-pass",
		RepeatedPassword: "s3cret-pass",
		Type:             "customer",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-123", out.Token)
	assert.Equal(t, "anna", out.Username)
	assert.Equal(t, "anna@example.com", out.Email)
	assert.Equal(t, userID, out.UserID)
}

func TestAccountService_Register_PasswordMismatch(t *testing.T) {
	service, _, _, _ := newAccountService(t)

	out, err := service.Register(context.Background(), usecase.RegisterInput{
		Username:         "anna",
		Email:            "anna@example.com",
		Password:         "s3cret-pass",
		RepeatedPassword: "different",
		Type:             "customer",
	})
	require.Error(t, err)
	assert.Nil(t, out)

	var fieldErr *domainerrors.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "repeated_password", fieldErr.Field())
}

func TestAccountService_Register_InvalidType(t *testing.T) {
	service, _, _, _ := newAccountService(t)

	_, err := service.Register(context.Background(), usecase.RegisterInput{
		Username:         "anna",
		Email:            "anna@example.com",
		Password:         "s3cret-pass",
		RepeatedPassword: "s3cret-pass",
		Type:             "admin",
	})
	require.Error(t, err)

	var fieldErr *domainerrors.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "type", fieldErr.Field())
}

func TestAccountService_Register_DuplicateUsername(t *testing.T) {
	service, mockUserRepo, mockHasher, _ := newAccountService(t)

	ctx := context.Background()

	mockHasher.EXPECT().Hash("s3cret-pass").Return("hashed", nil)
	mockUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists)

	_, err := service.Register(ctx, usecase.RegisterInput{
		Username:         "anna",
		Email:            "anna@example.com",
		Password:         "s3cret-pass",
		RepeatedPassword: "s3cret-pass",
		Type:             "business",
	})
	require.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_Login_Success(t *testing.T) {
	service, mockUserRepo, mockHasher, mockTokenSvc := newAccountService(t)

	ctx := context.Background()
	userID := uuid.New()

	mockUserRepo.EXPECT().FindByUsername(ctx, "bert").Return(&entity.User{
		ID:           userID,
		Username:     "bert",
		Email:        "bert@example.com",
		PasswordHash: "hashed",
		Type:         entity.RoleBusiness,
	}, nil)

	mockHasher.EXPECT().Check("s3cret-pass", "hashed").Return(true)
	mockTokenSvc.EXPECT().GenerateToken(userID, "business", false).Return("token-456", nil)

	out, err := service.Login(ctx, usecase.LoginInput{Username: "bert", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "token-456", out.Token)
	assert.Equal(t, userID, out.UserID)
}

func TestAccountService_Login_UnknownUsername(t *testing.T) {
	service, mockUserRepo, _, _ := newAccountService(t)

	ctx := context.Background()
	mockUserRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := service.Login(ctx, usecase.LoginInput{Username: "ghost", Password: "whatever"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	service, mockUserRepo, mockHasher, _ := newAccountService(t)

	ctx := context.Background()
	mockUserRepo.EXPECT().FindByUsername(ctx, "bert").Return(&entity.User{
		ID:           uuid.New(),
		Username:     "bert",
		PasswordHash: "hashed",
		Type:         entity.RoleBusiness,
	}, nil)
	mockHasher.EXPECT().Check("wrong", "hashed").Return(false)

	_, err := service.Login(ctx, usecase.LoginInput{Username: "bert", Password: "wrong"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
