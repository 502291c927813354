// Package impl contains the concrete implementations of the usecase interfaces.
package impl

import (
	"context"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type accountService struct {
	userRepo       repository.UserRepository
	passwordHasher service.PasswordHasher
	tokenService   service.TokenService
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo       repository.UserRepository
	PasswordHasher service.PasswordHasher
	TokenService   service.TokenService
}

// NewAccountService creates a new account service instance.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo:       params.UserRepo,
		passwordHasher: params.PasswordHasher,
		tokenService:   params.TokenService,
	}
}

// Register creates a new account and returns its first access token.
func (s *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input.Password != input.RepeatedPassword {
		return nil, domainerrors.NewFieldError("repeated_password", "Passwords do not match")
	}

	role := entity.Role(input.Type)
	if !role.IsValid() {
		return nil, domainerrors.NewFieldError("type", "Type must be 'customer' or 'business'")
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Type:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenService.GenerateToken(user.ID, user.Type.String(), user.IsStaff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	return &usecase.AuthOutput{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}

// Login verifies the credentials and returns a fresh access token. Unknown
// usernames and wrong passwords are reported identically.
func (s *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	if !s.passwordHasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := s.tokenService.GenerateToken(user.ID, user.Type.String(), user.IsStaff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	return &usecase.AuthOutput{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}
