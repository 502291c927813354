package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create persists a new user account.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Carry the generated ID and timestamps back onto the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByUsername retrieves a single user by their username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("username = ?", username).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// FindBusinessByID retrieves a user by ID and requires the business account type.
// A customer account behind the ID is reported the same way as a missing row.
func (repo *userRepository) FindBusinessByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("id = ? AND type = ?", id, entity.RoleBusiness.String()).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find business user by id")
	}

	return toUserDomain(&userM), nil
}

// Update persists profile changes for an existing user. The account type and
// password hash are never touched here.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"email":         user.Email,
			"file":          user.File,
			"location":      user.Location,
			"tel":           user.Tel,
			"description":   user.Description,
			"working_hours": user.WorkingHours,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		return errors.Wrap(result.Error, "failed to update user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// ListByType retrieves all users of the given account type, newest first.
func (repo *userRepository) ListByType(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	var userModels []*model.UserModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("type = ?", role.String()).
		Order("created_at DESC").
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users by type")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// CountByType counts users of the given account type.
func (repo *userRepository) CountByType(ctx context.Context, role entity.Role) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.UserModel{}).
		Where("type = ?", role.String()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users by type")
	}

	return count, nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Type:         entity.Role(data.Type),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		File:         data.File,
		Location:     data.Location,
		Tel:          data.Tel,
		Description:  data.Description,
		WorkingHours: data.WorkingHours,
		IsStaff:      data.IsStaff,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Type:         data.Type.String(),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		File:         data.File,
		Location:     data.Location,
		Tel:          data.Tel,
		Description:  data.Description,
		WorkingHours: data.WorkingHours,
		IsStaff:      data.IsStaff,
	}
}
