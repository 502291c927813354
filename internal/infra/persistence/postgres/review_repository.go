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

// reviewRepository implements the repository.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{
		db: db,
	}
}

// Create persists a new review. The unique index on (business_user_id, reviewer_id)
// is the authoritative duplicate guard.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReview
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBusinessUserNotFound.WrapMessage("reviewed business does not exist")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidRating
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// FindByID retrieves a single review.
func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("id = ?", id).
		First(&reviewM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return toReviewDomain(&reviewM), nil
}

// ExistsForPair reports whether the reviewer already reviewed the business.
func (repo *reviewRepository) ExistsForPair(ctx context.Context, businessUserID, reviewerID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.ReviewModel{}).
		Where("business_user_id = ? AND reviewer_id = ?", businessUserID, reviewerID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check for existing review")
	}

	return count > 0, nil
}

// List retrieves all reviews matching the query.
func (repo *reviewRepository) List(ctx context.Context, query *repository.ReviewListQuery) ([]*entity.Review, error) {
	base := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.ReviewModel{})

	if query.BusinessUserID != nil {
		base = base.Where("business_user_id = ?", *query.BusinessUserID)
	}
	if query.ReviewerID != nil {
		base = base.Where("reviewer_id = ?", *query.ReviewerID)
	}

	var reviewModels []*model.ReviewModel
	if err := base.
		Order(reviewOrderClause(query.Ordering)).
		Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviewList := make([]*entity.Review, 0, len(reviewModels))
	for _, reviewM := range reviewModels {
		reviewList = append(reviewList, toReviewDomain(reviewM))
	}

	return reviewList, nil
}

// reviewOrderClause maps an ordering key to a SQL order clause, falling back to
// newest first for unknown or empty keys.
func reviewOrderClause(ordering string) string {
	switch ordering {
	case repository.ReviewOrderUpdatedAtAsc:
		return "updated_at ASC"
	case repository.ReviewOrderRatingAsc:
		return "rating ASC"
	case repository.ReviewOrderRatingDesc:
		return "rating DESC"
	default:
		return "updated_at DESC"
	}
}

// Update persists changed rating and description of an existing review.
func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"rating":      review.Rating,
			"description": review.Description,
		})

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidRating
		}

		return errors.Wrap(result.Error, "failed to update review")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// Delete removes a review.
func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ReviewModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// Count counts all reviews on the platform.
func (repo *reviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.ReviewModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count reviews")
	}

	return count, nil
}

// AverageRating returns the mean rating over all reviews, or 0 when none exist.
func (repo *reviewRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg *float64

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.ReviewModel{}).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return 0, errors.Wrap(err, "failed to compute average rating")
	}

	if avg == nil {
		return 0, nil
	}

	return *avg, nil
}

// --- Mapper Functions ---

// toReviewDomain converts a GORM ReviewModel to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:             data.ID,
		BusinessUserID: data.BusinessUserID,
		ReviewerID:     data.ReviewerID,
		Rating:         data.Rating,
		Description:    data.Description,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromReviewDomain converts a domain Review entity to a GORM ReviewModel for persistence.
func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:             data.ID,
		BusinessUserID: data.BusinessUserID,
		ReviewerID:     data.ReviewerID,
		Rating:         data.Rating,
		Description:    data.Description,
	}
}
