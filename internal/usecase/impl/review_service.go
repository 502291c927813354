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

type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	UserRepo   repository.UserRepository
}

// NewReviewService creates a new review service instance.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		userRepo:   params.UserRepo,
	}
}

// CreateReview posts a review about a business account. The duplicate
// pre-check keeps the common case friendly; the unique constraint behind
// Create is the authoritative guard under concurrency.
func (s *reviewService) CreateReview(ctx context.Context, actorID uuid.UUID, input usecase.CreateReviewInput) (*entity.Review, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find reviewer")
	}
	if !actor.IsCustomer() {
		return nil, domainerrors.ErrForbidden
	}

	if !entity.ValidRating(input.Rating) {
		return nil, domainerrors.NewFieldError("rating", "Rating must be between 1 and 5")
	}

	if _, err := s.userRepo.FindBusinessByID(ctx, input.BusinessUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrBusinessUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find reviewed business")
	}

	review := &entity.Review{
		BusinessUserID: input.BusinessUserID,
		ReviewerID:     actorID,
		Rating:         input.Rating,
		Description:    input.Description,
	}

	if err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		exists, err := reviewRepo.ExistsForPair(ctx, input.BusinessUserID, actorID)
		if err != nil {
			return errors.Wrap(err, "failed to check for existing review")
		}
		if exists {
			return domainerrors.ErrDuplicateReview
		}

		return reviewRepo.Create(ctx, review)
	}); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, domainerrors.ErrDuplicateReview
		}

		return nil, err
	}

	return review, nil
}

// ListReviews retrieves reviews matching the query.
func (s *reviewService) ListReviews(ctx context.Context, input usecase.ListReviewsInput) ([]*entity.Review, error) {
	reviewList, err := s.reviewRepo.List(ctx, &repository.ReviewListQuery{
		BusinessUserID: input.BusinessUserID,
		ReviewerID:     input.ReviewerID,
		Ordering:       input.Ordering,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviewList, nil
}

// GetReview retrieves a single review.
func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return review, nil
}

// UpdateReview applies a partial update on behalf of the reviewer.
func (s *reviewService) UpdateReview(ctx context.Context, actorID, id uuid.UUID, input usecase.UpdateReviewInput) (*entity.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	if review.ReviewerID != actorID {
		return nil, domainerrors.ErrForbidden
	}

	if input.Rating != nil {
		if !entity.ValidRating(*input.Rating) {
			return nil, domainerrors.NewFieldError("rating", "Rating must be between 1 and 5")
		}
		review.Rating = *input.Rating
	}
	if input.Description != nil {
		review.Description = *input.Description
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}

		return nil, err
	}

	updated, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload review after update")
	}

	return updated, nil
}

// DeleteReview removes a review on behalf of the reviewer.
func (s *reviewService) DeleteReview(ctx context.Context, actorID, id uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return domainerrors.ErrReviewNotFound
		}

		return errors.Wrap(err, "failed to find review by id")
	}

	if review.ReviewerID != actorID {
		return domainerrors.ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return domainerrors.ErrReviewNotFound
		}

		return errors.Wrap(err, "failed to delete review")
	}

	return nil
}
