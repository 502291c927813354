package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateReviewInput defines the data required to post a review. The reviewer
// is always the authenticated caller and never part of the input.
type CreateReviewInput struct {
	BusinessUserID uuid.UUID
	Rating         int
	Description    string
}

// UpdateReviewInput carries a partial review update. Nil fields are left
// untouched; only rating and description are mutable.
type UpdateReviewInput struct {
	Rating      *int
	Description *string
}

// ListReviewsInput carries the filter and ordering parameters of the review
// list. Nil filter fields are ignored.
type ListReviewsInput struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       string
}

// ReviewUsecase defines the interface for the review ledger.
type ReviewUsecase interface {
	// CreateReview posts a review about a business account. Only customer
	// accounts may post, and at most once per (business, reviewer) pair.
	CreateReview(ctx context.Context, actorID uuid.UUID, input CreateReviewInput) (*entity.Review, error)

	// ListReviews retrieves reviews matching the query.
	ListReviews(ctx context.Context, input ListReviewsInput) ([]*entity.Review, error)

	// GetReview retrieves a single review.
	GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// UpdateReview applies a partial update. Only the reviewer may write.
	UpdateReview(ctx context.Context, actorID, id uuid.UUID, input UpdateReviewInput) (*entity.Review, error)

	// DeleteReview removes a review. Only the reviewer may delete.
	DeleteReview(ctx context.Context, actorID, id uuid.UUID) error
}
