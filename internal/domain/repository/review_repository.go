package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific sentinel errors for the review store.
var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview is returned when the (business, reviewer) unique
	// constraint rejects an insert. It is the authoritative backstop behind
	// the application-level duplicate pre-check.
	ErrDuplicateReview = errors.New("review already exists for this business and reviewer")
)

// Review list ordering keys accepted by List.
const (
	ReviewOrderUpdatedAtDesc = "-updated_at"
	ReviewOrderUpdatedAtAsc  = "updated_at"
	ReviewOrderRatingDesc    = "-rating"
	ReviewOrderRatingAsc     = "rating"
)

// ReviewListQuery carries the filter and ordering parameters of the
// review list. Nil filter fields are ignored.
type ReviewListQuery struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       string // One of the ReviewOrder* keys; empty falls back to newest first.
}

// ReviewRepository defines the persistence operations of the review ledger.
type ReviewRepository interface {
	// Create persists a new review. A unique-constraint violation on the
	// (business, reviewer) pair surfaces as ErrDuplicateReview.
	Create(ctx context.Context, review *entity.Review) error

	// FindByID retrieves a single review.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// ExistsForPair reports whether the reviewer already reviewed the business.
	ExistsForPair(ctx context.Context, businessUserID, reviewerID uuid.UUID) (bool, error)

	// List retrieves all reviews matching the query.
	List(ctx context.Context, query *ReviewListQuery) ([]*entity.Review, error)

	// Update persists changed rating and description of an existing review.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all reviews on the platform.
	Count(ctx context.Context) (int64, error)

	// AverageRating returns the mean rating over all reviews, or 0 when
	// no reviews exist.
	AverageRating(ctx context.Context) (float64, error)
}
