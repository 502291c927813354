package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Review ties one reviewer to one business account. At most one review
// may exist per (business, reviewer) pair; the storage layer enforces
// this with a unique constraint.
type Review struct {
	ID             uuid.UUID
	BusinessUserID uuid.UUID // The reviewed business account.
	ReviewerID     uuid.UUID // The customer who wrote the review.
	Rating         int       // Integer in [MinRating, MaxRating].
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidRating reports whether a rating value is inside the allowed range.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
