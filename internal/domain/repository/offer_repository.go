package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific sentinel errors for the offer store.
var (
	ErrOfferNotFound       = errors.New("offer not found")
	ErrOfferDetailNotFound = errors.New("offer detail not found")
)

// Offer list ordering keys accepted by List.
const (
	OfferOrderUpdatedAtDesc = "-updated_at"
	OfferOrderUpdatedAtAsc  = "updated_at"
	OfferOrderMinPriceAsc   = "min_price"
	OfferOrderMinPriceDesc  = "-min_price"
)

// OfferListQuery carries the filter, search, ordering and pagination
// parameters of the public offer list. Nil filter fields are ignored.
type OfferListQuery struct {
	CreatorID       *uuid.UUID       // Filter by owning business account.
	MinPrice        *decimal.Decimal // Keep offers whose cheapest tier costs at least this.
	MaxDeliveryTime *int             // Keep offers whose fastest tier delivers within this many days.
	Search          string           // Case-insensitive match over title and description.
	Ordering        string           // One of the OfferOrder* keys; empty falls back to newest first.
	Page            int              // 1-based page number.
	PageSize        int              // Entries per page, already clamped by the caller.
}

// OfferRepository defines the persistence operations of the offer catalog.
type OfferRepository interface {
	// Create persists an offer together with all of its tiers.
	Create(ctx context.Context, offer *entity.Offer) error

	// FindByID retrieves a single offer with its tiers loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// List retrieves one page of offers matching the query, plus the total
	// match count across all pages.
	List(ctx context.Context, query *OfferListQuery) ([]*entity.Offer, int64, error)

	// Update persists changed offer fields and overwrites the given tiers.
	// Tiers not present in offer.Details are left untouched.
	Update(ctx context.Context, offer *entity.Offer) error

	// Delete removes an offer; the storage cascade removes its tiers.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindDetailByID retrieves a single tier together with its parent offer.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, *entity.Offer, error)

	// Count counts all offers on the platform.
	Count(ctx context.Context) (int64, error)
}
