package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// OfferDetailInput defines one pricing tier of a new offer.
type OfferDetailInput struct {
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
	OfferType          string
}

// CreateOfferInput defines the data required to publish an offer.
type CreateOfferInput struct {
	Title       string
	Image       string
	Description string
	Details     []OfferDetailInput
}

// OfferDetailPatch carries a partial update of one existing tier, matched by
// its ID. Nil fields are left untouched.
type OfferDetailPatch struct {
	ID                 uuid.UUID
	Title              *string
	Revisions          *int
	DeliveryTimeInDays *int
	Price              *decimal.Decimal
	Features           []string
	OfferType          *string
}

// UpdateOfferInput carries a partial offer update. Nil fields are left
// untouched; Details lists only the tiers being patched.
type UpdateOfferInput struct {
	Title       *string
	Image       *string
	Description *string
	Details     []OfferDetailPatch
}

// ListOffersInput carries filter, search, ordering and pagination parameters
// of the public offer list. Page and PageSize of zero fall back to the
// configured defaults.
type ListOffersInput struct {
	CreatorID       *uuid.UUID
	MinPrice        *decimal.Decimal
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Page            int
	PageSize        int
}

// --- Output DTOs ---

// OfferWithCreator pairs an offer with its owning business account so the
// delivery layer can render creator details without a second lookup.
type OfferWithCreator struct {
	Offer   *entity.Offer
	Creator *entity.User
}

// OfferPage is one page of the offer list plus pagination metadata.
type OfferPage struct {
	Items    []*OfferWithCreator
	Total    int64
	Page     int
	PageSize int
}

// OfferUsecase defines the interface for the offer catalog.
type OfferUsecase interface {
	// CreateOffer publishes a new offer with all of its tiers. Only business
	// accounts may publish; fewer than the minimum number of tiers is a
	// validation error.
	CreateOffer(ctx context.Context, actorID uuid.UUID, input CreateOfferInput) (*entity.Offer, error)

	// ListOffers retrieves one page of the public catalog.
	ListOffers(ctx context.Context, input ListOffersInput) (*OfferPage, error)

	// GetOffer retrieves a single offer with creator details.
	GetOffer(ctx context.Context, id uuid.UUID) (*OfferWithCreator, error)

	// UpdateOffer applies a partial update. Only the owner may write.
	UpdateOffer(ctx context.Context, actorID, id uuid.UUID, input UpdateOfferInput) (*entity.Offer, error)

	// DeleteOffer removes an offer and its tiers. Only the owner may delete.
	DeleteOffer(ctx context.Context, actorID, id uuid.UUID) error

	// GetOfferDetail retrieves a single pricing tier.
	GetOfferDetail(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error)
}
