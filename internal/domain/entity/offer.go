package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinOfferDetails is the minimum number of pricing tiers an offer must
// carry at creation time.
const MinOfferDetails = 3

// Offer is a service offering published by a business account. It
// aggregates at least MinOfferDetails pricing tiers.
type Offer struct {
	ID          uuid.UUID
	UserID      uuid.UUID // The owning business account.
	Title       string
	Image       string // URL of the offer image, empty when none.
	Description string
	Details     []*OfferDetail
	CreatedAt   time.Time
	UpdatedAt   time.Time // Bumped on every mutation of the offer or its tiers.
}

// OfferDetail is a single pricing tier of an offer.
type OfferDetail struct {
	ID                 uuid.UUID
	OfferID            uuid.UUID
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
	OfferType          string // Tier label such as "basic", "standard" or "premium".
}

// MinPrice returns the lowest tier price, or nil when the offer has no tiers.
func (o *Offer) MinPrice() *decimal.Decimal {
	var minPrice *decimal.Decimal
	for _, d := range o.Details {
		if minPrice == nil || d.Price.LessThan(*minPrice) {
			p := d.Price
			minPrice = &p
		}
	}

	return minPrice
}

// MinDeliveryTime returns the shortest tier delivery time in days.
// The second return value is false when the offer has no tiers.
func (o *Offer) MinDeliveryTime() (int, bool) {
	found := false
	minDays := 0
	for _, d := range o.Details {
		if !found || d.DeliveryTimeInDays < minDays {
			minDays = d.DeliveryTimeInDays
			found = true
		}
	}

	return minDays, found
}

// DetailByID returns the tier with the given identifier, or nil when the
// offer has no such tier.
func (o *Offer) DetailByID(id uuid.UUID) *OfferDetail {
	for _, d := range o.Details {
		if d.ID == id {
			return d
		}
	}

	return nil
}
