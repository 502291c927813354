package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderInProgress is the initial status of every order.
	OrderInProgress OrderStatus = "in_progress"
	// OrderCompleted marks an order fulfilled by the business side.
	OrderCompleted OrderStatus = "completed"
	// OrderCancelled marks an order abandoned by the business side.
	OrderCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	default:
		return false
	}
}

// Order is an immutable snapshot of one offer tier's commercial terms,
// taken at purchase time. Only Status changes afterwards; later edits to
// the source offer never reach existing orders.
type Order struct {
	ID                 uuid.UUID
	CustomerUserID     uuid.UUID // The customer who placed the order.
	BusinessUserID     uuid.UUID // The business that owns the source offer.
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
	OfferType          string
	Status             OrderStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewOrderFromDetail snapshots the commercial fields of a tier into a new
// in-progress order between the given customer and business accounts.
func NewOrderFromDetail(detail *OfferDetail, customerID, businessID uuid.UUID) *Order {
	features := make([]string, len(detail.Features))
	copy(features, detail.Features)

	return &Order{
		CustomerUserID:     customerID,
		BusinessUserID:     businessID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           features,
		OfferType:          detail.OfferType,
		Status:             OrderInProgress,
	}
}

// IsParticipant reports whether the given account is either side of the order.
func (o *Order) IsParticipant(userID uuid.UUID) bool {
	return o.CustomerUserID == userID || o.BusinessUserID == userID
}

// EstimatedDeliveryDate returns the creation time shifted by the
// snapshotted delivery window.
func (o *Order) EstimatedDeliveryDate() time.Time {
	return o.CreatedAt.AddDate(0, 0, o.DeliveryTimeInDays)
}
