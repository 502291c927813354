package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the persistence operations of the order ledger.
type OrderRepository interface {
	// Create persists a new order snapshot.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByParticipant retrieves all orders where the account is either
	// the customer or the business side, newest first.
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus sets the status of an existing order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// Delete removes an order.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByBusinessAndStatus counts a business account's orders in the
	// given status.
	CountByBusinessAndStatus(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error)
}
