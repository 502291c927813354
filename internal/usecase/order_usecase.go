package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for the order ledger.
type OrderUsecase interface {
	// CreateOrder places an order for the given pricing tier. Only customer
	// accounts may order; the tier's commercial fields are copied onto the
	// order so later offer edits never change it.
	CreateOrder(ctx context.Context, actorID, offerDetailID uuid.UUID) (*entity.Order, error)

	// ListOrders retrieves every order where the caller is a participant.
	ListOrders(ctx context.Context, actorID uuid.UUID) ([]*entity.Order, error)

	// GetOrder retrieves a single order. Only participants may read it.
	GetOrder(ctx context.Context, actorID, id uuid.UUID) (*entity.Order, error)

	// UpdateOrderStatus sets the order status. Only the business side of the
	// order may change it.
	UpdateOrderStatus(ctx context.Context, actorID, id uuid.UUID, status string) (*entity.Order, error)

	// DeleteOrder removes an order. Staff accounts only.
	DeleteOrder(ctx context.Context, actorID, id uuid.UUID) error

	// CountInProgress counts a business account's running orders. The target
	// must exist and hold the business role, otherwise not-found.
	CountInProgress(ctx context.Context, businessUserID uuid.UUID) (int64, error)

	// CountCompleted counts a business account's completed orders with the
	// same existence gate as CountInProgress.
	CountCompleted(ctx context.Context, businessUserID uuid.UUID) (int64, error)
}
