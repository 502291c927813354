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

type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	offerRepo repository.OfferRepository
	userRepo  repository.UserRepository
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	OfferRepo repository.OfferRepository
	UserRepo  repository.UserRepository
}

// NewOrderService creates a new order service instance.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		offerRepo: params.OfferRepo,
		userRepo:  params.UserRepo,
	}
}

// CreateOrder snapshots the given tier into a new order. The read of the tier
// and the insert run in one transaction so a concurrent offer edit cannot
// produce a mixed snapshot.
func (s *orderService) CreateOrder(ctx context.Context, actorID, offerDetailID uuid.UUID) (*entity.Order, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find ordering customer")
	}
	if !actor.IsCustomer() {
		return nil, domainerrors.ErrForbidden
	}

	var order *entity.Order
	if err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		detail, offer, err := repoFactory.NewOfferRepository().FindDetailByID(ctx, offerDetailID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) || errors.Is(err, repository.ErrOfferNotFound) {
				return domainerrors.ErrOfferDetailNotFound
			}

			return errors.Wrap(err, "failed to find offer detail by id")
		}

		order = entity.NewOrderFromDetail(detail, actorID, offer.UserID)

		return repoFactory.NewOrderRepository().Create(ctx, order)
	}); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders retrieves every order where the caller is a participant.
func (s *orderService) ListOrders(ctx context.Context, actorID uuid.UUID) ([]*entity.Order, error) {
	orderList, err := s.orderRepo.ListByParticipant(ctx, actorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by participant")
	}

	return orderList, nil
}

// GetOrder retrieves a single order for one of its participants.
func (s *orderService) GetOrder(ctx context.Context, actorID, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	if !order.IsParticipant(actorID) {
		return nil, domainerrors.ErrForbidden
	}

	return order, nil
}

// UpdateOrderStatus sets the order status on behalf of the business side.
func (s *orderService) UpdateOrderStatus(ctx context.Context, actorID, id uuid.UUID, status string) (*entity.Order, error) {
	newStatus := entity.OrderStatus(status)
	if !newStatus.IsValid() {
		return nil, domainerrors.NewFieldError("status", "Status must be one of in_progress, completed or cancelled")
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	if order.BusinessUserID != actorID {
		return nil, domainerrors.ErrForbidden
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to update order status")
	}

	updated, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload order after update")
	}

	return updated, nil
}

// DeleteOrder removes an order. Staff accounts only.
func (s *orderService) DeleteOrder(ctx context.Context, actorID, id uuid.UUID) error {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to find deleting account")
	}
	if !actor.IsStaff {
		return domainerrors.ErrForbidden
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}

// CountInProgress counts a business account's running orders.
func (s *orderService) CountInProgress(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return s.countForBusiness(ctx, businessUserID, entity.OrderInProgress)
}

// CountCompleted counts a business account's completed orders.
func (s *orderService) CountCompleted(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return s.countForBusiness(ctx, businessUserID, entity.OrderCompleted)
}

// countForBusiness verifies the target is an existing business account before
// counting; anything else is reported as not-found.
func (s *orderService) countForBusiness(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	if _, err := s.userRepo.FindBusinessByID(ctx, businessUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, domainerrors.ErrBusinessUserNotFound
		}

		return 0, errors.Wrap(err, "failed to find business user")
	}

	count, err := s.orderRepo.CountByBusinessAndStatus(ctx, businessUserID, status)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}
