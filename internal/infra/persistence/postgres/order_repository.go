package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order snapshot.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("order participant does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves a single order.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByParticipant retrieves all orders where the account is either side, newest first.
func (repo *orderRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by participant")
	}

	orderList := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orderList = append(orderList, toOrderDomain(orderM))
	}

	return orderList, nil
}

// UpdateStatus sets the status of an existing order.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", status.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OrderModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// CountByBusinessAndStatus counts a business account's orders in the given status.
func (repo *orderRepository) CountByBusinessAndStatus(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.OrderModel{}).
		Where("business_user_id = ? AND status = ?", businessUserID, status.String()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders by business and status")
	}

	return count, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:                 data.ID,
		CustomerUserID:     data.CustomerUserID,
		BusinessUserID:     data.BusinessUserID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           data.Features,
		OfferType:          data.OfferType,
		Status:             entity.OrderStatus(data.Status),
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel for persistence.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:                 data.ID,
		CustomerUserID:     data.CustomerUserID,
		BusinessUserID:     data.BusinessUserID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           data.Features,
		OfferType:          data.OfferType,
		Status:             data.Status.String(),
	}
}
