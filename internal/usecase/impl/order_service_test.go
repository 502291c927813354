package impl

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	mockRepo "marketplace/internal/mocks/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (usecase.OrderUsecase, *mockRepo.MockTransactionManager, *mockRepo.MockOrderRepository, *mockRepo.MockOfferRepository, *mockRepo.MockUserRepository) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockOfferRepo := mockRepo.NewMockOfferRepository(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)

	service := NewOrderService(OrderServiceParams{
		TxManager: mockTx,
		OrderRepo: mockOrderRepo,
		OfferRepo: mockOfferRepo,
		UserRepo:  mockUserRepo,
	})

	return service, mockTx, mockOrderRepo, mockOfferRepo, mockUserRepo
}

func TestOrderService_CreateOrder_SnapshotsDetail(t *testing.T) {
	service, mockTx, _, _, mockUserRepo := newOrderService(t)

	ctx := context.Background()
	customerID := uuid.New()
	businessID := uuid.New()
	detailID := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, customerID).Return(&entity.User{
		ID:   customerID,
		Type: entity.RoleCustomer,
	}, nil)

	detail := &entity.OfferDetail{
		ID:                 detailID,
		Title:              "Premium",
		Revisions:          5,
		DeliveryTimeInDays: 10,
		Price:              decimal.NewFromInt(200),
		Features:           []string{"Logo", "Flyer"},
		OfferType:          "premium",
	}
	offer := &entity.Offer{ID: uuid.New(), UserID: businessID}

	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	txOfferRepo := mockRepo.NewMockOfferRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	mockFactory.EXPECT().NewOfferRepository().Return(txOfferRepo)
	mockFactory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	txOfferRepo.EXPECT().FindDetailByID(ctx, detailID).Return(detail, offer, nil)
	txOrderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(_ context.Context, order *entity.Order) {
			order.ID = uuid.New()
		}).
		Return(nil)
	runTransaction(mockTx, mockFactory)

	order, err := service.CreateOrder(ctx, customerID, detailID)
	require.NoError(t, err)
	assert.Equal(t, customerID, order.CustomerUserID)
	assert.Equal(t, businessID, order.BusinessUserID)
	assert.Equal(t, "Premium", order.Title)
	assert.Equal(t, 5, order.Revisions)
	assert.Equal(t, 10, order.DeliveryTimeInDays)
	assert.True(t, order.Price.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, []string{"Logo", "Flyer"}, order.Features)
	assert.Equal(t, "premium", order.OfferType)
	assert.Equal(t, entity.OrderInProgress, order.Status)
}

func TestOrderService_CreateOrder_BusinessForbidden(t *testing.T) {
	service, _, _, _, mockUserRepo := newOrderService(t)

	ctx := context.Background()
	businessID := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(&entity.User{
		ID:   businessID,
		Type: entity.RoleBusiness,
	}, nil)

	_, err := service.CreateOrder(ctx, businessID, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_CreateOrder_UnknownDetail(t *testing.T) {
	service, mockTx, _, _, mockUserRepo := newOrderService(t)

	ctx := context.Background()
	customerID := uuid.New()
	detailID := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, customerID).Return(&entity.User{
		ID:   customerID,
		Type: entity.RoleCustomer,
	}, nil)

	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	txOfferRepo := mockRepo.NewMockOfferRepository(t)
	mockFactory.EXPECT().NewOfferRepository().Return(txOfferRepo)
	txOfferRepo.EXPECT().FindDetailByID(ctx, detailID).Return(nil, nil, repository.ErrOfferDetailNotFound)
	runTransaction(mockTx, mockFactory)

	_, err := service.CreateOrder(ctx, customerID, detailID)
	require.ErrorIs(t, err, domainerrors.ErrOfferDetailNotFound)
}

func TestOrderService_GetOrder_ParticipantsOnly(t *testing.T) {
	service, _, mockOrderRepo, _, _ := newOrderService(t)

	ctx := context.Background()
	customerID := uuid.New()
	businessID := uuid.New()
	orderID := uuid.New()

	stored := &entity.Order{
		ID:             orderID,
		CustomerUserID: customerID,
		BusinessUserID: businessID,
	}
	mockOrderRepo.EXPECT().FindByID(ctx, orderID).Return(stored, nil).Times(3)

	order, err := service.GetOrder(ctx, customerID, orderID)
	require.NoError(t, err)
	assert.Equal(t, stored, order)

	_, err = service.GetOrder(ctx, businessID, orderID)
	require.NoError(t, err)

	_, err = service.GetOrder(ctx, uuid.New(), orderID)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_UpdateOrderStatus_InvalidValue(t *testing.T) {
	service, _, _, _, _ := newOrderService(t)

	_, err := service.UpdateOrderStatus(context.Background(), uuid.New(), uuid.New(), "shipped")
	require.Error(t, err)

	var fieldErr *domainerrors.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "status", fieldErr.Field())
}

func TestOrderService_UpdateOrderStatus_CustomerForbidden(t *testing.T) {
	service, _, mockOrderRepo, _, _ := newOrderService(t)

	ctx := context.Background()
	customerID := uuid.New()
	orderID := uuid.New()

	mockOrderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{
		ID:             orderID,
		CustomerUserID: customerID,
		BusinessUserID: uuid.New(),
	}, nil)

	_, err := service.UpdateOrderStatus(ctx, customerID, orderID, "completed")
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_UpdateOrderStatus_Success(t *testing.T) {
	service, _, mockOrderRepo, _, _ := newOrderService(t)

	ctx := context.Background()
	businessID := uuid.New()
	orderID := uuid.New()

	mockOrderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{
		ID:             orderID,
		CustomerUserID: uuid.New(),
		BusinessUserID: businessID,
		Status:         entity.OrderInProgress,
	}, nil).Once()

	mockOrderRepo.EXPECT().UpdateStatus(ctx, orderID, entity.OrderCompleted).Return(nil)

	mockOrderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{
		ID:             orderID,
		BusinessUserID: businessID,
		Status:         entity.OrderCompleted,
	}, nil).Once()

	order, err := service.UpdateOrderStatus(ctx, businessID, orderID, "completed")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, order.Status)
}

func TestOrderService_DeleteOrder_StaffOnly(t *testing.T) {
	service, _, mockOrderRepo, _, mockUserRepo := newOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	regularID := uuid.New()
	mockUserRepo.EXPECT().FindByID(ctx, regularID).Return(&entity.User{
		ID:   regularID,
		Type: entity.RoleCustomer,
	}, nil)
	require.ErrorIs(t, service.DeleteOrder(ctx, regularID, orderID), domainerrors.ErrForbidden)

	staffID := uuid.New()
	mockUserRepo.EXPECT().FindByID(ctx, staffID).Return(&entity.User{
		ID:      staffID,
		Type:    entity.RoleCustomer,
		IsStaff: true,
	}, nil)
	mockOrderRepo.EXPECT().Delete(ctx, orderID).Return(nil)
	require.NoError(t, service.DeleteOrder(ctx, staffID, orderID))
}

func TestOrderService_CountInProgress_UnknownBusiness(t *testing.T) {
	service, _, _, _, mockUserRepo := newOrderService(t)

	ctx := context.Background()
	targetID := uuid.New()

	mockUserRepo.EXPECT().FindBusinessByID(ctx, targetID).Return(nil, repository.ErrUserNotFound)

	_, err := service.CountInProgress(ctx, targetID)
	require.ErrorIs(t, err, domainerrors.ErrBusinessUserNotFound)
}

func TestOrderService_CountCompleted_Success(t *testing.T) {
	service, _, mockOrderRepo, _, mockUserRepo := newOrderService(t)

	ctx := context.Background()
	businessID := uuid.New()

	mockUserRepo.EXPECT().FindBusinessByID(ctx, businessID).Return(&entity.User{
		ID:   businessID,
		Type: entity.RoleBusiness,
	}, nil)
	mockOrderRepo.EXPECT().CountByBusinessAndStatus(ctx, businessID, entity.OrderCompleted).Return(int64(4), nil)

	count, err := service.CountCompleted(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
