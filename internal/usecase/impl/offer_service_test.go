package impl

import (
	"context"
	"testing"

	"marketplace/config"
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

// runTransaction wires the transaction manager mock so Execute runs the
// callback against the given factory, mirroring a committed transaction.
func runTransaction(mockTx *mockRepo.MockTransactionManager, factory *mockRepo.MockRepositoryFactory) {
	mockTx.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func newOfferService(t *testing.T) (usecase.OfferUsecase, *mockRepo.MockTransactionManager, *mockRepo.MockOfferRepository, *mockRepo.MockUserRepository) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockOfferRepo := mockRepo.NewMockOfferRepository(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)

	cfg := &config.Config{
		Pagination: &config.PaginationConfig{DefaultPageSize: 6, MaxPageSize: 20},
	}

	service := NewOfferService(OfferServiceParams{
		TxManager: mockTx,
		OfferRepo: mockOfferRepo,
		UserRepo:  mockUserRepo,
		Config:    cfg,
	})

	return service, mockTx, mockOfferRepo, mockUserRepo
}

func threeDetails() []usecase.OfferDetailInput {
	return []usecase.OfferDetailInput{
		{Title: "Basic", Revisions: 1, DeliveryTimeInDays: 5, Price: decimal.NewFromInt(50), Features: []string{"Logo"}, OfferType: "basic"},
		{Title: "Standard", Revisions: 3, DeliveryTimeInDays: 7, Price: decimal.NewFromInt(100), Features: []string{"Logo", "Card"}, OfferType: "standard"},
		{Title: "Premium", Revisions: 5, DeliveryTimeInDays: 10, Price: decimal.NewFromInt(200), Features: []string{"Logo", "Card", "Flyer"}, OfferType: "premium"},
	}
}

func TestOfferService_CreateOffer_Success(t *testing.T) {
	service, mockTx, _, mockUserRepo := newOfferService(t)

	ctx := context.Background()
	businessID := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(&entity.User{
		ID:   businessID,
		Type: entity.RoleBusiness,
	}, nil)

	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	txOfferRepo := mockRepo.NewMockOfferRepository(t)
	mockFactory.EXPECT().NewOfferRepository().Return(txOfferRepo)
	txOfferRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Offer")).
		Run(func(_ context.Context, offer *entity.Offer) {
			offer.ID = uuid.New()
		}).
		Return(nil)
	runTransaction(mockTx, mockFactory)

	offer, err := service.CreateOffer(ctx, businessID, usecase.CreateOfferInput{
		Title:   "Graphic design package",
		Details: threeDetails(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, offer.ID)
	assert.Equal(t, businessID, offer.UserID)
	assert.Len(t, offer.Details, 3)
}

func TestOfferService_CreateOffer_CustomerForbidden(t *testing.T) {
	service, _, _, mockUserRepo := newOfferService(t)

	ctx := context.Background()
	customerID := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, customerID).Return(&entity.User{
		ID:   customerID,
		Type: entity.RoleCustomer,
	}, nil)

	_, err := service.CreateOffer(ctx, customerID, usecase.CreateOfferInput{
		Title:   "Not allowed",
		Details: threeDetails(),
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOfferService_CreateOffer_TooFewDetails(t *testing.T) {
	service, _, _, mockUserRepo := newOfferService(t)

	ctx := context.Background()
	businessID := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(&entity.User{
		ID:   businessID,
		Type: entity.RoleBusiness,
	}, nil)

	_, err := service.CreateOffer(ctx, businessID, usecase.CreateOfferInput{
		Title:   "Thin offer",
		Details: threeDetails()[:2],
	})
	require.Error(t, err)

	var fieldErr *domainerrors.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "details", fieldErr.Field())
}

func TestOfferService_CreateOffer_NegativePrice(t *testing.T) {
	service, _, _, mockUserRepo := newOfferService(t)

	ctx := context.Background()
	businessID := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, businessID).Return(&entity.User{
		ID:   businessID,
		Type: entity.RoleBusiness,
	}, nil)

	details := threeDetails()
	details[1].Price = decimal.NewFromInt(-10)

	_, err := service.CreateOffer(ctx, businessID, usecase.CreateOfferInput{
		Title:   "Broken pricing",
		Details: details,
	})
	require.Error(t, err)

	var fieldErr *domainerrors.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "details[1]", fieldErr.Field())
}

func TestOfferService_ListOffers_ClampsPageSizeAndAttachesCreators(t *testing.T) {
	service, _, mockOfferRepo, mockUserRepo := newOfferService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	creator := &entity.User{ID: creatorID, Username: "studio", Type: entity.RoleBusiness}

	offers := []*entity.Offer{
		{ID: uuid.New(), UserID: creatorID},
		{ID: uuid.New(), UserID: creatorID},
	}

	mockOfferRepo.EXPECT().
		List(ctx, mock.AnythingOfType("*repository.OfferListQuery")).
		Run(func(_ context.Context, query *repository.OfferListQuery) {
			assert.Equal(t, 1, query.Page)
			assert.Equal(t, 20, query.PageSize)
		}).
		Return(offers, int64(2), nil)

	// Two offers by the same creator resolve through a single lookup.
	mockUserRepo.EXPECT().FindByID(ctx, creatorID).Return(creator, nil).Once()

	page, err := service.ListOffers(ctx, usecase.ListOffersInput{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 20, page.PageSize)
	require.Len(t, page.Items, 2)
	assert.Equal(t, creator, page.Items[0].Creator)
	assert.Equal(t, creator, page.Items[1].Creator)
}

func TestOfferService_UpdateOffer_NotOwnerForbidden(t *testing.T) {
	service, _, mockOfferRepo, _ := newOfferService(t)

	ctx := context.Background()
	offerID := uuid.New()

	mockOfferRepo.EXPECT().FindByID(ctx, offerID).Return(&entity.Offer{
		ID:     offerID,
		UserID: uuid.New(),
	}, nil)

	newTitle := "Hijacked"
	_, err := service.UpdateOffer(ctx, uuid.New(), offerID, usecase.UpdateOfferInput{Title: &newTitle})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOfferService_UpdateOffer_UnknownDetail(t *testing.T) {
	service, _, mockOfferRepo, _ := newOfferService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	offerID := uuid.New()

	mockOfferRepo.EXPECT().FindByID(ctx, offerID).Return(&entity.Offer{
		ID:     offerID,
		UserID: ownerID,
		Details: []*entity.OfferDetail{
			{ID: uuid.New(), OfferType: "basic", Price: decimal.NewFromInt(50)},
		},
	}, nil)

	_, err := service.UpdateOffer(ctx, ownerID, offerID, usecase.UpdateOfferInput{
		Details: []usecase.OfferDetailPatch{{ID: uuid.New()}},
	})
	require.ErrorIs(t, err, domainerrors.ErrUnknownDetail)
}

func TestOfferService_UpdateOffer_Success(t *testing.T) {
	service, mockTx, mockOfferRepo, _ := newOfferService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	offerID := uuid.New()
	detailID := uuid.New()

	stored := &entity.Offer{
		ID:     offerID,
		UserID: ownerID,
		Title:  "Old title",
		Details: []*entity.OfferDetail{
			{ID: detailID, Title: "Basic", OfferType: "basic", Price: decimal.NewFromInt(50)},
		},
	}
	mockOfferRepo.EXPECT().FindByID(ctx, offerID).Return(stored, nil).Once()

	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	txOfferRepo := mockRepo.NewMockOfferRepository(t)
	mockFactory.EXPECT().NewOfferRepository().Return(txOfferRepo)
	txOfferRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Offer")).
		Run(func(_ context.Context, offer *entity.Offer) {
			assert.Equal(t, "New title", offer.Title)
			assert.True(t, offer.Details[0].Price.Equal(decimal.NewFromInt(75)))
		}).
		Return(nil)
	runTransaction(mockTx, mockFactory)

	reloaded := &entity.Offer{ID: offerID, UserID: ownerID, Title: "New title"}
	mockOfferRepo.EXPECT().FindByID(ctx, offerID).Return(reloaded, nil).Once()

	newTitle := "New title"
	newPrice := decimal.NewFromInt(75)
	offer, err := service.UpdateOffer(ctx, ownerID, offerID, usecase.UpdateOfferInput{
		Title: &newTitle,
		Details: []usecase.OfferDetailPatch{
			{ID: detailID, Price: &newPrice},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, reloaded, offer)
}

func TestOfferService_DeleteOffer_OwnerOnly(t *testing.T) {
	service, _, mockOfferRepo, _ := newOfferService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	offerID := uuid.New()

	mockOfferRepo.EXPECT().FindByID(ctx, offerID).Return(&entity.Offer{
		ID:     offerID,
		UserID: ownerID,
	}, nil).Twice()

	require.ErrorIs(t, service.DeleteOffer(ctx, uuid.New(), offerID), domainerrors.ErrForbidden)

	mockOfferRepo.EXPECT().Delete(ctx, offerID).Return(nil)
	require.NoError(t, service.DeleteOffer(ctx, ownerID, offerID))
}

func TestOfferService_GetOfferDetail_NotFound(t *testing.T) {
	service, _, mockOfferRepo, _ := newOfferService(t)

	ctx := context.Background()
	detailID := uuid.New()

	mockOfferRepo.EXPECT().FindDetailByID(ctx, detailID).Return(nil, nil, repository.ErrOfferDetailNotFound)

	_, err := service.GetOfferDetail(ctx, detailID)
	require.ErrorIs(t, err, domainerrors.ErrOfferDetailNotFound)
}
