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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewService(t *testing.T) (usecase.ReviewUsecase, *mockRepo.MockTransactionManager, *mockRepo.MockReviewRepository, *mockRepo.MockUserRepository) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockReviewRepo := mockRepo.NewMockReviewRepository(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)

	service := NewReviewService(ReviewServiceParams{
		TxManager:  mockTx,
		ReviewRepo: mockReviewRepo,
		UserRepo:   mockUserRepo,
	})

	return service, mockTx, mockReviewRepo, mockUserRepo
}

func expectCustomer(mockUserRepo *mockRepo.MockUserRepository, ctx context.Context, id uuid.UUID) {
	mockUserRepo.EXPECT().FindByID(ctx, id).Return(&entity.User{
		ID:   id,
		Type: entity.RoleCustomer,
	}, nil)
}

func TestReviewService_CreateReview_Success(t *testing.T) {
	service, mockTx, _, mockUserRepo := newReviewService(t)

	ctx := context.Background()
	reviewerID := uuid.New()
	businessID := uuid.New()

	expectCustomer(mockUserRepo, ctx, reviewerID)
	mockUserRepo.EXPECT().FindBusinessByID(ctx, businessID).Return(&entity.User{
		ID:   businessID,
		Type: entity.RoleBusiness,
	}, nil)

	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	txReviewRepo := mockRepo.NewMockReviewRepository(t)
	mockFactory.EXPECT().NewReviewRepository().Return(txReviewRepo)
	txReviewRepo.EXPECT().ExistsForPair(ctx, businessID, reviewerID).Return(false, nil)
	txReviewRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Review")).
		Run(func(_ context.Context, review *entity.Review) {
			review.ID = uuid.New()
		}).
		Return(nil)
	runTransaction(mockTx, mockFactory)

	review, err := service.CreateReview(ctx, reviewerID, usecase.CreateReviewInput{
		BusinessUserID: businessID,
		Rating:         4,
		Description:    "Solid work",
	})
	require.NoError(t, err)
	assert.Equal(t, reviewerID, review.ReviewerID)
	assert.Equal(t, businessID, review.BusinessUserID)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewService_CreateReview_Duplicate(t *testing.T) {
	service, mockTx, _, mockUserRepo := newReviewService(t)

	ctx := context.Background()
	reviewerID := uuid.New()
	businessID := uuid.New()

	expectCustomer(mockUserRepo, ctx, reviewerID)
	mockUserRepo.EXPECT().FindBusinessByID(ctx, businessID).Return(&entity.User{
		ID:   businessID,
		Type: entity.RoleBusiness,
	}, nil)

	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	txReviewRepo := mockRepo.NewMockReviewRepository(t)
	mockFactory.EXPECT().NewReviewRepository().Return(txReviewRepo)
	txReviewRepo.EXPECT().ExistsForPair(ctx, businessID, reviewerID).Return(true, nil)
	runTransaction(mockTx, mockFactory)

	_, err := service.CreateReview(ctx, reviewerID, usecase.CreateReviewInput{
		BusinessUserID: businessID,
		Rating:         5,
	})
	require.ErrorIs(t, err, domainerrors.ErrDuplicateReview)
}

func TestReviewService_CreateReview_DuplicateConstraintRace(t *testing.T) {
	service, mockTx, _, mockUserRepo := newReviewService(t)

	ctx := context.Background()
	reviewerID := uuid.New()
	businessID := uuid.New()

	expectCustomer(mockUserRepo, ctx, reviewerID)
	mockUserRepo.EXPECT().FindBusinessByID(ctx, businessID).Return(&entity.User{
		ID:   businessID,
		Type: entity.RoleBusiness,
	}, nil)

	// The pre-check passes but a concurrent insert wins; the unique
	// constraint reports the duplicate instead.
	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	txReviewRepo := mockRepo.NewMockReviewRepository(t)
	mockFactory.EXPECT().NewReviewRepository().Return(txReviewRepo)
	txReviewRepo.EXPECT().ExistsForPair(ctx, businessID, reviewerID).Return(false, nil)
	txReviewRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Review")).
		Return(repository.ErrDuplicateReview)
	runTransaction(mockTx, mockFactory)

	_, err := service.CreateReview(ctx, reviewerID, usecase.CreateReviewInput{
		BusinessUserID: businessID,
		Rating:         5,
	})
	require.ErrorIs(t, err, domainerrors.ErrDuplicateReview)
}

func TestReviewService_CreateReview_InvalidRating(t *testing.T) {
	service, _, _, mockUserRepo := newReviewService(t)

	ctx := context.Background()
	reviewerID := uuid.New()

	expectCustomer(mockUserRepo, ctx, reviewerID)

	_, err := service.CreateReview(ctx, reviewerID, usecase.CreateReviewInput{
		BusinessUserID: uuid.New(),
		Rating:         6,
	})
	require.Error(t, err)

	var fieldErr *domainerrors.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "rating", fieldErr.Field())
}

func TestReviewService_CreateReview_UnknownBusiness(t *testing.T) {
	service, _, _, mockUserRepo := newReviewService(t)

	ctx := context.Background()
	reviewerID := uuid.New()
	businessID := uuid.New()

	expectCustomer(mockUserRepo, ctx, reviewerID)
	mockUserRepo.EXPECT().FindBusinessByID(ctx, businessID).Return(nil, repository.ErrUserNotFound)

	_, err := service.CreateReview(ctx, reviewerID, usecase.CreateReviewInput{
		BusinessUserID: businessID,
		Rating:         3,
	})
	require.ErrorIs(t, err, domainerrors.ErrBusinessUserNotFound)
}

func TestReviewService_CreateReview_BusinessActorForbidden(t *testing.T) {
	service, _, _, mockUserRepo := newReviewService(t)

	ctx := context.Background()
	actorID := uuid.New()

	mockUserRepo.EXPECT().FindByID(ctx, actorID).Return(&entity.User{
		ID:   actorID,
		Type: entity.RoleBusiness,
	}, nil)

	_, err := service.CreateReview(ctx, actorID, usecase.CreateReviewInput{
		BusinessUserID: uuid.New(),
		Rating:         5,
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestReviewService_UpdateReview_ReviewerOnly(t *testing.T) {
	service, _, mockReviewRepo, _ := newReviewService(t)

	ctx := context.Background()
	reviewerID := uuid.New()
	reviewID := uuid.New()

	mockReviewRepo.EXPECT().FindByID(ctx, reviewID).Return(&entity.Review{
		ID:         reviewID,
		ReviewerID: reviewerID,
		Rating:     3,
	}, nil)

	newRating := 5
	_, err := service.UpdateReview(ctx, uuid.New(), reviewID, usecase.UpdateReviewInput{Rating: &newRating})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestReviewService_UpdateReview_Success(t *testing.T) {
	service, _, mockReviewRepo, _ := newReviewService(t)

	ctx := context.Background()
	reviewerID := uuid.New()
	reviewID := uuid.New()

	mockReviewRepo.EXPECT().FindByID(ctx, reviewID).Return(&entity.Review{
		ID:          reviewID,
		ReviewerID:  reviewerID,
		Rating:      3,
		Description: "Okay",
	}, nil).Once()

	mockReviewRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Review")).
		Run(func(_ context.Context, review *entity.Review) {
			assert.Equal(t, 5, review.Rating)
			assert.Equal(t, "Okay", review.Description)
		}).
		Return(nil)

	updated := &entity.Review{ID: reviewID, ReviewerID: reviewerID, Rating: 5, Description: "Okay"}
	mockReviewRepo.EXPECT().FindByID(ctx, reviewID).Return(updated, nil).Once()

	newRating := 5
	review, err := service.UpdateReview(ctx, reviewerID, reviewID, usecase.UpdateReviewInput{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, updated, review)
}

func TestReviewService_DeleteReview_ReviewerOnly(t *testing.T) {
	service, _, mockReviewRepo, _ := newReviewService(t)

	ctx := context.Background()
	reviewerID := uuid.New()
	reviewID := uuid.New()

	mockReviewRepo.EXPECT().FindByID(ctx, reviewID).Return(&entity.Review{
		ID:         reviewID,
		ReviewerID: reviewerID,
	}, nil).Twice()

	require.ErrorIs(t, service.DeleteReview(ctx, uuid.New(), reviewID), domainerrors.ErrForbidden)

	mockReviewRepo.EXPECT().Delete(ctx, reviewID).Return(nil)
	require.NoError(t, service.DeleteReview(ctx, reviewerID, reviewID))
}

func TestReviewService_ListReviews_PassesQuery(t *testing.T) {
	service, _, mockReviewRepo, _ := newReviewService(t)

	ctx := context.Background()
	businessID := uuid.New()

	stored := []*entity.Review{{ID: uuid.New(), BusinessUserID: businessID, Rating: 5}}
	mockReviewRepo.EXPECT().
		List(ctx, mock.AnythingOfType("*repository.ReviewListQuery")).
		Run(func(_ context.Context, query *repository.ReviewListQuery) {
			require.NotNil(t, query.BusinessUserID)
			assert.Equal(t, businessID, *query.BusinessUserID)
			assert.Equal(t, "-rating", query.Ordering)
		}).
		Return(stored, nil)

	reviews, err := service.ListReviews(ctx, usecase.ListReviewsInput{
		BusinessUserID: &businessID,
		Ordering:       "-rating",
	})
	require.NoError(t, err)
	assert.Equal(t, stored, reviews)
}
