package impl

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	mockRepo "marketplace/internal/mocks/repository"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInfoService(t *testing.T) (usecase.InfoUsecase, *mockRepo.MockUserRepository, *mockRepo.MockOfferRepository, *mockRepo.MockReviewRepository) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	mockOfferRepo := mockRepo.NewMockOfferRepository(t)
	mockReviewRepo := mockRepo.NewMockReviewRepository(t)

	service := NewInfoService(InfoServiceParams{
		UserRepo:   mockUserRepo,
		OfferRepo:  mockOfferRepo,
		ReviewRepo: mockReviewRepo,
	})

	return service, mockUserRepo, mockOfferRepo, mockReviewRepo
}

func TestInfoService_BaseInfo_EmptyStore(t *testing.T) {
	service, mockUserRepo, mockOfferRepo, mockReviewRepo := newInfoService(t)

	ctx := context.Background()

	// No reviews means the average is never queried.
	mockReviewRepo.EXPECT().Count(ctx).Return(int64(0), nil)
	mockUserRepo.EXPECT().CountByType(ctx, entity.RoleBusiness).Return(int64(0), nil)
	mockOfferRepo.EXPECT().Count(ctx).Return(int64(0), nil)

	info, err := service.BaseInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.ReviewCount)
	assert.Equal(t, 0.0, info.AverageRating)
	assert.Equal(t, int64(0), info.BusinessProfileCount)
	assert.Equal(t, int64(0), info.OfferCount)
}

func TestInfoService_BaseInfo_RoundsAverageToOneDecimal(t *testing.T) {
	service, mockUserRepo, mockOfferRepo, mockReviewRepo := newInfoService(t)

	ctx := context.Background()

	mockReviewRepo.EXPECT().Count(ctx).Return(int64(3), nil)
	mockReviewRepo.EXPECT().AverageRating(ctx).Return(4.3333333, nil)
	mockUserRepo.EXPECT().CountByType(ctx, entity.RoleBusiness).Return(int64(7), nil)
	mockOfferRepo.EXPECT().Count(ctx).Return(int64(12), nil)

	info, err := service.BaseInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.ReviewCount)
	assert.Equal(t, 4.3, info.AverageRating)
	assert.Equal(t, int64(7), info.BusinessProfileCount)
	assert.Equal(t, int64(12), info.OfferCount)
}
