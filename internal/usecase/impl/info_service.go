package impl

import (
	"context"
	"math"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type infoService struct {
	userRepo   repository.UserRepository
	offerRepo  repository.OfferRepository
	reviewRepo repository.ReviewRepository
}

// InfoServiceParams holds dependencies for InfoService, injected by Fx.
type InfoServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	OfferRepo  repository.OfferRepository
	ReviewRepo repository.ReviewRepository
}

// NewInfoService creates a new info service instance.
func NewInfoService(params InfoServiceParams) usecase.InfoUsecase {
	return &infoService{
		userRepo:   params.UserRepo,
		offerRepo:  params.OfferRepo,
		reviewRepo: params.ReviewRepo,
	}
}

// BaseInfo computes the public platform statistics on demand. The average
// rating is rounded to one decimal and reads 0 on an empty store.
func (s *infoService) BaseInfo(ctx context.Context) (*entity.BaseInfo, error) {
	reviewCount, err := s.reviewRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}

	averageRating := 0.0
	if reviewCount > 0 {
		avg, err := s.reviewRepo.AverageRating(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to compute average rating")
		}
		averageRating = math.Round(avg*10) / 10
	}

	businessCount, err := s.userRepo.CountByType(ctx, entity.RoleBusiness)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count business profiles")
	}

	offerCount, err := s.offerRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count offers")
	}

	return &entity.BaseInfo{
		ReviewCount:          reviewCount,
		AverageRating:        averageRating,
		BusinessProfileCount: businessCount,
		OfferCount:           offerCount,
	}, nil
}
