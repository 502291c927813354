package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// InfoUsecase defines the interface for platform-wide aggregate statistics.
type InfoUsecase interface {
	// BaseInfo computes the public platform statistics on demand.
	BaseInfo(ctx context.Context) (*entity.BaseInfo, error)
}
