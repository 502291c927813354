package impl

import (
	"context"
	"fmt"

	"marketplace/config"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	fallbackDefaultPageSize = 6
	fallbackMaxPageSize     = 20
)

type offerService struct {
	txManager repository.TransactionManager
	offerRepo repository.OfferRepository
	userRepo  repository.UserRepository
	config    *config.Config
}

// OfferServiceParams holds dependencies for OfferService, injected by Fx.
type OfferServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OfferRepo repository.OfferRepository
	UserRepo  repository.UserRepository
	Config    *config.Config
}

// NewOfferService creates a new offer service instance.
func NewOfferService(params OfferServiceParams) usecase.OfferUsecase {
	return &offerService{
		txManager: params.TxManager,
		offerRepo: params.OfferRepo,
		userRepo:  params.UserRepo,
		config:    params.Config,
	}
}

// CreateOffer publishes a new offer with all of its tiers in one transaction.
func (s *offerService) CreateOffer(ctx context.Context, actorID uuid.UUID, input usecase.CreateOfferInput) (*entity.Offer, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer creator")
	}
	if !actor.IsBusiness() {
		return nil, domainerrors.ErrForbidden
	}

	if len(input.Details) < entity.MinOfferDetails {
		return nil, domainerrors.NewFieldError("details",
			fmt.Sprintf("An offer requires at least %d details", entity.MinOfferDetails))
	}

	details := make([]*entity.OfferDetail, 0, len(input.Details))
	for i, detailInput := range input.Details {
		detail := &entity.OfferDetail{
			Title:              detailInput.Title,
			Revisions:          detailInput.Revisions,
			DeliveryTimeInDays: detailInput.DeliveryTimeInDays,
			Price:              detailInput.Price,
			Features:           detailInput.Features,
			OfferType:          detailInput.OfferType,
		}
		if err := validateDetailValues(detail, i); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	offer := &entity.Offer{
		UserID:      actorID,
		Title:       input.Title,
		Image:       input.Image,
		Description: input.Description,
		Details:     details,
	}

	if err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewOfferRepository().Create(ctx, offer)
	}); err != nil {
		return nil, err
	}

	return offer, nil
}

// validateDetailValues rejects negative numeric fields and a missing tier label.
func validateDetailValues(detail *entity.OfferDetail, index int) error {
	field := fmt.Sprintf("details[%d]", index)

	if detail.OfferType == "" {
		return domainerrors.NewFieldError(field, "offer_type must not be empty")
	}
	if detail.Revisions < 0 {
		return domainerrors.NewFieldError(field, "revisions must not be negative")
	}
	if detail.DeliveryTimeInDays < 0 {
		return domainerrors.NewFieldError(field, "delivery_time_in_days must not be negative")
	}
	if detail.Price.IsNegative() {
		return domainerrors.NewFieldError(field, "price must not be negative")
	}

	return nil
}

// ListOffers retrieves one page of the public catalog with creator details.
func (s *offerService) ListOffers(ctx context.Context, input usecase.ListOffersInput) (*usecase.OfferPage, error) {
	page, pageSize := s.clampPagination(input.Page, input.PageSize)

	offerList, total, err := s.offerRepo.List(ctx, &repository.OfferListQuery{
		CreatorID:       input.CreatorID,
		MinPrice:        input.MinPrice,
		MaxDeliveryTime: input.MaxDeliveryTime,
		Search:          input.Search,
		Ordering:        input.Ordering,
		Page:            page,
		PageSize:        pageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	items, err := s.attachCreators(ctx, offerList)
	if err != nil {
		return nil, err
	}

	return &usecase.OfferPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// clampPagination applies the configured page size bounds.
func (s *offerService) clampPagination(page, pageSize int) (int, int) {
	defaultSize := fallbackDefaultPageSize
	maxSize := fallbackMaxPageSize
	if s.config != nil && s.config.Pagination != nil {
		if s.config.Pagination.DefaultPageSize > 0 {
			defaultSize = s.config.Pagination.DefaultPageSize
		}
		if s.config.Pagination.MaxPageSize > 0 {
			maxSize = s.config.Pagination.MaxPageSize
		}
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}

	return page, pageSize
}

// attachCreators resolves the owning account of every offer, deduplicating lookups.
func (s *offerService) attachCreators(ctx context.Context, offerList []*entity.Offer) ([]*usecase.OfferWithCreator, error) {
	creators := make(map[uuid.UUID]*entity.User)
	items := make([]*usecase.OfferWithCreator, 0, len(offerList))

	for _, offer := range offerList {
		creator, ok := creators[offer.UserID]
		if !ok {
			user, err := s.userRepo.FindByID(ctx, offer.UserID)
			if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
				return nil, errors.Wrap(err, "failed to find offer creator")
			}
			creator = user
			creators[offer.UserID] = creator
		}

		items = append(items, &usecase.OfferWithCreator{
			Offer:   offer,
			Creator: creator,
		})
	}

	return items, nil
}

// GetOffer retrieves a single offer together with its creator.
func (s *offerService) GetOffer(ctx context.Context, id uuid.UUID) (*usecase.OfferWithCreator, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, domainerrors.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	creator, err := s.userRepo.FindByID(ctx, offer.UserID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find offer creator")
	}

	return &usecase.OfferWithCreator{Offer: offer, Creator: creator}, nil
}

// UpdateOffer applies a partial update on behalf of the offer owner. Detail
// patches are matched by tier id; a patch naming a foreign tier fails the
// whole update before anything is written.
func (s *offerService) UpdateOffer(ctx context.Context, actorID, id uuid.UUID, input usecase.UpdateOfferInput) (*entity.Offer, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, domainerrors.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	if offer.UserID != actorID {
		return nil, domainerrors.ErrForbidden
	}

	if input.Title != nil {
		offer.Title = *input.Title
	}
	if input.Image != nil {
		offer.Image = *input.Image
	}
	if input.Description != nil {
		offer.Description = *input.Description
	}

	for i, patch := range input.Details {
		detail := offer.DetailByID(patch.ID)
		if detail == nil {
			return nil, domainerrors.ErrUnknownDetail
		}

		if patch.Title != nil {
			detail.Title = *patch.Title
		}
		if patch.Revisions != nil {
			detail.Revisions = *patch.Revisions
		}
		if patch.DeliveryTimeInDays != nil {
			detail.DeliveryTimeInDays = *patch.DeliveryTimeInDays
		}
		if patch.Price != nil {
			detail.Price = *patch.Price
		}
		if patch.Features != nil {
			detail.Features = patch.Features
		}
		if patch.OfferType != nil {
			detail.OfferType = *patch.OfferType
		}

		if err := validateDetailValues(detail, i); err != nil {
			return nil, err
		}
	}

	if err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewOfferRepository().Update(ctx, offer)
	}); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored state, including updated_at.
	updated, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload offer after update")
	}

	return updated, nil
}

// DeleteOffer removes an offer and its tiers on behalf of the owner.
func (s *offerService) DeleteOffer(ctx context.Context, actorID, id uuid.UUID) error {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return domainerrors.ErrOfferNotFound
		}

		return errors.Wrap(err, "failed to find offer by id")
	}

	if offer.UserID != actorID {
		return domainerrors.ErrForbidden
	}

	if err := s.offerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return domainerrors.ErrOfferNotFound
		}

		return errors.Wrap(err, "failed to delete offer")
	}

	return nil
}

// GetOfferDetail retrieves a single pricing tier.
func (s *offerService) GetOfferDetail(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	detail, _, err := s.offerRepo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferDetailNotFound) {
			return nil, domainerrors.ErrOfferDetailNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer detail by id")
	}

	return detail, nil
}
