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

// offerAggregateJoin folds every offer's tiers into its cheapest price and
// fastest delivery time so the list query can filter and sort on them.
const offerAggregateJoin = `JOIN (
	SELECT offer_id,
	       MIN(price) AS min_price,
	       MIN(delivery_time_in_days) AS min_delivery_time
	FROM offer_details
	GROUP BY offer_id
) agg ON agg.offer_id = offers.id`

// offerRepository implements the repository.OfferRepository interface using GORM.
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository is the constructor for offerRepository.
func NewOfferRepository(db *gorm.DB) repository.OfferRepository {
	return &offerRepository{
		db: db,
	}
}

// Create persists an offer and all of its tiers in one insert with associations.
func (repo *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	offerM := fromOfferDomain(offer)

	if err := repo.db.WithContext(ctx).Create(offerM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("offer creator does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required offer information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer")
	}

	// Carry the generated IDs and timestamps back onto the entity tree.
	offer.ID = offerM.ID
	offer.CreatedAt = offerM.CreatedAt
	offer.UpdatedAt = offerM.UpdatedAt
	for i, detailM := range offerM.Details {
		offer.Details[i].ID = detailM.ID
		offer.Details[i].OfferID = detailM.OfferID
	}

	return nil
}

// FindByID retrieves a single offer with its tiers loaded.
func (repo *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offerM model.OfferModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Preload("Details").
		Where("id = ?", id).
		First(&offerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	return toOfferDomain(&offerM), nil
}

// List retrieves one page of offers matching the query plus the total match count.
func (repo *offerRepository) List(ctx context.Context, query *repository.OfferListQuery) ([]*entity.Offer, int64, error) {
	base := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.OfferModel{}).
		Joins(offerAggregateJoin)

	if query.CreatorID != nil {
		base = base.Where("offers.user_id = ?", *query.CreatorID)
	}
	if query.MinPrice != nil {
		base = base.Where("agg.min_price >= ?", *query.MinPrice)
	}
	if query.MaxDeliveryTime != nil {
		base = base.Where("agg.min_delivery_time <= ?", *query.MaxDeliveryTime)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.Where("offers.title ILIKE ? OR offers.description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count offers")
	}

	var offerModels []*model.OfferModel
	if err := base.
		Select("offers.*").
		Order(offerOrderClause(query.Ordering)).
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Preload("Details").
		Find(&offerModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list offers")
	}

	offerList := make([]*entity.Offer, 0, len(offerModels))
	for _, offerM := range offerModels {
		offerList = append(offerList, toOfferDomain(offerM))
	}

	return offerList, total, nil
}

// offerOrderClause maps an ordering key to a SQL order clause, falling back to
// newest first for unknown or empty keys.
func offerOrderClause(ordering string) string {
	switch ordering {
	case repository.OfferOrderUpdatedAtAsc:
		return "offers.updated_at ASC"
	case repository.OfferOrderMinPriceAsc:
		return "agg.min_price ASC"
	case repository.OfferOrderMinPriceDesc:
		return "agg.min_price DESC"
	default:
		return "offers.updated_at DESC"
	}
}

// Update persists changed offer fields and overwrites the tiers present in
// offer.Details. Tiers absent from the slice stay as they are.
func (repo *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Where("id = ?", offer.ID).
		Updates(map[string]any{
			"title":       offer.Title,
			"image":       offer.Image,
			"description": offer.Description,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	for _, detail := range offer.Details {
		// Updates with a model value (not a map) so the jsonb serializer on
		// Features applies; Select forces zero values through as well.
		result := repo.db.WithContext(ctx).
			Model(&model.OfferDetailModel{}).
			Where("id = ? AND offer_id = ?", detail.ID, offer.ID).
			Select("title", "revisions", "delivery_time_in_days", "price", "features", "offer_type").
			Updates(fromOfferDetailDomain(detail))
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to update offer detail")
		}
		if result.RowsAffected == 0 {
			return repository.ErrOfferDetailNotFound
		}
	}

	return nil
}

// Delete removes an offer; the CASCADE constraint removes its tiers.
func (repo *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OfferModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete offer")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// FindDetailByID retrieves a single tier together with its parent offer.
func (repo *offerRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, *entity.Offer, error) {
	var detailM model.OfferDetailModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Where("id = ?", id).
		First(&detailM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, repository.ErrOfferDetailNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to find offer detail by id")
	}

	offer, err := repo.FindByID(ctx, detailM.OfferID)
	if err != nil {
		return nil, nil, err
	}

	return toOfferDetailDomain(&detailM), offer, nil
}

// Count counts all offers on the platform.
func (repo *offerRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Model(&model.OfferModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count offers")
	}

	return count, nil
}

// --- Mapper Functions ---

// toOfferDomain converts a GORM OfferModel to a domain Offer entity.
func toOfferDomain(data *model.OfferModel) *entity.Offer {
	if data == nil {
		return nil
	}

	details := make([]*entity.OfferDetail, 0, len(data.Details))
	for _, detailM := range data.Details {
		details = append(details, toOfferDetailDomain(detailM))
	}

	return &entity.Offer{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Image:       data.Image,
		Description: data.Description,
		Details:     details,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromOfferDomain converts a domain Offer entity to a GORM OfferModel for persistence.
func fromOfferDomain(data *entity.Offer) *model.OfferModel {
	if data == nil {
		return nil
	}

	details := make([]*model.OfferDetailModel, 0, len(data.Details))
	for _, detail := range data.Details {
		details = append(details, fromOfferDetailDomain(detail))
	}

	return &model.OfferModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Image:       data.Image,
		Description: data.Description,
		Details:     details,
	}
}

// toOfferDetailDomain converts a GORM OfferDetailModel to a domain OfferDetail entity.
func toOfferDetailDomain(data *model.OfferDetailModel) *entity.OfferDetail {
	if data == nil {
		return nil
	}

	return &entity.OfferDetail{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           data.Features,
		OfferType:          data.OfferType,
	}
}

// fromOfferDetailDomain converts a domain OfferDetail entity to a GORM OfferDetailModel.
func fromOfferDetailDomain(data *entity.OfferDetail) *model.OfferDetailModel {
	if data == nil {
		return nil
	}

	return &model.OfferDetailModel{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           data.Features,
		OfferType:          data.OfferType,
	}
}
