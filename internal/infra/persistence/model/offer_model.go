package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferModel mirrors the 'offers' table. Every offer belongs to a business user and
// carries its pricing tiers as OfferDetailModel rows.
type OfferModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Image       string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`

	User    *UserModel          `gorm:"foreignKey:UserID"`
	Details []*OfferDetailModel `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OfferModel) TableName() string {
	return "offers"
}

// OfferDetailModel mirrors the 'offer_details' table, one row per pricing tier.
// Features is stored as a jsonb array of strings.
type OfferDetailModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OfferID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title              string          `gorm:"type:varchar(255);not null"`
	Revisions          int             `gorm:"not null"`
	DeliveryTimeInDays int             `gorm:"not null"`
	Price              decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Features           []string        `gorm:"type:jsonb;serializer:json"`
	OfferType          string          `gorm:"type:varchar(20);not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (OfferDetailModel) TableName() string {
	return "offer_details"
}
