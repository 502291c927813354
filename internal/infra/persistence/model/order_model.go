package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. The tier fields are copied from the offer
// detail at purchase time, so later offer edits never change an existing order.
type OrderModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerUserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BusinessUserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title              string          `gorm:"type:varchar(255);not null"`
	Revisions          int             `gorm:"not null"`
	DeliveryTimeInDays int             `gorm:"not null"`
	Price              decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Features           []string        `gorm:"type:jsonb;serializer:json"`
	OfferType          string          `gorm:"type:varchar(20);not null"`
	Status             string          `gorm:"type:varchar(20);not null;default:'in_progress';index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Customer *UserModel `gorm:"foreignKey:CustomerUserID"`
	Business *UserModel `gorm:"foreignKey:BusinessUserID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
