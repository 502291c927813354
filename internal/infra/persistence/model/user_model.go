// Package model defines the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// Type is the account discriminator ('customer' or 'business') and never changes after
// registration.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     string    `gorm:"type:varchar(150);unique;not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Type         string    `gorm:"type:varchar(20);not null;index"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	File         string    `gorm:"type:varchar(255)"`
	Location     string    `gorm:"type:varchar(255)"`
	Tel          string    `gorm:"type:varchar(50)"`
	Description  string    `gorm:"type:text"`
	WorkingHours string    `gorm:"type:varchar(100)"`
	IsStaff      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Offers  []OfferModel  `gorm:"foreignKey:UserID"`
	Reviews []ReviewModel `gorm:"foreignKey:BusinessUserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
