package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. The composite unique index enforces at most
// one review per (business user, reviewer) pair at the database level.
type ReviewModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BusinessUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_business_reviewer"`
	ReviewerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_business_reviewer"`
	Rating         int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Description    string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"index"`

	Reviewer *UserModel `gorm:"foreignKey:ReviewerID"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
