// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single account entity of the marketplace. The Type field
// discriminates between customer and business accounts; the profile
// fields (Location, Tel, WorkingHours, ...) are mostly meaningful for
// business accounts but live on every account for a uniform profile API.
type User struct {
	ID           uuid.UUID // The unique identifier for the account.
	Username     string    // Unique login name, also shown on offers and reviews.
	Email        string    // Unique contact address.
	PasswordHash string    // Bcrypt hash of the password, never exposed through the API.
	Type         Role      // Account role, immutable after registration.
	FirstName    string
	LastName     string
	File         string // URL of the uploaded avatar image, empty when none.
	Location     string
	Tel          string
	Description  string
	WorkingHours string
	IsStaff      bool      // Staff accounts may delete orders.
	CreatedAt    time.Time // Set at registration, never modified.
	UpdatedAt    time.Time
}

// IsBusiness reports whether the account holds the business role.
func (u *User) IsBusiness() bool {
	return u.Type == RoleBusiness
}

// IsCustomer reports whether the account holds the customer role.
func (u *User) IsCustomer() bool {
	return u.Type == RoleCustomer
}
