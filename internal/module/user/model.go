package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the user directory.
type User struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	FirstName   string    `json:"first_name" gorm:"not null"`
	LastName    string    `json:"last_name" gorm:"not null"`
	PhoneNumber string    `json:"phone_number,omitempty"`

	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`

	// Reputation is recalculated asynchronously when verifications land.
	Reputation float64 `json:"reputation" gorm:"default:0"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" gorm:"column:deleted_at;index"` // Soft delete
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// FullName returns the display name used in notifications and emails.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
