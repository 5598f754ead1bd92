// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User is the identity anchor. Every other record in the system carries an
// owner reference back to a User.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Profile *Profile `gorm:"foreignKey:OwnerID" json:"profile,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
