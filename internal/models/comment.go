package models

import (
	"time"
)

// Comment is free-form text attached to an event. Any number of comments per
// (owner, event) pair is allowed.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// IsOwner indicates whether the requesting user owns this comment (computed).
	IsOwner bool `gorm:"-" json:"is_owner"`

	// Relationships
	Owner User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Event Event `gorm:"foreignKey:EventID" json:"-"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// OwnerUserID implements Owned.
func (cm *Comment) OwnerUserID() uint {
	return cm.OwnerID
}
