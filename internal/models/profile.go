package models

import (
	"time"
)

// Profile holds the public-facing details of a user. Exactly one profile
// exists per user; it is created in the same transaction as the user and is
// never created directly by clients.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;uniqueIndex" json:"owner_id"`
	Name      string    `json:"name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Location  string    `json:"location"`
	Avatar    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// FollowersCount is computed at query time: follows where followed = owner.
	FollowersCount int64 `gorm:"->;-:migration" json:"followers_count"`
	// FollowingCount is computed at query time: follows where owner = owner.
	FollowingCount int64 `gorm:"->;-:migration" json:"following_count"`
	// FollowingID is the id of the requesting user's follow of this profile's
	// owner, if one exists (computed).
	FollowingID *uint `gorm:"->;-:migration" json:"following_id"`
	// IsOwner indicates whether the requesting user owns this profile (computed).
	IsOwner bool `gorm:"-" json:"is_owner"`
	// AvatarURL is the resolved public URL for the avatar object (computed).
	AvatarURL string `gorm:"-" json:"avatar"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// OwnerUserID implements Owned.
func (p *Profile) OwnerUserID() uint {
	return p.OwnerID
}
