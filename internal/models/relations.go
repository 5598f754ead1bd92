package models

import (
	"time"
)

// Like marks a user's approval of an event. At most one like per
// (owner, event); the unique index is the source of truth and duplicate
// inserts surface as a conflict.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;uniqueIndex:idx_likes_owner_event" json:"owner_id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_likes_owner_event;index" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`

	Owner User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Event Event `gorm:"foreignKey:EventID" json:"-"`
}

func (Like) TableName() string { return "likes" }

// OwnerUserID implements Owned.
func (l *Like) OwnerUserID() uint { return l.OwnerID }

// Favorite is a private bookmark of an event. At most one per (owner, event).
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;uniqueIndex:idx_favorites_owner_event" json:"owner_id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_favorites_owner_event;index" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`

	Owner User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Event Event `gorm:"foreignKey:EventID" json:"-"`
}

func (Favorite) TableName() string { return "favorites" }

// OwnerUserID implements Owned.
func (f *Favorite) OwnerUserID() uint { return f.OwnerID }

// Attendance registers a user as going to an event. At most one per
// (owner, event).
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;uniqueIndex:idx_attendances_owner_event" json:"owner_id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_attendances_owner_event;index" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`

	Owner User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Event Event `gorm:"foreignKey:EventID" json:"-"`
}

func (Attendance) TableName() string { return "attendances" }

// OwnerUserID implements Owned.
func (a *Attendance) OwnerUserID() uint { return a.OwnerID }

// Follow is a directed edge from owner to followed. Self-follows are rejected
// at the service layer; the unique index prevents duplicates.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerID    uint      `gorm:"not null;uniqueIndex:idx_follows_owner_followed" json:"owner_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follows_owner_followed;index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Owner    User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

func (Follow) TableName() string { return "follows" }

// OwnerUserID implements Owned.
func (f *Follow) OwnerUserID() uint { return f.OwnerID }
