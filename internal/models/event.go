package models

import (
	"time"
)

// Event categories. Category is validated against this set before any write.
const (
	CategoryMusic    = "music"
	CategoryTech     = "tech"
	CategorySports   = "sports"
	CategoryArts     = "arts"
	CategoryFood     = "food"
	CategoryOutdoors = "outdoors"
	CategoryOther    = "other"
)

// Categories lists every valid event category.
var Categories = []string{
	CategoryMusic, CategoryTech, CategorySports,
	CategoryArts, CategoryFood, CategoryOutdoors, CategoryOther,
}

// ValidCategory reports whether c is a known event category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Event is the central resource. It is owned exclusively by its creator and
// deleting it removes every like, comment, favorite, and attendance that
// references it.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Location    string    `json:"location"`
	Category    string    `gorm:"not null" json:"category"`
	Cover       string    `json:"-"`
	Price       float64   `gorm:"type:numeric(10,2);default:0" json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Aggregates, computed at query time from the relation tables.
	LikesCount     int64 `gorm:"->;-:migration" json:"likes_count"`
	CommentsCount  int64 `gorm:"->;-:migration" json:"comments_count"`
	FavoritesCount int64 `gorm:"->;-:migration" json:"favorites_count"`
	AttendeesCount int64 `gorm:"->;-:migration" json:"attendees_count"`

	// Viewer flags: the requesting user's own relation ids against this event,
	// null when absent or unauthenticated. They never expose another user's rows.
	LikeID       *uint `gorm:"->;-:migration" json:"like_id"`
	FavoriteID   *uint `gorm:"->;-:migration" json:"favorite_id"`
	AttendanceID *uint `gorm:"->;-:migration" json:"attendance_id"`
	// IsOwner indicates whether the requesting user owns this event (computed).
	IsOwner bool `gorm:"-" json:"is_owner"`
	// CoverURL is the resolved public URL for the cover object (computed).
	CoverURL string `gorm:"-" json:"cover"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

// OwnerUserID implements Owned.
func (e *Event) OwnerUserID() uint {
	return e.OwnerID
}
