package repository

import (
	"context"
	"errors"
	"strings"

	"eventify/internal/cache"
	"eventify/internal/models"
	"eventify/internal/observability"

	"gorm.io/gorm"
)

// EventQuery describes the filters and ordering for an event listing.
type EventQuery struct {
	Category    string
	Search      string
	OwnerID     uint
	FavoritedBy uint
	AttendingBy uint
	OrderBy     string
	Descending  bool
	Limit       int
	Offset      int
}

// orderColumns whitelists the sortable columns. likes_count, comments_count
// and attendees_count are SELECT aliases from applyEventDetails; they can be
// referenced in ORDER BY at the same query level.
var orderColumns = map[string]string{
	"date":            "events.date",
	"created_at":      "events.created_at",
	"likes_count":     "likes_count",
	"comments_count":  "comments_count",
	"attendees_count": "attendees_count",
}

// DefaultEventPageSize is the listing page size when the client sends no
// limit. The default anonymous first page is the only listing that gets
// cached, so the repository needs to recognize it.
const DefaultEventPageSize = 20

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Event, error)
	GetForUpdate(ctx context.Context, id uint) (*models.Event, error)
	List(ctx context.Context, q EventQuery, viewerID uint) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
}

// eventCacheEntry is the cached form of an event. Cover is json:"-" on the
// model so the API never exposes the raw object key, but the cache must keep
// it or a hit would serve (and a later Save persist) an empty key.
type eventCacheEntry struct {
	Event    models.Event `json:"event"`
	CoverKey string       `json:"cover_key"`
}

type eventListCacheEntry struct {
	Events    []*models.Event `json:"events"`
	CoverKeys []string        `json:"cover_keys"`
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.EventsListKey)
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Event, error) {
	var event models.Event

	fetch := func() error {
		defer observability.TrackQuery("select", "events")()
		return r.applyEventDetails(r.db.WithContext(ctx), viewerID).
			Preload("Owner").
			First(&event, id).Error
	}

	var err error
	if viewerID == 0 {
		// Anonymous reads carry no viewer flags, so they are safe to share.
		var entry eventCacheEntry
		err = cache.Aside(ctx, cache.EventKey(id), &entry, cache.EventTTL, func() error {
			if err := fetch(); err != nil {
				return err
			}
			entry = eventCacheEntry{Event: event, CoverKey: event.Cover}
			return nil
		})
		if err == nil {
			event = entry.Event
			event.Cover = entry.CoverKey
		}
	} else {
		err = fetch()
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

// GetForUpdate loads the row straight from the DB, bypassing the cache.
// Mutating paths use it so a cached copy never feeds a Save.
func (r *eventRepository) GetForUpdate(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

// isDefaultPage reports whether the query is the plain first page: no
// filters, no search, default ordering and size. That listing is the one
// every anonymous client lands on, so it is the only one cached.
func (q EventQuery) isDefaultPage() bool {
	return q.Category == "" && q.Search == "" && q.OwnerID == 0 &&
		q.FavoritedBy == 0 && q.AttendingBy == 0 && q.OrderBy == "" &&
		q.Offset == 0 && q.Limit == DefaultEventPageSize
}

func (r *eventRepository) List(ctx context.Context, q EventQuery, viewerID uint) ([]*models.Event, error) {
	if viewerID == 0 && q.isDefaultPage() {
		var entry eventListCacheEntry
		err := cache.Aside(ctx, cache.EventsListKey, &entry, cache.EventsListTTL, func() error {
			events, err := r.list(ctx, q, viewerID)
			if err != nil {
				return err
			}
			keys := make([]string, len(events))
			for i, e := range events {
				keys[i] = e.Cover
			}
			entry = eventListCacheEntry{Events: events, CoverKeys: keys}
			return nil
		})
		if err != nil {
			return nil, err
		}
		for i, e := range entry.Events {
			if i < len(entry.CoverKeys) {
				e.Cover = entry.CoverKeys[i]
			}
		}
		return entry.Events, nil
	}
	return r.list(ctx, q, viewerID)
}

func (r *eventRepository) list(ctx context.Context, q EventQuery, viewerID uint) ([]*models.Event, error) {
	var events []*models.Event

	db := r.applyEventDetails(r.db.WithContext(ctx).Model(&models.Event{}), viewerID).
		Preload("Owner")

	if q.Category != "" {
		db = db.Where("events.category = ?", q.Category)
	}
	if q.OwnerID != 0 {
		db = db.Where("events.owner_id = ?", q.OwnerID)
	}
	if q.FavoritedBy != 0 {
		db = db.Where("events.id IN (SELECT event_id FROM favorites WHERE owner_id = ?)", q.FavoritedBy)
	}
	if q.AttendingBy != 0 {
		db = db.Where("events.id IN (SELECT event_id FROM attendances WHERE owner_id = ?)", q.AttendingBy)
	}
	if q.Search != "" {
		// LOWER + LIKE instead of ILIKE so the same query runs on SQLite in tests.
		like := "%" + strings.ToLower(q.Search) + "%"
		db = db.Joins("JOIN users ON users.id = events.owner_id").
			Where("(LOWER(events.title) LIKE ? OR LOWER(users.username) LIKE ? OR LOWER(events.category) LIKE ?)",
				like, like, like)
	}

	done := observability.TrackQuery("select", "events")
	err := r.applyOrder(db, q).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&events).Error
	done()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// applyOrder appends the ORDER BY clause. Unknown columns fall back to the
// default listing order, upcoming-last by date.
func (r *eventRepository) applyOrder(db *gorm.DB, q EventQuery) *gorm.DB {
	col, ok := orderColumns[q.OrderBy]
	if !ok {
		return db.Order("events.date DESC")
	}
	dir := "ASC"
	if q.Descending {
		dir = "DESC"
	}
	return db.Order(col + " " + dir).Order("events.id " + dir)
}

// applyEventDetails adds subqueries to fetch counts and the viewer's own
// relation ids in a single query. Anonymous viewers get NULL flags.
func (r *eventRepository) applyEventDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "events.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.event_id = events.id) as likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.event_id = events.id) as comments_count, " +
		"(SELECT COUNT(*) FROM favorites WHERE favorites.event_id = events.id) as favorites_count, " +
		"(SELECT COUNT(*) FROM attendances WHERE attendances.event_id = events.id) as attendees_count"

	if viewerID != 0 {
		return db.Select(selectQuery+
			", (SELECT id FROM likes WHERE likes.event_id = events.id AND likes.owner_id = ?) as like_id"+
			", (SELECT id FROM favorites WHERE favorites.event_id = events.id AND favorites.owner_id = ?) as favorite_id"+
			", (SELECT id FROM attendances WHERE attendances.event_id = events.id AND attendances.owner_id = ?) as attendance_id",
			viewerID, viewerID, viewerID)
	}

	return db.Select(selectQuery + ", NULL as like_id, NULL as favorite_id, NULL as attendance_id")
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEvent(ctx, event.ID)
	return nil
}

// Delete removes the event and its relation rows in one transaction.
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.Like{}, &models.Comment{}, &models.Favorite{}, &models.Attendance{}} {
			if err := tx.Where("event_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Event{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEvent(ctx, id)
	return nil
}
