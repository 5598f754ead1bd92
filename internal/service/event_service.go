package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"eventify/internal/models"
	"eventify/internal/observability"
	"eventify/internal/repository"
)

type EventService struct {
	eventRepo repository.EventRepository
	store     ObjectStorage
}

type CreateEventInput struct {
	UserID      uint
	Title       string
	Description string
	Date        time.Time
	Location    string
	Category    string
	Price       float64
}

type UpdateEventInput struct {
	UserID      uint
	EventID     uint
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	Category    *string
	Price       *float64
}

type DeleteEventInput struct {
	UserID  uint
	EventID uint
}

// ListEventsInput mirrors the query string of the listing endpoint. Ordering
// accepts a column name with an optional leading "-" for descending.
type ListEventsInput struct {
	ViewerID  uint
	Category  string
	Search    string
	OwnerID   uint
	Favorite  bool
	Attending bool
	Ordering  string
	Limit     int
	Offset    int
}

type UploadCoverInput struct {
	UserID      uint
	EventID     uint
	Body        io.Reader
	Size        int64
	ContentType string
}

func NewEventService(eventRepo repository.EventRepository, store ObjectStorage) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		store:     store,
	}
}

func (s *EventService) validateEventFields(title, category string, date time.Time, price float64) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > 200 {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if date.IsZero() {
		return models.NewValidationError("Date is required")
	}
	if !models.ValidCategory(category) {
		return models.NewValidationError("Unknown category")
	}
	if price < 0 {
		return models.NewValidationError("Price cannot be negative")
	}
	return nil
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	if err := s.validateEventFields(in.Title, in.Category, in.Date, in.Price); err != nil {
		return nil, err
	}

	event := &models.Event{
		OwnerID:     in.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location,
		Category:    in.Category,
		Price:       in.Price,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return s.GetEvent(ctx, event.ID, in.UserID)
}

func (s *EventService) GetEvent(ctx context.Context, id uint, viewerID uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	s.decorate(event, viewerID)
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, in ListEventsInput) ([]*models.Event, error) {
	// Personal views resolve to nothing for anonymous viewers, not an error.
	if (in.Favorite || in.Attending) && in.ViewerID == 0 {
		return []*models.Event{}, nil
	}

	q := repository.EventQuery{
		Category: in.Category,
		Search:   in.Search,
		OwnerID:  in.OwnerID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if in.Favorite {
		q.FavoritedBy = in.ViewerID
	}
	if in.Attending {
		q.AttendingBy = in.ViewerID
	}
	q.OrderBy, q.Descending = parseOrdering(in.Ordering)

	events, err := s.eventRepo.List(ctx, q, in.ViewerID)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		s.decorate(e, in.ViewerID)
	}
	return events, nil
}

// parseOrdering splits a "-date" style ordering value into column and
// direction. An empty value keeps the repository default.
func parseOrdering(ordering string) (string, bool) {
	if ordering == "" {
		return "", false
	}
	if strings.HasPrefix(ordering, "-") {
		return ordering[1:], true
	}
	return ordering, false
}

func (s *EventService) UpdateEvent(ctx context.Context, in UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetForUpdate(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(in.UserID, event); err != nil {
		return nil, err
	}

	if in.Title != nil {
		event.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Date != nil {
		event.Date = *in.Date
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Category != nil {
		event.Category = *in.Category
	}
	if in.Price != nil {
		event.Price = *in.Price
	}
	if err := s.validateEventFields(event.Title, event.Category, event.Date, event.Price); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.GetEvent(ctx, event.ID, in.UserID)
}

func (s *EventService) DeleteEvent(ctx context.Context, in DeleteEventInput) error {
	event, err := s.eventRepo.GetForUpdate(ctx, in.EventID)
	if err != nil {
		return err
	}
	if err := RequireOwner(in.UserID, event); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, in.EventID); err != nil {
		return err
	}
	if event.Cover != "" && s.store != nil {
		_ = s.store.Remove(ctx, event.Cover)
	}
	return nil
}

// UploadCover stores a new cover image for the event and drops the old object.
func (s *EventService) UploadCover(ctx context.Context, in UploadCoverInput) (*models.Event, error) {
	event, err := s.eventRepo.GetForUpdate(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(in.UserID, event); err != nil {
		return nil, err
	}
	if err := validateUpload(in.Size, in.ContentType); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, models.NewInternalError(errors.New("object storage not configured"))
	}

	key, err := s.store.Put(ctx, "covers", in.Body, in.Size, in.ContentType)
	if err != nil {
		observability.MediaUploads.WithLabelValues("cover", "error").Inc()
		return nil, models.NewInternalError(err)
	}
	observability.MediaUploads.WithLabelValues("cover", "ok").Inc()

	oldKey := event.Cover
	event.Cover = key
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	if oldKey != "" {
		_ = s.store.Remove(ctx, oldKey)
	}

	return s.GetEvent(ctx, event.ID, in.UserID)
}

func (s *EventService) decorate(event *models.Event, viewerID uint) {
	event.IsOwner = viewerID != 0 && viewerID == event.OwnerID
	if s.store != nil {
		event.CoverURL = s.store.URL(event.Cover)
	}
}
