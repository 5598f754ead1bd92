package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"eventify/internal/models"
	"eventify/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_CreateEvent_Validation(t *testing.T) {
	t.Parallel()

	svc := NewEventService(noopEventRepo(), nil)
	ctx := context.Background()
	date := time.Now().Add(24 * time.Hour)

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateEvent(ctx, CreateEventInput{Title: "Show", Date: date, Category: models.CategoryMusic})
		assertUnauthenticatedError(t, err)
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateEvent(ctx, CreateEventInput{UserID: 1, Title: "   ", Date: date, Category: models.CategoryMusic})
		assertValidationError(t, err)
	})

	t.Run("title too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateEvent(ctx, CreateEventInput{
			UserID: 1, Title: strings.Repeat("x", 201), Date: date, Category: models.CategoryMusic,
		})
		assertValidationError(t, err)
	})

	t.Run("zero date", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateEvent(ctx, CreateEventInput{UserID: 1, Title: "Show", Category: models.CategoryMusic})
		assertValidationError(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateEvent(ctx, CreateEventInput{UserID: 1, Title: "Show", Date: date, Category: "crafts"})
		assertValidationError(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateEvent(ctx, CreateEventInput{
			UserID: 1, Title: "Show", Date: date, Category: models.CategoryMusic, Price: -1,
		})
		assertValidationError(t, err)
	})
}

func TestEventService_CreateEvent_Success(t *testing.T) {
	t.Parallel()

	eventRepo := noopEventRepo()
	eventRepo.createFn = func(_ context.Context, e *models.Event) error {
		e.ID = 7
		return nil
	}
	eventRepo.getByIDFn = func(_ context.Context, id, viewerID uint) (*models.Event, error) {
		return &models.Event{ID: id, OwnerID: 1, Title: "Show"}, nil
	}

	svc := NewEventService(eventRepo, nil)
	event, err := svc.CreateEvent(context.Background(), CreateEventInput{
		UserID:   1,
		Title:    "  Show  ",
		Date:     time.Now().Add(24 * time.Hour),
		Category: models.CategoryMusic,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), event.ID)
	assert.True(t, event.IsOwner)
}

func TestEventService_ListEvents_AnonymousPersonalViews(t *testing.T) {
	t.Parallel()

	eventRepo := noopEventRepo()
	eventRepo.listFn = func(_ context.Context, _ repository.EventQuery, _ uint) ([]*models.Event, error) {
		t.Fatal("repository should not be queried for anonymous personal views")
		return nil, nil
	}
	svc := NewEventService(eventRepo, nil)

	for _, in := range []ListEventsInput{
		{Favorite: true},
		{Attending: true},
	} {
		events, err := svc.ListEvents(context.Background(), in)
		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)
	}
}

func TestEventService_ListEvents_QueryMapping(t *testing.T) {
	t.Parallel()

	var captured repository.EventQuery
	eventRepo := noopEventRepo()
	eventRepo.listFn = func(_ context.Context, q repository.EventQuery, _ uint) ([]*models.Event, error) {
		captured = q
		return nil, nil
	}

	svc := NewEventService(eventRepo, nil)
	_, err := svc.ListEvents(context.Background(), ListEventsInput{
		ViewerID:  3,
		Category:  models.CategoryTech,
		Search:    "conf",
		Favorite:  true,
		Attending: true,
		Ordering:  "-likes_count",
		Limit:     10,
		Offset:    20,
	})
	require.NoError(t, err)

	assert.Equal(t, models.CategoryTech, captured.Category)
	assert.Equal(t, "conf", captured.Search)
	assert.Equal(t, uint(3), captured.FavoritedBy)
	assert.Equal(t, uint(3), captured.AttendingBy)
	assert.Equal(t, "likes_count", captured.OrderBy)
	assert.True(t, captured.Descending)
	assert.Equal(t, 10, captured.Limit)
	assert.Equal(t, 20, captured.Offset)
}

func TestParseOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		col  string
		desc bool
	}{
		{"", "", false},
		{"date", "date", false},
		{"-date", "date", true},
		{"-attendees_count", "attendees_count", true},
	}
	for _, tt := range tests {
		col, desc := parseOrdering(tt.in)
		assert.Equal(t, tt.col, col, "input %q", tt.in)
		assert.Equal(t, tt.desc, desc, "input %q", tt.in)
	}
}

func TestEventService_UpdateEvent_Ownership(t *testing.T) {
	t.Parallel()

	newTitle := "Renamed"

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		eventRepo := noopEventRepo()
		eventRepo.getForUpdateFn = func(_ context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, OwnerID: 5}, nil
		}
		svc := NewEventService(eventRepo, nil)
		_, err := svc.UpdateEvent(context.Background(), UpdateEventInput{EventID: 1, Title: &newTitle})
		assertUnauthenticatedError(t, err)
	})

	t.Run("non-owner", func(t *testing.T) {
		t.Parallel()
		eventRepo := noopEventRepo()
		eventRepo.getForUpdateFn = func(_ context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, OwnerID: 5}, nil
		}
		svc := NewEventService(eventRepo, nil)
		_, err := svc.UpdateEvent(context.Background(), UpdateEventInput{UserID: 2, EventID: 1, Title: &newTitle})
		assertForbiddenError(t, err)
	})

	t.Run("owner patches only provided fields", func(t *testing.T) {
		t.Parallel()
		var updated *models.Event
		eventRepo := noopEventRepo()
		eventRepo.getForUpdateFn = func(_ context.Context, id uint) (*models.Event, error) {
			return &models.Event{
				ID: id, OwnerID: 5, Title: "Old", Location: "Hall A",
				Date: time.Now(), Category: models.CategoryArts, Price: 10,
			}, nil
		}
		eventRepo.updateFn = func(_ context.Context, e *models.Event) error {
			updated = e
			return nil
		}
		svc := NewEventService(eventRepo, nil)
		_, err := svc.UpdateEvent(context.Background(), UpdateEventInput{UserID: 5, EventID: 1, Title: &newTitle})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "Hall A", updated.Location)
		assert.Equal(t, models.CategoryArts, updated.Category)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	t.Parallel()

	t.Run("non-owner forbidden", func(t *testing.T) {
		t.Parallel()
		eventRepo := noopEventRepo()
		eventRepo.getForUpdateFn = func(_ context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, OwnerID: 9}, nil
		}
		svc := NewEventService(eventRepo, nil)
		err := svc.DeleteEvent(context.Background(), DeleteEventInput{UserID: 1, EventID: 3})
		assertForbiddenError(t, err)
	})

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		var deleted uint
		eventRepo := noopEventRepo()
		eventRepo.getForUpdateFn = func(_ context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, OwnerID: 1}, nil
		}
		eventRepo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		svc := NewEventService(eventRepo, nil)
		err := svc.DeleteEvent(context.Background(), DeleteEventInput{UserID: 1, EventID: 3})
		require.NoError(t, err)
		assert.Equal(t, uint(3), deleted)
	})
}

func TestEventService_UploadCover_Validation(t *testing.T) {
	t.Parallel()

	eventRepo := noopEventRepo()
	eventRepo.getForUpdateFn = func(_ context.Context, id uint) (*models.Event, error) {
		return &models.Event{ID: id, OwnerID: 1}, nil
	}
	svc := NewEventService(eventRepo, nil)
	ctx := context.Background()

	t.Run("empty upload", func(t *testing.T) {
		t.Parallel()
		_, err := svc.UploadCover(ctx, UploadCoverInput{UserID: 1, EventID: 1, Size: 0, ContentType: "image/png"})
		assertValidationError(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		_, err := svc.UploadCover(ctx, UploadCoverInput{UserID: 1, EventID: 1, Size: 6 << 20, ContentType: "image/png"})
		assertValidationError(t, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		t.Parallel()
		_, err := svc.UploadCover(ctx, UploadCoverInput{UserID: 1, EventID: 1, Size: 100, ContentType: "image/gif"})
		assertValidationError(t, err)
	})

	t.Run("non-owner forbidden before validation", func(t *testing.T) {
		t.Parallel()
		_, err := svc.UploadCover(ctx, UploadCoverInput{UserID: 2, EventID: 1, Size: 0, ContentType: ""})
		assertForbiddenError(t, err)
	})

	t.Run("no object storage", func(t *testing.T) {
		t.Parallel()
		_, err := svc.UploadCover(ctx, UploadCoverInput{UserID: 1, EventID: 1, Size: 100, ContentType: "image/png"})
		assertErrCode(t, err, models.CodeInternal)
	})
}
