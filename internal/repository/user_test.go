package repository

import (
	"context"
	"testing"

	"eventify/internal/cache"
	"eventify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create_WithProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)
	require.NotNil(t, user.Profile)
	assert.Equal(t, user.ID, user.Profile.OwnerID)

	var count int64
	db.Model(&models.Profile{}).Where("owner_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_Create_DuplicateConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, first))

	t.Run("duplicate username", func(t *testing.T) {
		dup := &models.User{Username: "alice", Email: "other@example.com", Password: "hashed"}
		err := repo.Create(ctx, dup)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := &models.User{Username: "alice2", Email: "alice@example.com", Password: "hashed"}
		err := repo.Create(ctx, dup)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	// Failed signups must not leave orphan profiles behind.
	var profiles int64
	db.Model(&models.Profile{}).Count(&profiles)
	assert.Equal(t, int64(1), profiles)
}

func TestUserRepository_GetByEmail_NotFoundIsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_Delete_Cascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	eventRepo := NewEventRepository(db)
	ctx := context.Background()

	doomed := createTestUser(t, db, "doomed")
	other := createTestUser(t, db, "other")

	// doomed owns an event with engagement from other.
	ownEvent := createTestEvent(t, db, doomed, "Owned", models.CategoryOther)
	require.NoError(t, db.Create(&models.Like{OwnerID: other.ID, EventID: ownEvent.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{OwnerID: other.ID, EventID: ownEvent.ID, Content: "hi"}).Error)

	// doomed engages with other's event.
	otherEvent := createTestEvent(t, db, other, "Foreign", models.CategoryOther)
	require.NoError(t, db.Create(&models.Like{OwnerID: doomed.ID, EventID: otherEvent.ID}).Error)
	require.NoError(t, db.Create(&models.Attendance{OwnerID: doomed.ID, EventID: otherEvent.ID}).Error)

	// follows in both directions.
	require.NoError(t, db.Create(&models.Follow{OwnerID: doomed.ID, FollowedID: other.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{OwnerID: other.ID, FollowedID: doomed.ID}).Error)

	require.NoError(t, repo.Delete(ctx, doomed.ID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", doomed.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Profile{}).Where("owner_id = ?", doomed.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Event{}).Where("owner_id = ?", doomed.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Follow{}).Count(&count)
	assert.Zero(t, count)

	// Engagement on the deleted user's event is gone with it.
	db.Model(&models.Like{}).Where("event_id = ?", ownEvent.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Comment{}).Where("event_id = ?", ownEvent.ID).Count(&count)
	assert.Zero(t, count)

	// The other user's event survives, now without doomed's engagement.
	survivor, err := eventRepo.GetByID(ctx, otherEvent.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), survivor.LikesCount)
	assert.Equal(t, int64(0), survivor.AttendeesCount)
}

func TestUserRepository_Delete_InvalidatesCaches(t *testing.T) {
	db := setupTestDB(t)
	mr := setupTestCache(t)
	repo := NewUserRepository(db)
	eventRepo := NewEventRepository(db)
	profileRepo := NewProfileRepository(db)
	ctx := context.Background()

	doomed := createTestUser(t, db, "doomed")
	other := createTestUser(t, db, "other")

	ownEvent := createTestEvent(t, db, doomed, "Owned", models.CategoryOther)
	otherEvent := createTestEvent(t, db, other, "Foreign", models.CategoryOther)
	require.NoError(t, db.Create(&models.Like{OwnerID: doomed.ID, EventID: otherEvent.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{OwnerID: doomed.ID, FollowedID: other.ID}).Error)

	doomedProfile, err := profileRepo.GetByOwnerID(ctx, doomed.ID, 0)
	require.NoError(t, err)
	otherProfile, err := profileRepo.GetByOwnerID(ctx, other.ID, 0)
	require.NoError(t, err)

	// Prime every entry the cascade touches.
	for _, eventID := range []uint{ownEvent.ID, otherEvent.ID} {
		_, err := eventRepo.GetByID(ctx, eventID, 0)
		require.NoError(t, err)
	}
	for _, profileID := range []uint{doomedProfile.ID, otherProfile.ID} {
		_, err := profileRepo.GetByID(ctx, profileID, 0)
		require.NoError(t, err)
	}

	require.NoError(t, repo.Delete(ctx, doomed.ID))

	// The deleted user's own entries are gone, and so are the entries whose
	// embedded counts the cascade changed.
	assert.False(t, mr.Exists(cache.EventKey(ownEvent.ID)))
	assert.False(t, mr.Exists(cache.EventKey(otherEvent.ID)))
	assert.False(t, mr.Exists(cache.ProfileKey(doomedProfile.ID)))
	assert.False(t, mr.Exists(cache.ProfileKey(otherProfile.ID)))

	got, err := eventRepo.GetByID(ctx, otherEvent.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LikesCount)
}
