package repository

import (
	"testing"
	"time"

	"eventify/internal/cache"
	"eventify/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Event{},
		&models.Comment{},
		&models.Like{},
		&models.Favorite{},
		&models.Attendance{},
		&models.Follow{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

// setupTestCache backs the cache package with a miniredis instance for the
// duration of the test.
func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	if err := db.Create(&models.Profile{OwnerID: user.ID}).Error; err != nil {
		t.Fatalf("create profile for %s: %v", username, err)
	}
	return user
}

func createTestEvent(t *testing.T, db *gorm.DB, owner *models.User, title, category string) *models.Event {
	t.Helper()
	event := &models.Event{
		OwnerID:  owner.ID,
		Title:    title,
		Date:     time.Now().Add(48 * time.Hour),
		Category: category,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("create event %s: %v", title, err)
	}
	return event
}
