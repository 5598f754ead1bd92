package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventify/internal/cache"
	"eventify/internal/config"
	"eventify/internal/models"
	"eventify/internal/repository"
	"eventify/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "handler-test-secret-1234567890123456"

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Event{},
		&models.Comment{},
		&models.Like{},
		&models.Favorite{},
		&models.Attendance{},
		&models.Follow{},
	))
	return db
}

// newTestServer wires a Server against an in-memory database. The prometheus
// middleware is left unset so repeated test servers do not fight over metric
// registration.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)
	cache.SetClient(nil)

	s := &Server{
		config:         &config.Config{Env: "test", JWTSecret: testJWTSecret},
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		profileRepo:    repository.NewProfileRepository(db),
		eventRepo:      repository.NewEventRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		favoriteRepo:   repository.NewFavoriteRepository(db),
		attendanceRepo: repository.NewAttendanceRepository(db),
		followRepo:     repository.NewFollowRepository(db),
	}
	s.eventService = service.NewEventService(s.eventRepo, nil)
	s.commentService = service.NewCommentService(s.commentRepo, s.eventRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.eventRepo)
	s.favoriteService = service.NewFavoriteService(s.favoriteRepo, s.eventRepo)
	s.attendanceService = service.NewAttendanceService(s.attendanceRepo, s.eventRepo)
	s.followService = service.NewFollowService(s.followRepo, s.userRepo)
	s.profileService = service.NewProfileService(s.profileRepo, nil)
	s.userService = service.NewUserService(s.userRepo)

	return s, db
}

// authedApp returns a fiber app that pretends userID already passed auth.
// Pass 0 for anonymous requests.
func authedApp(userID uint) *fiber.App {
	app := fiber.New()
	if userID != 0 {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", userID)
			return c.Next()
		})
	}
	return app
}

// withTestCache backs the cache with miniredis for tests that exercise the
// cache-aside paths. Call it after newTestServer, which resets the client.
func withTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func createHandlerTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("SecurePass12!@"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, Email: username + "@example.com", Password: string(hash)}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Profile{OwnerID: user.ID, Name: username}).Error)
	return user
}

func createHandlerTestEvent(t *testing.T, db *gorm.DB, owner *models.User, title string) *models.Event {
	t.Helper()
	event := &models.Event{
		OwnerID:  owner.ID,
		Title:    title,
		Category: models.CategoryMusic,
		Date:     time.Now().Add(48 * time.Hour),
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
