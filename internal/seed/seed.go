// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"eventify/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumEvents   int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d events...", opts.NumUsers, opts.NumEvents)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	events, err := createEvents(db, users, opts.NumEvents)
	if err != nil {
		return fmt.Errorf("failed to create events: %w", err)
	}
	log.Printf("%d events created", len(events))

	if err := createEngagement(db, users, events); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	if err := createFollows(db, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	log.Println("Seeding complete")
	log.Println("Test accounts use password: Password123!x")
	return nil
}

func clearData(db *gorm.DB) error {
	// Children first so foreign keys never dangle mid-wipe.
	tables := []interface{}{
		&models.Like{}, &models.Comment{}, &models.Favorite{}, &models.Attendance{},
		&models.Follow{}, &models.Event{}, &models.Profile{}, &models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!x"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := fmt.Sprintf("%s_%s%d", strings.ToLower(first), strings.ToLower(last), i)

		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}

		profile := models.Profile{
			OwnerID:  user.ID,
			Name:     fmt.Sprintf("%s %s", first, last),
			Bio:      gofakeit.Sentence(10),
			Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createEvents(db *gorm.DB, users []models.User, count int) ([]models.Event, error) {
	if len(users) == 0 {
		return nil, nil
	}

	events := make([]models.Event, 0, count)
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]
		// Spread dates across past and upcoming three months.
		daysOffset := rand.Intn(180) - 90

		event := models.Event{
			OwnerID:     owner.ID,
			Title:       gofakeit.Sentence(4),
			Description: gofakeit.Paragraph(1, 3, 8, "\n"),
			Date:        time.Now().AddDate(0, 0, daysOffset).Truncate(time.Hour),
			Location:    fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
			Category:    models.Categories[rand.Intn(len(models.Categories))],
			Price:       float64(rand.Intn(20000)) / 100,
		}
		if err := db.Create(&event).Error; err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// createEngagement sprinkles likes, favorites, attendances, and comments
// over the events. Unique indexes make repeat picks no-ops, so duplicate
// key errors are skipped rather than failed on.
func createEngagement(db *gorm.DB, users []models.User, events []models.Event) error {
	var likes, favorites, attendances, comments int
	for _, event := range events {
		for _, user := range users {
			if rand.Float64() < 0.25 {
				if err := db.Create(&models.Like{OwnerID: user.ID, EventID: event.ID}).Error; err == nil {
					likes++
				}
			}
			if rand.Float64() < 0.15 {
				if err := db.Create(&models.Favorite{OwnerID: user.ID, EventID: event.ID}).Error; err == nil {
					favorites++
				}
			}
			if rand.Float64() < 0.2 {
				if err := db.Create(&models.Attendance{OwnerID: user.ID, EventID: event.ID}).Error; err == nil {
					attendances++
				}
			}
			if rand.Float64() < 0.1 {
				comment := models.Comment{
					OwnerID: user.ID,
					EventID: event.ID,
					Content: gofakeit.Sentence(12),
				}
				if err := db.Create(&comment).Error; err == nil {
					comments++
				}
			}
		}
	}
	log.Printf("%d likes, %d favorites, %d attendances, %d comments created",
		likes, favorites, attendances, comments)
	return nil
}

func createFollows(db *gorm.DB, users []models.User) error {
	var follows int
	for _, follower := range users {
		for _, followed := range users {
			if follower.ID == followed.ID {
				continue
			}
			if rand.Float64() < 0.1 {
				follow := models.Follow{OwnerID: follower.ID, FollowedID: followed.ID}
				if err := db.Create(&follow).Error; err == nil {
					follows++
				}
			}
		}
	}
	log.Printf("%d follows created", follows)
	return nil
}
