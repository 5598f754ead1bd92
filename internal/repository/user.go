// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"eventify/internal/cache"
	"eventify/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Create inserts the user together with their empty profile. The profile is
// never created by clients; it exists from the moment the user does.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{OwnerID: user.ID}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the user and everything that hangs off them: owned events
// (with their relation rows), the profile, and every relation row the user
// appears in on either side.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	var eventIDs, profileIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Collect cache keys before the rows disappear: events whose row or
		// counts the cascade changes, the user's own profile, and the
		// profiles of everyone whose follower or following count changes.
		if err := tx.Model(&models.Event{}).
			Where("owner_id = ?"+
				" OR id IN (SELECT event_id FROM likes WHERE owner_id = ?)"+
				" OR id IN (SELECT event_id FROM comments WHERE owner_id = ?)"+
				" OR id IN (SELECT event_id FROM favorites WHERE owner_id = ?)"+
				" OR id IN (SELECT event_id FROM attendances WHERE owner_id = ?)",
				id, id, id, id, id).
			Pluck("id", &eventIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Profile{}).
			Where("owner_id = ?"+
				" OR owner_id IN (SELECT followed_id FROM follows WHERE owner_id = ?)"+
				" OR owner_id IN (SELECT owner_id FROM follows WHERE followed_id = ?)", id, id, id).
			Pluck("id", &profileIDs).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{&models.Like{}, &models.Comment{}, &models.Favorite{}, &models.Attendance{}} {
			if err := tx.Where("event_id IN (SELECT id FROM events WHERE owner_id = ?)", id).Delete(m).Error; err != nil {
				return err
			}
			if err := tx.Where("owner_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("owner_id = ? OR followed_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	for _, eventID := range eventIDs {
		cache.InvalidateEvent(ctx, eventID)
	}
	for _, profileID := range profileIDs {
		cache.InvalidateProfile(ctx, profileID)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
