package repository

import (
	"context"
	"errors"

	"eventify/internal/cache"
	"eventify/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Profile, error)
	GetForUpdate(ctx context.Context, id uint) (*models.Profile, error)
	GetByOwnerID(ctx context.Context, ownerID uint, viewerID uint) (*models.Profile, error)
	List(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

// profileCacheEntry is the cached form of a profile. Avatar is json:"-" on
// the model, so the cache carries the object key alongside the record.
type profileCacheEntry struct {
	Profile   models.Profile `json:"profile"`
	AvatarKey string         `json:"avatar_key"`
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Profile, error) {
	var profile models.Profile

	fetch := func() error {
		return r.applyProfileDetails(r.db.WithContext(ctx), viewerID).
			Preload("Owner").
			First(&profile, id).Error
	}

	var err error
	if viewerID == 0 {
		var entry profileCacheEntry
		err = cache.Aside(ctx, cache.ProfileKey(id), &entry, cache.ProfileTTL, func() error {
			if err := fetch(); err != nil {
				return err
			}
			entry = profileCacheEntry{Profile: profile, AvatarKey: profile.Avatar}
			return nil
		})
		if err == nil {
			profile = entry.Profile
			profile.Avatar = entry.AvatarKey
		}
	} else {
		err = fetch()
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

// GetForUpdate loads the row straight from the DB, bypassing the cache.
// Mutating paths use it so a cached copy never feeds a Save.
func (r *profileRepository) GetForUpdate(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByOwnerID(ctx context.Context, ownerID uint, viewerID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.applyProfileDetails(r.db.WithContext(ctx), viewerID).
		Preload("Owner").
		Where("profiles.owner_id = ?", ownerID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", ownerID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.applyProfileDetails(r.db.WithContext(ctx).Model(&models.Profile{}), viewerID).
		Preload("Owner").
		Order("profiles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

// applyProfileDetails adds follower aggregates and the viewer's own follow id
// in a single query.
func (r *profileRepository) applyProfileDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "profiles.*, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.followed_id = profiles.owner_id) as followers_count, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.owner_id = profiles.owner_id) as following_count"

	if viewerID != 0 {
		return db.Select(selectQuery+
			", (SELECT id FROM follows WHERE follows.owner_id = ? AND follows.followed_id = profiles.owner_id) as following_id",
			viewerID)
	}

	return db.Select(selectQuery + ", NULL as following_id")
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.ID)
	return nil
}
