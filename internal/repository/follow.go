package repository

import (
	"context"
	"errors"

	"eventify/internal/cache"
	"eventify/internal/models"

	"gorm.io/gorm"
)

// FollowQuery describes filters for a follow listing.
type FollowQuery struct {
	OwnerID    uint
	FollowedID uint
	Limit      int
	Offset     int
}

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	GetByID(ctx context.Context, id uint) (*models.Follow, error)
	List(ctx context.Context, q FollowQuery) ([]*models.Follow, error)
	Delete(ctx context.Context, id uint) error
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You are already following this user")
		}
		return models.NewInternalError(err)
	}
	r.invalidateProfiles(ctx, follow.OwnerID, follow.FollowedID)
	return nil
}

// invalidateProfiles drops the cached profiles of the given users. A follow
// write changes the followers_count of one side and the following_count of
// the other, and both are embedded in the cached anonymous profile.
func (r *followRepository) invalidateProfiles(ctx context.Context, userIDs ...uint) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("owner_id IN ?", userIDs).
		Pluck("id", &ids).Error; err != nil {
		return
	}
	for _, id := range ids {
		cache.InvalidateProfile(ctx, id)
	}
}

func (r *followRepository) GetByID(ctx context.Context, id uint) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Followed").
		First(&follow, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Follow", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &follow, nil
}

func (r *followRepository) List(ctx context.Context, q FollowQuery) ([]*models.Follow, error) {
	db := r.db.WithContext(ctx).Preload("Owner").Preload("Followed")
	if q.OwnerID != 0 {
		db = db.Where("owner_id = ?", q.OwnerID)
	}
	if q.FollowedID != 0 {
		db = db.Where("followed_id = ?", q.FollowedID)
	}

	var follows []*models.Follow
	err := db.Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&follows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}

func (r *followRepository) Delete(ctx context.Context, id uint) error {
	var follow models.Follow
	if err := r.db.WithContext(ctx).First(&follow, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Follow", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Follow{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateProfiles(ctx, follow.OwnerID, follow.FollowedID)
	return nil
}
