package repository

import (
	"context"
	"errors"

	"eventify/internal/cache"
	"eventify/internal/models"

	"gorm.io/gorm"
)

// LikeQuery describes filters for a like listing.
type LikeQuery struct {
	EventID uint
	OwnerID uint
	Limit   int
	Offset  int
}

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	GetByID(ctx context.Context, id uint) (*models.Like, error)
	List(ctx context.Context, q LikeQuery) ([]*models.Like, error)
	Delete(ctx context.Context, id uint) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like. The (owner, event) unique index is the duplicate
// check; a violation surfaces as Conflict without a prior read.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already liked this event")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateEvent(ctx, like.EventID)
	return nil
}

func (r *likeRepository) GetByID(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&like, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Like", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

func (r *likeRepository) List(ctx context.Context, q LikeQuery) ([]*models.Like, error) {
	db := r.db.WithContext(ctx).Preload("Owner")
	if q.EventID != 0 {
		db = db.Where("event_id = ?", q.EventID)
	}
	if q.OwnerID != 0 {
		db = db.Where("owner_id = ?", q.OwnerID)
	}

	var likes []*models.Like
	err := db.Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&likes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *likeRepository) Delete(ctx context.Context, id uint) error {
	var like models.Like
	if err := r.db.WithContext(ctx).First(&like, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Like", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Like{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEvent(ctx, like.EventID)
	return nil
}
