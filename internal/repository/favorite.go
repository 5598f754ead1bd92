package repository

import (
	"context"
	"errors"

	"eventify/internal/cache"
	"eventify/internal/models"

	"gorm.io/gorm"
)

// FavoriteQuery describes filters for a favorite listing. OwnerUsername
// widens the listing to another user's favorites by name.
type FavoriteQuery struct {
	EventID       uint
	OwnerID       uint
	OwnerUsername string
	Limit         int
	Offset        int
}

// FavoriteRepository defines the interface for favorite data operations
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	GetByID(ctx context.Context, id uint) (*models.Favorite, error)
	List(ctx context.Context, q FavoriteQuery) ([]*models.Favorite, error)
	Delete(ctx context.Context, id uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already favorited this event")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateEvent(ctx, favorite.EventID)
	return nil
}

func (r *favoriteRepository) GetByID(ctx context.Context, id uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&favorite, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Favorite", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &favorite, nil
}

func (r *favoriteRepository) List(ctx context.Context, q FavoriteQuery) ([]*models.Favorite, error) {
	db := r.db.WithContext(ctx).Preload("Owner")
	if q.EventID != 0 {
		db = db.Where("favorites.event_id = ?", q.EventID)
	}
	if q.OwnerID != 0 {
		db = db.Where("favorites.owner_id = ?", q.OwnerID)
	}
	if q.OwnerUsername != "" {
		db = db.Joins("JOIN users ON users.id = favorites.owner_id").
			Where("users.username = ?", q.OwnerUsername)
	}

	var favorites []*models.Favorite
	err := db.Order("favorites.created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&favorites).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return favorites, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, id uint) error {
	var favorite models.Favorite
	if err := r.db.WithContext(ctx).First(&favorite, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Favorite", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Favorite{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEvent(ctx, favorite.EventID)
	return nil
}
