package service

import (
	"context"

	"eventify/internal/models"
	"eventify/internal/repository"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	eventRepo    repository.EventRepository
}

type CreateFavoriteInput struct {
	UserID  uint
	EventID uint
}

type DeleteFavoriteInput struct {
	UserID     uint
	FavoriteID uint
}

type ListFavoritesInput struct {
	EventID       uint
	OwnerID       uint
	OwnerUsername string
	Limit         int
	Offset        int
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, eventRepo repository.EventRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		eventRepo:    eventRepo,
	}
}

func (s *FavoriteService) CreateFavorite(ctx context.Context, in CreateFavoriteInput) (*models.Favorite, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	if _, err := s.eventRepo.GetForUpdate(ctx, in.EventID); err != nil {
		return nil, err
	}

	favorite := &models.Favorite{OwnerID: in.UserID, EventID: in.EventID}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}
	return s.favoriteRepo.GetByID(ctx, favorite.ID)
}

func (s *FavoriteService) GetFavorite(ctx context.Context, id uint) (*models.Favorite, error) {
	return s.favoriteRepo.GetByID(ctx, id)
}

func (s *FavoriteService) ListFavorites(ctx context.Context, in ListFavoritesInput) ([]*models.Favorite, error) {
	return s.favoriteRepo.List(ctx, repository.FavoriteQuery{
		EventID:       in.EventID,
		OwnerID:       in.OwnerID,
		OwnerUsername: in.OwnerUsername,
		Limit:         in.Limit,
		Offset:        in.Offset,
	})
}

func (s *FavoriteService) DeleteFavorite(ctx context.Context, in DeleteFavoriteInput) error {
	favorite, err := s.favoriteRepo.GetByID(ctx, in.FavoriteID)
	if err != nil {
		return err
	}
	if err := RequireOwner(in.UserID, favorite); err != nil {
		return err
	}
	return s.favoriteRepo.Delete(ctx, in.FavoriteID)
}
