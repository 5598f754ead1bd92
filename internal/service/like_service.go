package service

import (
	"context"

	"eventify/internal/models"
	"eventify/internal/repository"
)

type LikeService struct {
	likeRepo  repository.LikeRepository
	eventRepo repository.EventRepository
}

type CreateLikeInput struct {
	UserID  uint
	EventID uint
}

type DeleteLikeInput struct {
	UserID uint
	LikeID uint
}

type ListLikesInput struct {
	EventID uint
	OwnerID uint
	Limit   int
	Offset  int
}

func NewLikeService(likeRepo repository.LikeRepository, eventRepo repository.EventRepository) *LikeService {
	return &LikeService{
		likeRepo:  likeRepo,
		eventRepo: eventRepo,
	}
}

func (s *LikeService) CreateLike(ctx context.Context, in CreateLikeInput) (*models.Like, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	if _, err := s.eventRepo.GetForUpdate(ctx, in.EventID); err != nil {
		return nil, err
	}

	like := &models.Like{OwnerID: in.UserID, EventID: in.EventID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}
	return s.likeRepo.GetByID(ctx, like.ID)
}

func (s *LikeService) GetLike(ctx context.Context, id uint) (*models.Like, error) {
	return s.likeRepo.GetByID(ctx, id)
}

func (s *LikeService) ListLikes(ctx context.Context, in ListLikesInput) ([]*models.Like, error) {
	return s.likeRepo.List(ctx, repository.LikeQuery{
		EventID: in.EventID,
		OwnerID: in.OwnerID,
		Limit:   in.Limit,
		Offset:  in.Offset,
	})
}

func (s *LikeService) DeleteLike(ctx context.Context, in DeleteLikeInput) error {
	like, err := s.likeRepo.GetByID(ctx, in.LikeID)
	if err != nil {
		return err
	}
	if err := RequireOwner(in.UserID, like); err != nil {
		return err
	}
	return s.likeRepo.Delete(ctx, in.LikeID)
}
