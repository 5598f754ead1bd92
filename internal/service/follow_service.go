package service

import (
	"context"

	"eventify/internal/models"
	"eventify/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

type CreateFollowInput struct {
	UserID     uint
	FollowedID uint
}

type DeleteFollowInput struct {
	UserID   uint
	FollowID uint
}

type ListFollowsInput struct {
	OwnerID    uint
	FollowedID uint
	Limit      int
	Offset     int
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

func (s *FollowService) CreateFollow(ctx context.Context, in CreateFollowInput) (*models.Follow, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	if in.FollowedID == in.UserID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, in.FollowedID); err != nil {
		return nil, err
	}

	follow := &models.Follow{OwnerID: in.UserID, FollowedID: in.FollowedID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return s.followRepo.GetByID(ctx, follow.ID)
}

func (s *FollowService) GetFollow(ctx context.Context, id uint) (*models.Follow, error) {
	return s.followRepo.GetByID(ctx, id)
}

func (s *FollowService) ListFollows(ctx context.Context, in ListFollowsInput) ([]*models.Follow, error) {
	return s.followRepo.List(ctx, repository.FollowQuery{
		OwnerID:    in.OwnerID,
		FollowedID: in.FollowedID,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
}

func (s *FollowService) DeleteFollow(ctx context.Context, in DeleteFollowInput) error {
	follow, err := s.followRepo.GetByID(ctx, in.FollowID)
	if err != nil {
		return err
	}
	if err := RequireOwner(in.UserID, follow); err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, in.FollowID)
}
