package service

import (
	"context"

	"eventify/internal/models"
	"eventify/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

type DeleteUserInput struct {
	ViewerID uint
	UserID   uint
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// DeleteUser removes the viewer's own account and everything owned by it.
func (s *UserService) DeleteUser(ctx context.Context, in DeleteUserInput) error {
	if in.ViewerID == 0 {
		return models.NewUnauthenticatedError("Authentication required")
	}
	if in.ViewerID != in.UserID {
		return models.NewForbiddenError("You can only delete your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, in.UserID)
}
