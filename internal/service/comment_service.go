package service

import (
	"context"

	"eventify/internal/models"
	"eventify/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	eventRepo   repository.EventRepository
}

type CreateCommentInput struct {
	UserID  uint
	EventID uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

const maxCommentLen = 10000

func NewCommentService(
	commentRepo repository.CommentRepository,
	eventRepo repository.EventRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		eventRepo:   eventRepo,
	}
}

func validateCommentContent(content string) error {
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 10000 characters)")
	}
	return nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	if _, err := s.eventRepo.GetForUpdate(ctx, in.EventID); err != nil {
		return nil, err
	}
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: in.Content,
		OwnerID: in.UserID,
		EventID: in.EventID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.GetComment(ctx, comment.ID, in.UserID)
}

func (s *CommentService) GetComment(ctx context.Context, id uint, viewerID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.IsOwner = viewerID != 0 && viewerID == comment.OwnerID
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, eventID uint, viewerID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID, 0); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByEvent(ctx, eventID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		c.IsOwner = viewerID != 0 && viewerID == c.OwnerID
	}
	return comments, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(in.UserID, comment); err != nil {
		return nil, err
	}
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.GetComment(ctx, comment.ID, in.UserID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if err := RequireOwner(in.UserID, comment); err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}
