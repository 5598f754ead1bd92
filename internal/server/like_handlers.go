package server

import (
	"eventify/internal/models"
	"eventify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetLikes handles GET /api/likes with optional event/owner filters.
func (s *Server) GetLikes(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	likes, err := s.likeService.ListLikes(c.Context(), service.ListLikesInput{
		EventID: uint(c.QueryInt("event", 0)),
		OwnerID: uint(c.QueryInt("owner", 0)),
		Limit:   p.Limit,
		Offset:  p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(likes)
}

// CreateLike handles POST /api/likes
func (s *Server) CreateLike(c *fiber.Ctx) error {
	var req struct {
		EventID uint `json:"event_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	like, err := s.likeService.CreateLike(c.Context(), service.CreateLikeInput{
		UserID:  viewerID(c),
		EventID: req.EventID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(like)
}

// GetLike handles GET /api/likes/:id
func (s *Server) GetLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	like, err := s.likeService.GetLike(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(like)
}

// DeleteLike handles DELETE /api/likes/:id
func (s *Server) DeleteLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.DeleteLike(c.Context(), service.DeleteLikeInput{
		UserID: viewerID(c),
		LikeID: id,
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
