package server

import (
	"eventify/internal/models"
	"eventify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFollows handles GET /api/follows with owner/followed filters.
func (s *Server) GetFollows(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	follows, err := s.followService.ListFollows(c.Context(), service.ListFollowsInput{
		OwnerID:    uint(c.QueryInt("owner", 0)),
		FollowedID: uint(c.QueryInt("followed", 0)),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(follows)
}

// CreateFollow handles POST /api/follows
func (s *Server) CreateFollow(c *fiber.Ctx) error {
	var req struct {
		FollowedID uint `json:"followed_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	follow, err := s.followService.CreateFollow(c.Context(), service.CreateFollowInput{
		UserID:     viewerID(c),
		FollowedID: req.FollowedID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(follow)
}

// GetFollow handles GET /api/follows/:id
func (s *Server) GetFollow(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	follow, err := s.followService.GetFollow(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(follow)
}

// DeleteFollow handles DELETE /api/follows/:id
func (s *Server) DeleteFollow(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.DeleteFollow(c.Context(), service.DeleteFollowInput{
		UserID:   viewerID(c),
		FollowID: id,
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
