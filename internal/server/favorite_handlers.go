package server

import (
	"eventify/internal/models"
	"eventify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFavorites handles GET /api/favorites with event/owner/username filters.
func (s *Server) GetFavorites(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	favorites, err := s.favoriteService.ListFavorites(c.Context(), service.ListFavoritesInput{
		EventID:       uint(c.QueryInt("event", 0)),
		OwnerID:       uint(c.QueryInt("owner", 0)),
		OwnerUsername: c.Query("username"),
		Limit:         p.Limit,
		Offset:        p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(favorites)
}

// CreateFavorite handles POST /api/favorites
func (s *Server) CreateFavorite(c *fiber.Ctx) error {
	var req struct {
		EventID uint `json:"event_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	favorite, err := s.favoriteService.CreateFavorite(c.Context(), service.CreateFavoriteInput{
		UserID:  viewerID(c),
		EventID: req.EventID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(favorite)
}

// GetFavorite handles GET /api/favorites/:id
func (s *Server) GetFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	favorite, err := s.favoriteService.GetFavorite(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(favorite)
}

// DeleteFavorite handles DELETE /api/favorites/:id
func (s *Server) DeleteFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.favoriteService.DeleteFavorite(c.Context(), service.DeleteFavoriteInput{
		UserID:     viewerID(c),
		FavoriteID: id,
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
