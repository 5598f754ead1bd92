package server

import (
	"eventify/internal/models"
	"eventify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/users/me and returns the authenticated user with
// their profile attached.
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return respondError(c, models.NewNotFoundError("User", viewerID(c)))
	}

	profile, err := s.profileService.GetProfileByOwner(c.Context(), user.ID, viewerID(c))
	if err == nil {
		user.Profile = profile
	}
	return c.JSON(user)
}

// DeleteMe handles DELETE /api/users/me. This is irreversible and removes
// everything the account owns.
func (s *Server) DeleteMe(c *fiber.Ctx) error {
	uid := viewerID(c)
	if err := s.userService.DeleteUser(c.Context(), service.DeleteUserInput{
		ViewerID: uid,
		UserID:   uid,
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
