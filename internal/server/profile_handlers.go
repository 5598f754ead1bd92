package server

import (
	"eventify/internal/models"
	"eventify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfiles handles GET /api/profiles
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	profiles, err := s.profileService.ListProfiles(c.Context(), p.Limit, p.Offset, viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfile handles GET /api/profiles/:id
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetProfile(c.Context(), id, viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profiles/:id. Absent fields are left untouched.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name     *string `json:"name"`
		Bio      *string `json:"bio"`
		Location *string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:    viewerID(c),
		ProfileID: id,
		Name:      req.Name,
		Bio:       req.Bio,
		Location:  req.Location,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UploadProfileAvatar handles POST /api/profiles/:id/avatar (multipart form, field "avatar").
func (s *Server) UploadProfileAvatar(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return respondError(c, models.NewValidationError("Avatar file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	defer file.Close()

	profile, err := s.profileService.UploadAvatar(c.Context(), service.UploadAvatarInput{
		UserID:      viewerID(c),
		ProfileID:   id,
		Body:        file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
