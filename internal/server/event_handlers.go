package server

import (
	"time"

	"eventify/internal/models"
	"eventify/internal/repository"
	"eventify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetEvents handles GET /api/events with filter, search, and ordering params.
func (s *Server) GetEvents(c *fiber.Ctx) error {
	p := parsePagination(c, repository.DefaultEventPageSize)

	in := service.ListEventsInput{
		ViewerID:  viewerID(c),
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		OwnerID:   uint(c.QueryInt("owner", 0)),
		Favorite:  c.QueryBool("favorite", false),
		Attending: c.QueryBool("attending", false),
		Ordering:  c.Query("ordering"),
		Limit:     p.Limit,
		Offset:    p.Offset,
	}

	events, err := s.eventService.ListEvents(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(events)
}

// GetEvent handles GET /api/events/:id
func (s *Server) GetEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	event, err := s.eventService.GetEvent(c.Context(), id, viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// CreateEvent handles POST /api/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
		Location    string    `json:"location"`
		Category    string    `json:"category"`
		Price       float64   `json:"price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventService.CreateEvent(c.Context(), service.CreateEventInput{
		UserID:      viewerID(c),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Category:    req.Category,
		Price:       req.Price,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent handles PUT /api/events/:id. Absent fields are left untouched.
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Date        *time.Time `json:"date"`
		Location    *string    `json:"location"`
		Category    *string    `json:"category"`
		Price       *float64   `json:"price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventService.UpdateEvent(c.Context(), service.UpdateEventInput{
		UserID:      viewerID(c),
		EventID:     id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Category:    req.Category,
		Price:       req.Price,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.eventService.DeleteEvent(c.Context(), service.DeleteEventInput{
		UserID:  viewerID(c),
		EventID: id,
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadEventCover handles POST /api/events/:id/cover (multipart form, field "cover").
func (s *Server) UploadEventCover(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		return respondError(c, models.NewValidationError("Cover file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	defer file.Close()

	event, err := s.eventService.UploadCover(c.Context(), service.UploadCoverInput{
		UserID:      viewerID(c),
		EventID:     id,
		Body:        file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}
