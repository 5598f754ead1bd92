package server

import (
	"eventify/internal/models"
	"eventify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAttendances handles GET /api/attendances. Without a username filter it
// lists the viewer's own registrations.
func (s *Server) GetAttendances(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	attendances, err := s.attendanceService.ListAttendances(c.Context(), service.ListAttendancesInput{
		ViewerID: viewerID(c),
		EventID:  uint(c.QueryInt("event", 0)),
		Username: c.Query("username"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(attendances)
}

// CreateAttendance handles POST /api/attendances
func (s *Server) CreateAttendance(c *fiber.Ctx) error {
	var req struct {
		EventID uint `json:"event_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	attendance, err := s.attendanceService.CreateAttendance(c.Context(), service.CreateAttendanceInput{
		UserID:  viewerID(c),
		EventID: req.EventID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(attendance)
}

// GetAttendance handles GET /api/attendances/:id
func (s *Server) GetAttendance(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	attendance, err := s.attendanceService.GetAttendance(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(attendance)
}

// GetEventAttendees handles GET /api/events/:id/attendees. Only the event
// owner and registered attendees see the roster.
func (s *Server) GetEventAttendees(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	attendees, err := s.attendanceService.ListAttendees(c.Context(), service.ListAttendeesInput{
		ViewerID: viewerID(c),
		EventID:  eventID,
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(attendees)
}

// DeleteAttendance handles DELETE /api/attendances/:id
func (s *Server) DeleteAttendance(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.attendanceService.DeleteAttendance(c.Context(), service.DeleteAttendanceInput{
		UserID:       viewerID(c),
		AttendanceID: id,
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
