package service

import (
	"context"

	"eventify/internal/models"
	"eventify/internal/repository"
)

type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	eventRepo      repository.EventRepository
}

type CreateAttendanceInput struct {
	UserID  uint
	EventID uint
}

type DeleteAttendanceInput struct {
	UserID       uint
	AttendanceID uint
}

// ListAttendancesInput defaults to the viewer's own registrations; Username
// widens it to another user's public schedule.
type ListAttendancesInput struct {
	ViewerID uint
	EventID  uint
	Username string
	Limit    int
	Offset   int
}

type ListAttendeesInput struct {
	ViewerID uint
	EventID  uint
	Limit    int
	Offset   int
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, eventRepo repository.EventRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
	}
}

func (s *AttendanceService) CreateAttendance(ctx context.Context, in CreateAttendanceInput) (*models.Attendance, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	if _, err := s.eventRepo.GetForUpdate(ctx, in.EventID); err != nil {
		return nil, err
	}

	attendance := &models.Attendance{OwnerID: in.UserID, EventID: in.EventID}
	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		return nil, err
	}
	return s.attendanceRepo.GetByID(ctx, attendance.ID)
}

func (s *AttendanceService) GetAttendance(ctx context.Context, id uint) (*models.Attendance, error) {
	return s.attendanceRepo.GetByID(ctx, id)
}

func (s *AttendanceService) ListAttendances(ctx context.Context, in ListAttendancesInput) ([]*models.Attendance, error) {
	q := repository.AttendanceQuery{
		EventID: in.EventID,
		Limit:   in.Limit,
		Offset:  in.Offset,
	}
	if in.Username != "" {
		q.OwnerUsername = in.Username
	} else {
		if in.ViewerID == 0 {
			return []*models.Attendance{}, nil
		}
		q.OwnerID = in.ViewerID
	}
	return s.attendanceRepo.List(ctx, q)
}

// ListAttendees returns the event's roster to its owner or to a registered
// attendee. Everyone else gets an empty list, not an error; who is going is
// not public information.
func (s *AttendanceService) ListAttendees(ctx context.Context, in ListAttendeesInput) ([]models.User, error) {
	event, err := s.eventRepo.GetForUpdate(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	allowed := false
	if in.ViewerID != 0 {
		if event.OwnerID == in.ViewerID {
			allowed = true
		} else {
			attending, err := s.attendanceRepo.HasAttendee(ctx, in.EventID, in.ViewerID)
			if err != nil {
				return nil, err
			}
			allowed = attending
		}
	}
	if !allowed {
		return []models.User{}, nil
	}

	return s.attendanceRepo.ListAttendees(ctx, in.EventID, in.Limit, in.Offset)
}

func (s *AttendanceService) DeleteAttendance(ctx context.Context, in DeleteAttendanceInput) error {
	attendance, err := s.attendanceRepo.GetByID(ctx, in.AttendanceID)
	if err != nil {
		return err
	}
	if err := RequireOwner(in.UserID, attendance); err != nil {
		return err
	}
	return s.attendanceRepo.Delete(ctx, in.AttendanceID)
}
