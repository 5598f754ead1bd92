package repository

import (
	"context"
	"errors"

	"eventify/internal/cache"
	"eventify/internal/models"

	"gorm.io/gorm"
)

// AttendanceQuery describes filters for an attendance listing.
type AttendanceQuery struct {
	EventID       uint
	OwnerID       uint
	OwnerUsername string
	Limit         int
	Offset        int
}

// AttendanceRepository defines the interface for attendance data operations
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	GetByID(ctx context.Context, id uint) (*models.Attendance, error)
	List(ctx context.Context, q AttendanceQuery) ([]*models.Attendance, error)
	ListAttendees(ctx context.Context, eventID uint, limit, offset int) ([]models.User, error)
	HasAttendee(ctx context.Context, eventID, userID uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	if err := r.db.WithContext(ctx).Create(attendance).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You are already attending this event")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateEvent(ctx, attendance.EventID)
	return nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id uint) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&attendance, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Attendance", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &attendance, nil
}

func (r *attendanceRepository) List(ctx context.Context, q AttendanceQuery) ([]*models.Attendance, error) {
	db := r.db.WithContext(ctx).Preload("Owner")
	if q.EventID != 0 {
		db = db.Where("attendances.event_id = ?", q.EventID)
	}
	if q.OwnerID != 0 {
		db = db.Where("attendances.owner_id = ?", q.OwnerID)
	}
	if q.OwnerUsername != "" {
		db = db.Joins("JOIN users ON users.id = attendances.owner_id").
			Where("users.username = ?", q.OwnerUsername)
	}

	var attendances []*models.Attendance
	err := db.Order("attendances.created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&attendances).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return attendances, nil
}

// ListAttendees returns the users registered for the event, most recent first.
func (r *attendanceRepository) ListAttendees(ctx context.Context, eventID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN attendances ON attendances.owner_id = users.id").
		Where("attendances.event_id = ?", eventID).
		Order("attendances.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *attendanceRepository) HasAttendee(ctx context.Context, eventID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("event_id = ? AND owner_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id uint) error {
	var attendance models.Attendance
	if err := r.db.WithContext(ctx).First(&attendance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Attendance", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Attendance{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEvent(ctx, attendance.EventID)
	return nil
}
