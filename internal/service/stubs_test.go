package service

import (
	"context"
	"errors"
	"testing"

	"eventify/internal/models"
	"eventify/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-stub repositories. Each noop constructor returns a stub whose
// methods succeed with zero values; tests override only the calls they care
// about.

type eventRepoStub struct {
	createFn       func(context.Context, *models.Event) error
	getByIDFn      func(context.Context, uint, uint) (*models.Event, error)
	getForUpdateFn func(context.Context, uint) (*models.Event, error)
	listFn         func(context.Context, repository.EventQuery, uint) ([]*models.Event, error)
	updateFn       func(context.Context, *models.Event) error
	deleteFn       func(context.Context, uint) error
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.Event) error {
	return s.createFn(ctx, event)
}
func (s *eventRepoStub) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Event, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *eventRepoStub) GetForUpdate(ctx context.Context, id uint) (*models.Event, error) {
	return s.getForUpdateFn(ctx, id)
}
func (s *eventRepoStub) List(ctx context.Context, q repository.EventQuery, viewerID uint) ([]*models.Event, error) {
	return s.listFn(ctx, q, viewerID)
}
func (s *eventRepoStub) Update(ctx context.Context, event *models.Event) error {
	return s.updateFn(ctx, event)
}
func (s *eventRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopEventRepo() *eventRepoStub {
	return &eventRepoStub{
		createFn: func(_ context.Context, _ *models.Event) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Event, error) {
			return &models.Event{ID: id}, nil
		},
		getForUpdateFn: func(_ context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id}, nil
		},
		listFn: func(_ context.Context, _ repository.EventQuery, _ uint) ([]*models.Event, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Event) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByEventFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByEventFn(ctx, eventID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByEventFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type likeRepoStub struct {
	createFn  func(context.Context, *models.Like) error
	getByIDFn func(context.Context, uint) (*models.Like, error)
	listFn    func(context.Context, repository.LikeQuery) ([]*models.Like, error)
	deleteFn  func(context.Context, uint) error
}

func (s *likeRepoStub) Create(ctx context.Context, like *models.Like) error {
	return s.createFn(ctx, like)
}
func (s *likeRepoStub) GetByID(ctx context.Context, id uint) (*models.Like, error) {
	return s.getByIDFn(ctx, id)
}
func (s *likeRepoStub) List(ctx context.Context, q repository.LikeQuery) ([]*models.Like, error) {
	return s.listFn(ctx, q)
}
func (s *likeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn: func(_ context.Context, _ *models.Like) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Like, error) {
			return &models.Like{ID: id}, nil
		},
		listFn:   func(_ context.Context, _ repository.LikeQuery) ([]*models.Like, error) { return nil, nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type favoriteRepoStub struct {
	createFn  func(context.Context, *models.Favorite) error
	getByIDFn func(context.Context, uint) (*models.Favorite, error)
	listFn    func(context.Context, repository.FavoriteQuery) ([]*models.Favorite, error)
	deleteFn  func(context.Context, uint) error
}

func (s *favoriteRepoStub) Create(ctx context.Context, favorite *models.Favorite) error {
	return s.createFn(ctx, favorite)
}
func (s *favoriteRepoStub) GetByID(ctx context.Context, id uint) (*models.Favorite, error) {
	return s.getByIDFn(ctx, id)
}
func (s *favoriteRepoStub) List(ctx context.Context, q repository.FavoriteQuery) ([]*models.Favorite, error) {
	return s.listFn(ctx, q)
}
func (s *favoriteRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		createFn: func(_ context.Context, _ *models.Favorite) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Favorite, error) {
			return &models.Favorite{ID: id}, nil
		},
		listFn: func(_ context.Context, _ repository.FavoriteQuery) ([]*models.Favorite, error) {
			return nil, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type attendanceRepoStub struct {
	createFn        func(context.Context, *models.Attendance) error
	getByIDFn       func(context.Context, uint) (*models.Attendance, error)
	listFn          func(context.Context, repository.AttendanceQuery) ([]*models.Attendance, error)
	listAttendeesFn func(context.Context, uint, int, int) ([]models.User, error)
	hasAttendeeFn   func(context.Context, uint, uint) (bool, error)
	deleteFn        func(context.Context, uint) error
}

func (s *attendanceRepoStub) Create(ctx context.Context, attendance *models.Attendance) error {
	return s.createFn(ctx, attendance)
}
func (s *attendanceRepoStub) GetByID(ctx context.Context, id uint) (*models.Attendance, error) {
	return s.getByIDFn(ctx, id)
}
func (s *attendanceRepoStub) List(ctx context.Context, q repository.AttendanceQuery) ([]*models.Attendance, error) {
	return s.listFn(ctx, q)
}
func (s *attendanceRepoStub) ListAttendees(ctx context.Context, eventID uint, limit, offset int) ([]models.User, error) {
	return s.listAttendeesFn(ctx, eventID, limit, offset)
}
func (s *attendanceRepoStub) HasAttendee(ctx context.Context, eventID, userID uint) (bool, error) {
	return s.hasAttendeeFn(ctx, eventID, userID)
}
func (s *attendanceRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopAttendanceRepo() *attendanceRepoStub {
	return &attendanceRepoStub{
		createFn: func(_ context.Context, _ *models.Attendance) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Attendance, error) {
			return &models.Attendance{ID: id}, nil
		},
		listFn: func(_ context.Context, _ repository.AttendanceQuery) ([]*models.Attendance, error) {
			return nil, nil
		},
		listAttendeesFn: func(_ context.Context, _ uint, _, _ int) ([]models.User, error) {
			return nil, nil
		},
		hasAttendeeFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

type followRepoStub struct {
	createFn  func(context.Context, *models.Follow) error
	getByIDFn func(context.Context, uint) (*models.Follow, error)
	listFn    func(context.Context, repository.FollowQuery) ([]*models.Follow, error)
	deleteFn  func(context.Context, uint) error
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) GetByID(ctx context.Context, id uint) (*models.Follow, error) {
	return s.getByIDFn(ctx, id)
}
func (s *followRepoStub) List(ctx context.Context, q repository.FollowQuery) ([]*models.Follow, error) {
	return s.listFn(ctx, q)
}
func (s *followRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn: func(_ context.Context, _ *models.Follow) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Follow, error) {
			return &models.Follow{ID: id}, nil
		},
		listFn:   func(_ context.Context, _ repository.FollowQuery) ([]*models.Follow, error) { return nil, nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

type profileRepoStub struct {
	getByIDFn      func(context.Context, uint, uint) (*models.Profile, error)
	getForUpdateFn func(context.Context, uint) (*models.Profile, error)
	getByOwnerIDFn func(context.Context, uint, uint) (*models.Profile, error)
	listFn         func(context.Context, int, int, uint) ([]*models.Profile, error)
	updateFn       func(context.Context, *models.Profile) error
}

func (s *profileRepoStub) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *profileRepoStub) GetForUpdate(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getForUpdateFn(ctx, id)
}
func (s *profileRepoStub) GetByOwnerID(ctx context.Context, ownerID uint, viewerID uint) (*models.Profile, error) {
	return s.getByOwnerIDFn(ctx, ownerID, viewerID)
}
func (s *profileRepoStub) List(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Profile, error) {
	return s.listFn(ctx, limit, offset, viewerID)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Profile, error) {
			return &models.Profile{ID: id}, nil
		},
		getForUpdateFn: func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id}, nil
		},
		getByOwnerIDFn: func(_ context.Context, ownerID, _ uint) (*models.Profile, error) {
			return &models.Profile{OwnerID: ownerID}, nil
		},
		listFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Profile, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Profile) error { return nil },
	}
}

// Error assertion helpers keyed on the AppError code.

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertErrCode(t, err, models.CodeValidation)
}

func assertUnauthenticatedError(t *testing.T, err error) {
	t.Helper()
	assertErrCode(t, err, models.CodeUnauthenticated)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertErrCode(t, err, models.CodeForbidden)
}
