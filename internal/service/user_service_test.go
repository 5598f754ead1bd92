package service

import (
	"context"
	"testing"

	"eventify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		err := svc.DeleteUser(context.Background(), DeleteUserInput{UserID: 1})
		assertUnauthenticatedError(t, err)
	})

	t.Run("cannot delete another account", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		err := svc.DeleteUser(context.Background(), DeleteUserInput{ViewerID: 1, UserID: 2})
		assertForbiddenError(t, err)
	})

	t.Run("missing user propagates not found", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewUserService(userRepo)
		err := svc.DeleteUser(context.Background(), DeleteUserInput{ViewerID: 1, UserID: 1})
		assertErrCode(t, err, models.CodeNotFound)
	})

	t.Run("own account deleted", func(t *testing.T) {
		t.Parallel()
		var deleted uint
		userRepo := noopUserRepo()
		userRepo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		svc := NewUserService(userRepo)
		err := svc.DeleteUser(context.Background(), DeleteUserInput{ViewerID: 1, UserID: 1})
		require.NoError(t, err)
		assert.Equal(t, uint(1), deleted)
	})
}
