package repository

import (
	"context"
	"testing"
	"time"

	"eventify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	commenter := createTestUser(t, db, "commenter")
	event := createTestEvent(t, db, owner, "Show", models.CategoryMusic)

	older := &models.Comment{OwnerID: commenter.ID, EventID: event.ID, Content: "first"}
	require.NoError(t, repo.Create(ctx, older))
	// Force distinct timestamps so the ordering is deterministic.
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := &models.Comment{OwnerID: owner.ID, EventID: event.ID, Content: "second"}
	require.NoError(t, repo.Create(ctx, newer))

	comments, err := repo.ListByEvent(ctx, event.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)
	assert.Equal(t, "commenter", comments[1].Owner.Username)
}

func TestCommentRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	event := createTestEvent(t, db, owner, "Show", models.CategoryMusic)

	comment := &models.Comment{OwnerID: owner.ID, EventID: event.ID, Content: "draft"}
	require.NoError(t, repo.Create(ctx, comment))

	comment.Content = "final"
	require.NoError(t, repo.Update(ctx, comment))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)
	assert.Equal(t, "owner", got.Owner.Username)

	require.NoError(t, repo.Delete(ctx, comment.ID))
	_, err = repo.GetByID(ctx, comment.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
