package database

import (
	"testing"

	"eventify/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPersistentModels_MigrateCleanly(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(PersistentModels()...))

	for _, table := range []string{"users", "profiles", "events", "comments", "likes", "favorites", "attendances", "follows"} {
		require.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestPersistentModels_IncludesEvent(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*models.Event); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Event")
}
