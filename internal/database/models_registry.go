package database

import "eventify/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Event{},
		&models.Comment{},
		&models.Like{},
		&models.Favorite{},
		&models.Attendance{},
		&models.Follow{},
	}
}
