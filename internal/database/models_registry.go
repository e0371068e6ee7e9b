package database

import "gallery/internal/models"

// PersistentModels returns the schema-managed GORM models in dependency order.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Photo{},
		&models.Like{},
		&models.Favorite{},
	}
}
