package database

import (
	"gorm.io/gorm"

	"github.com/greenspoon/backend/internal/model"
)

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Label{},
		&model.Recipe{},
		&model.RecipeFavorite{},
	)
}
