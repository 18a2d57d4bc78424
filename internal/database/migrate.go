package database

import (
	"gorm.io/gorm"

	"github.com/recipemagic/backend/internal/models"
)

// RunMigrations applies the schema using GORM auto-migration.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.SavedRecipe{},
	)
}
