package database

import (
	"gorm.io/gorm"

	"github.com/AMN-D/RICE/internal/models"
)

// Migrate brings the schema up to date for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Rice{},
		&models.Theme{},
		&models.ThemeMedia{},
		&models.Review{},
	)
}
