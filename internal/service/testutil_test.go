package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AMN-D/RICE/internal/models"
	"github.com/AMN-D/RICE/internal/types"
)

// newTestDB opens an in-memory sqlite database private to the test. The
// named DSN keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Rice{},
		&models.Theme{},
		&models.ThemeMedia{},
		&models.Review{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	googleID := "google-" + email
	user := &models.User{
		Email:    email,
		GoogleID: &googleID,
		Name:     "Test User",
		Picture:  "https://example.com/pic.jpg",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func riceRequest(name string) *types.CreateRiceRequest {
	return &types.CreateRiceRequest{
		Name:       name,
		DotfileURL: "https://github.com/example/dotfiles",
		Themes: []types.CreateThemeRequest{
			{
				Name: "Nord",
				Tags: "nord,dark,minimal",
				Media: []types.CreateMediaRequest{
					{URL: "https://example.com/shot1.png", MediaType: "IMAGE", DisplayOrder: 0},
				},
			},
		},
	}
}

func createTestRice(t *testing.T, db *gorm.DB, userID uint, name string) *models.Rice {
	t.Helper()

	rice, err := NewRiceService(db).Create(context.Background(), userID, riceRequest(name))
	require.NoError(t, err)
	return rice
}
