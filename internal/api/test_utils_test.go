package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AMN-D/RICE/config"
	"github.com/AMN-D/RICE/internal/middleware"
	"github.com/AMN-D/RICE/internal/models"
	"github.com/AMN-D/RICE/internal/service"
	"github.com/AMN-D/RICE/internal/types"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

// setupRouter assembles the full route table on an in-memory database.
func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cfg := &config.Config{
		JWTSecret:          "test-jwt-secret",
		SessionSecret:      "test-session-secret",
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURI:  "http://localhost:8000/auth/callback",
		GoogleAuthURL:      "https://accounts.google.com/o/oauth2/v2/auth",
		GoogleTokenURL:     "https://oauth2.googleapis.com/token",
		FrontendURL:        "http://localhost:5173",
	}

	authService := service.NewAuthService(cfg.JWTSecret, cfg.SessionSecret)
	googleService := service.NewGoogleService(cfg)
	userService := service.NewUserService(db)

	router := gin.New()
	root := router.Group("")
	NewAuthHandler(cfg, authService, googleService, userService).RegisterRoutes(root)
	NewProfileHandler(userService, authService, nil).RegisterRoutes(root)
	NewRiceHandler(service.NewRiceService(db), authService, middleware.NewRiceSubmissionRateLimiter(nil)).RegisterRoutes(root)
	NewThemeHandler(service.NewThemeService(db), authService).RegisterRoutes(root)
	NewMediaHandler(service.NewMediaService(db), authService).RegisterRoutes(root)
	NewReviewHandler(service.NewReviewService(db), authService).RegisterRoutes(root)

	return &testEnv{router: router, db: db, auth: authService}
}

// createUserWithToken registers an account and mints a session token.
func (e *testEnv) createUserWithToken(t *testing.T, email string) (*models.User, string) {
	t.Helper()

	googleID := "google-" + email
	user := &models.User{
		Email:    email,
		GoogleID: &googleID,
		Name:     "Test User",
		Picture:  "https://example.com/pic.jpg",
	}
	require.NoError(t, e.db.Create(user).Error)

	token, err := e.auth.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

// do performs a request, attaching the session cookie when token is set.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func riceBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"dotfile_url": "https://github.com/example/dotfiles",
		"themes": []map[string]interface{}{
			{
				"name": "Nord",
				"tags": "nord,dark",
				"media": []map[string]interface{}{
					{"url": "https://example.com/shot.png", "media_type": "IMAGE"},
				},
			},
		},
	}
}

// seedRice creates a rice directly through the service layer.
func (e *testEnv) seedRice(t *testing.T, userID uint, name string) *models.Rice {
	t.Helper()

	rice, err := service.NewRiceService(e.db).Create(context.Background(), userID, &types.CreateRiceRequest{
		Name:       name,
		DotfileURL: "https://github.com/example/dotfiles",
		Themes: []types.CreateThemeRequest{
			{
				Name: "Nord",
				Tags: "nord,dark",
				Media: []types.CreateMediaRequest{
					{URL: "https://example.com/shot.png", MediaType: models.MediaTypeImage},
				},
			},
		},
	})
	require.NoError(t, err)
	return rice
}
