package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/AMN-D/RICE/config"
	"github.com/AMN-D/RICE/internal/api"
	"github.com/AMN-D/RICE/internal/middleware"
	"github.com/AMN-D/RICE/internal/service"
)

// Server wires the services and HTTP layer together.
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New builds the engine with every route registered. redisClient and
// storage may be nil; the features that need them degrade.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, storage *config.S3Config) *Server {
	authService := service.NewAuthService(cfg.JWTSecret, cfg.SessionSecret)
	googleService := service.NewGoogleService(cfg)
	userService := service.NewUserService(db)
	riceService := service.NewRiceService(db)
	themeService := service.NewThemeService(db)
	mediaService := service.NewMediaService(db)
	reviewService := service.NewReviewService(db)

	riceLimiter := middleware.NewRiceSubmissionRateLimiter(redisClient)

	router := gin.Default()
	router.Use(middleware.CORS(cfg.FrontendURL))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"server_status": "running"})
	})
	router.GET("/dashboard", middleware.AuthMiddleware(authService), func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		c.JSON(http.StatusOK, gin.H{"message": "welcome to your dashboard", "user_id": userID})
	})

	root := router.Group("")
	api.NewAuthHandler(cfg, authService, googleService, userService).RegisterRoutes(root)
	api.NewProfileHandler(userService, authService, storage).RegisterRoutes(root)
	api.NewRiceHandler(riceService, authService, riceLimiter).RegisterRoutes(root)
	api.NewThemeHandler(themeService, authService).RegisterRoutes(root)
	api.NewMediaHandler(mediaService, authService).RegisterRoutes(root)
	api.NewReviewHandler(reviewService, authService).RegisterRoutes(root)

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	logrus.WithField("addr", s.http.Addr).Info("http server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests before stopping.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
