package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/AMN-D/RICE/config"
	"github.com/AMN-D/RICE/internal/database"
	"github.com/AMN-D/RICE/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuration failed")
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("database migration failed")
	}

	// Rate limiting degrades to no-op without redis.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logrus.WithError(err).Warn("redis unavailable, rate limiting disabled")
		redisClient = nil
	}

	// Avatar uploads are rejected without S3 credentials.
	storage, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Warn("s3 unavailable, avatar uploads disabled")
		storage = nil
	}

	srv := server.New(cfg, db, redisClient, storage)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logrus.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		logrus.WithField("signal", sig.String()).Info("shutting down")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Fatal("server shutdown error")
	}
	logrus.Info("server stopped")
}
