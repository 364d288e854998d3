package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_USER", "rice")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "rice")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("SESSION_SECRET_KEY", "session-secret")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_REDIRECT_URI", "http://localhost:8000/auth/callback")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "rice", cfg.DBUser)
	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/v2/auth", cfg.GoogleAuthURL)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestDSN(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t,
		"host=db.internal port=5433 user=rice password=secret dbname=rice sslmode=disable",
		cfg.DSN())
}
