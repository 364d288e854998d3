package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("test-jwt-secret", "test-session-secret")

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	minted := NewAuthService("secret-a", "state")
	verifier := NewAuthService("secret-b", "state")

	token, err := minted.GenerateToken(7)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewAuthService("test-jwt-secret", "test-session-secret")

	claims := jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-jwt-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService("test-jwt-secret", "test-session-secret")

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestOAuthStateRoundTrip(t *testing.T) {
	svc := NewAuthService("jwt", "state-secret")

	state := svc.NewState()
	require.NoError(t, svc.VerifyState(state))

	assert.Error(t, svc.VerifyState(state+"x"))
	assert.Error(t, svc.VerifyState("no-signature"))

	other := NewAuthService("jwt", "different-secret")
	assert.Error(t, other.VerifyState(state))
}
