package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AMN-D/RICE/internal/apperror"
)

// TokenTTL is the lifetime of a session credential.
const TokenTTL = 7 * 24 * time.Hour

// AuthService mints and verifies session credentials and the signed OAuth
// state that round-trips through the identity provider.
type AuthService struct {
	jwtSecret     string
	sessionSecret string
}

func NewAuthService(jwtSecret, sessionSecret string) *AuthService {
	return &AuthService{
		jwtSecret:     jwtSecret,
		sessionSecret: sessionSecret,
	}
}

// GenerateToken mints a signed credential bound to the account id.
func (s *AuthService) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": float64(userID),
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken verifies the credential and returns the account id.
func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.Unauthorized("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return 0, apperror.Unauthorized("token has expired")
		}
		return 0, apperror.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, apperror.Unauthorized("invalid token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID < 1 {
		return 0, apperror.Unauthorized("invalid token claims")
	}
	return uint(userID), nil
}

// NewState produces a signed nonce carried through the OAuth redirect.
func (s *AuthService) NewState() string {
	nonce := uuid.NewString()
	return nonce + "." + s.signState(nonce)
}

// VerifyState checks the signature on a returned OAuth state value.
func (s *AuthService) VerifyState(state string) error {
	nonce, sig, found := strings.Cut(state, ".")
	if !found || !hmac.Equal([]byte(sig), []byte(s.signState(nonce))) {
		return apperror.BadRequest("invalid state token")
	}
	return nil
}

func (s *AuthService) signState(nonce string) string {
	mac := hmac.New(sha256.New, []byte(s.sessionSecret))
	mac.Write([]byte(nonce))
	return hex.EncodeToString(mac.Sum(nil))
}
