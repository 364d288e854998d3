package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AMN-D/RICE/config"
	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/middleware"
	"github.com/AMN-D/RICE/internal/service"
)

// cookieMaxAge matches the token lifetime.
const cookieMaxAge = int(service.TokenTTL / time.Second)

// AuthHandler drives the Google OAuth login flow and session cookies.
type AuthHandler struct {
	cfg           *config.Config
	authService   *service.AuthService
	googleService *service.GoogleService
	userService   *service.UserService
}

func NewAuthHandler(cfg *config.Config, authService *service.AuthService, googleService *service.GoogleService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		cfg:           cfg,
		authService:   authService,
		googleService: googleService,
		userService:   userService,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("/login", h.Login)
		auth.GET("/callback", h.Callback)
		auth.POST("/logout", middleware.AuthMiddleware(h.authService), h.Logout)
	}
}

// Login redirects the browser to Google's consent screen with a signed
// state parameter.
func (h *AuthHandler) Login(c *gin.Context) {
	state := h.authService.NewState()
	c.Redirect(http.StatusTemporaryRedirect, h.googleService.AuthURL(state))
}

// Callback completes the OAuth exchange, provisions the account on first
// login and redirects back to the frontend with the session cookie set.
func (h *AuthHandler) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		apperror.Respond(c, apperror.BadRequest("authorization denied: "+errParam))
		return
	}

	if err := h.authService.VerifyState(c.Query("state")); err != nil {
		apperror.Respond(c, apperror.BadRequest("invalid state parameter"))
		return
	}

	code := c.Query("code")
	if code == "" {
		apperror.Respond(c, apperror.BadRequest("missing authorization code"))
		return
	}

	idToken, err := h.googleService.Exchange(c.Request.Context(), code)
	if err != nil {
		logrus.WithError(err).Error("google token exchange failed")
		apperror.Respond(c, apperror.BadRequest("failed to exchange authorization code"))
		return
	}

	claims, err := h.googleService.DecodeIDToken(idToken)
	if err != nil {
		apperror.Respond(c, apperror.BadRequest("invalid identity token"))
		return
	}

	user, err := h.userService.FindByGoogleID(c.Request.Context(), claims.Sub)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	if user == nil {
		user, err = h.userService.Create(c.Request.Context(), claims.Sub, claims.Email, claims.Name, claims.Picture)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		logrus.WithField("user_id", user.ID).Info("new account created via google login")
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	h.setSessionCookie(c, token, cookieMaxAge)
	c.Redirect(http.StatusFound, h.cfg.FrontendURL)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out", "user_id": currentUser(c)})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("access_token", token, maxAge, "/", "", h.cfg.CookieSecure, true)
}
