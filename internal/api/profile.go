package api

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AMN-D/RICE/config"
	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/middleware"
	"github.com/AMN-D/RICE/internal/service"
	"github.com/AMN-D/RICE/internal/types"
)

// ProfileHandler serves the authenticated account's profile and the
// public projection of any account.
type ProfileHandler struct {
	userService *service.UserService
	authService *service.AuthService
	storage     *config.S3Config
}

func NewProfileHandler(userService *service.UserService, authService *service.AuthService, storage *config.S3Config) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		authService: authService,
		storage:     storage,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile", middleware.AuthMiddleware(h.authService))
	{
		profile.POST("/complete", h.CompleteProfile)
		profile.GET("/me", h.GetMyProfile)
		profile.PUT("/me", h.UpdateMyProfile)
		profile.DELETE("/me", h.DeleteAccount)
		profile.POST("/me/avatar", h.UploadAvatar)
	}
	router.GET("/users/:id", h.GetPublicProfile)
}

func (h *ProfileHandler) CompleteProfile(c *gin.Context) {
	var req types.CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.userService.CreateProfile(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), currentUser(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the account and everything it owns.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	deleted, err := h.userService.DeleteAccount(c.Request.Context(), currentUser(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	if !deleted {
		apperror.Respond(c, apperror.NotFound("account not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadAvatar stores the uploaded image in S3 and records the public URL.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	if h.storage == nil {
		apperror.Respond(c, apperror.BadRequest("avatar storage is not configured"))
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		apperror.Respond(c, apperror.BadRequest("avatar file is required"))
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		apperror.Respond(c, apperror.BadRequest("avatar must be an image"))
		return
	}

	src, err := file.Open()
	if err != nil {
		apperror.Respond(c, apperror.BadRequest("unable to read avatar file"))
		return
	}
	defer src.Close()

	userID := currentUser(c)
	key := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), path.Ext(file.Filename))
	url, err := h.storage.Upload(c.Request.Context(), key, contentType, src)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.userService.SetAvatarURL(c.Request.Context(), userID, url); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	profile, err := h.userService.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
