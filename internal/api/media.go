package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/middleware"
	"github.com/AMN-D/RICE/internal/service"
	"github.com/AMN-D/RICE/internal/types"
)

type MediaHandler struct {
	mediaService *service.MediaService
	authService  *service.AuthService
}

func NewMediaHandler(mediaService *service.MediaService, authService *service.AuthService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		authService:  authService,
	}
}

func (h *MediaHandler) RegisterRoutes(router *gin.RouterGroup) {
	media := router.Group("/media")
	{
		media.GET("/:id", h.GetMedia)
		media.GET("/theme/:themeId", h.ListThemeMedia)
		media.POST("/theme/:themeId", middleware.AuthMiddleware(h.authService), h.CreateMedia)
		media.POST("/theme/:themeId/reorder", middleware.AuthMiddleware(h.authService), h.ReorderMedia)
		media.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.UpdateMedia)
		media.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteMedia)
	}
}

func (h *MediaHandler) CreateMedia(c *gin.Context) {
	themeID, err := pathID(c, "themeId")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req types.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	media, err := h.mediaService.Create(c.Request.Context(), themeID, currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, media)
}

func (h *MediaHandler) GetMedia(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	media, err := h.mediaService.Get(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

func (h *MediaHandler) ListThemeMedia(c *gin.Context) {
	themeID, err := pathID(c, "themeId")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	media, err := h.mediaService.ListByTheme(c.Request.Context(), themeID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req types.UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	media, err := h.mediaService.Update(c.Request.Context(), id, currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// ReorderMedia rewrites the display order of a theme's gallery in one
// transaction.
func (h *MediaHandler) ReorderMedia(c *gin.Context) {
	themeID, err := pathID(c, "themeId")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req types.ReorderMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	media, err := h.mediaService.Reorder(c.Request.Context(), themeID, currentUser(c), req.MediaOrder)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
