package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/middleware"
	"github.com/AMN-D/RICE/internal/service"
	"github.com/AMN-D/RICE/internal/types"
)

type ThemeHandler struct {
	themeService *service.ThemeService
	authService  *service.AuthService
}

func NewThemeHandler(themeService *service.ThemeService, authService *service.AuthService) *ThemeHandler {
	return &ThemeHandler{
		themeService: themeService,
		authService:  authService,
	}
}

func (h *ThemeHandler) RegisterRoutes(router *gin.RouterGroup) {
	themes := router.Group("/themes")
	{
		themes.GET("/:id", h.GetTheme)
		themes.GET("/rice/:riceId", h.ListRiceThemes)
		themes.POST("/rice/:riceId", middleware.AuthMiddleware(h.authService), h.CreateTheme)
		themes.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.UpdateTheme)
		themes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteTheme)
	}
}

func (h *ThemeHandler) CreateTheme(c *gin.Context) {
	riceID, err := pathID(c, "riceId")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req types.CreateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	theme, err := h.themeService.Create(c.Request.Context(), riceID, currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, theme)
}

func (h *ThemeHandler) GetTheme(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	theme, err := h.themeService.Get(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

func (h *ThemeHandler) ListRiceThemes(c *gin.Context) {
	riceID, err := pathID(c, "riceId")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	themes, err := h.themeService.ListByRice(c.Request.Context(), riceID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, themes)
}

func (h *ThemeHandler) UpdateTheme(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req types.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	theme, err := h.themeService.Update(c.Request.Context(), id, currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

func (h *ThemeHandler) DeleteTheme(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.themeService.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
