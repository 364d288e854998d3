package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/middleware"
	"github.com/AMN-D/RICE/internal/service"
	"github.com/AMN-D/RICE/internal/types"
)

// RiceHandler serves the showcase catalog.
type RiceHandler struct {
	riceService *service.RiceService
	authService *service.AuthService
	rateLimiter *middleware.RateLimiter
}

func NewRiceHandler(riceService *service.RiceService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *RiceHandler {
	return &RiceHandler{
		riceService: riceService,
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

func (h *RiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	rices := router.Group("/rices")
	{
		rices.GET("", h.ListRices)
		rices.GET("/search", h.SearchRices)
		rices.GET("/user/:id", h.ListUserRices)
		rices.GET("/user/me/rices", middleware.AuthMiddleware(h.authService), h.ListMyRices)
		rices.GET("/:id", h.GetRice)
		rices.GET("/:id/stats", h.GetRiceStats)
		rices.POST("", middleware.AuthMiddleware(h.authService), h.rateLimiter.Middleware(), h.CreateRice)
		rices.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRice)
		rices.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRice)
		rices.POST("/:id/click-dotfile", h.ClickDotfile)
	}
}

func (h *RiceHandler) CreateRice(c *gin.Context) {
	var req types.CreateRiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	rice, err := h.riceService.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, rice)
}

// GetRice returns a hydrated rice and counts the visit.
func (h *RiceHandler) GetRice(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.riceService.IncrementViews(c.Request.Context(), id); err != nil {
		apperror.Respond(c, err)
		return
	}

	rice, err := h.riceService.Get(c.Request.Context(), id, false)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, rice)
}

func (h *RiceHandler) ListRices(c *gin.Context) {
	skip, limit := pageParams(c)
	sortBy := c.DefaultQuery("sort_by", "popular")
	sortOrder := c.DefaultQuery("sort_order", "desc")

	rices, total, err := h.riceService.ListAll(c.Request.Context(), skip, limit, sortBy, sortOrder)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewPage(rices, total, skip, limit))
}

func (h *RiceHandler) ListUserRices(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	skip, limit := pageParams(c)

	rices, total, err := h.riceService.ListByUser(c.Request.Context(), id, skip, limit, false)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewPage(rices, total, skip, limit))
}

// ListMyRices returns the caller's rices, optionally with soft-deleted ones.
func (h *RiceHandler) ListMyRices(c *gin.Context) {
	skip, limit := pageParams(c)
	includeDeleted, _ := strconv.ParseBool(c.DefaultQuery("include_deleted", "false"))

	rices, total, err := h.riceService.ListByUser(c.Request.Context(), currentUser(c), skip, limit, includeDeleted)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewPage(rices, total, skip, limit))
}

func (h *RiceHandler) SearchRices(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		apperror.Respond(c, apperror.BadRequest("search query is required"))
		return
	}
	skip, limit := pageParams(c)

	rices, total, err := h.riceService.Search(c.Request.Context(), q, skip, limit)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewPage(rices, total, skip, limit))
}

func (h *RiceHandler) GetRiceStats(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	stats, err := h.riceService.Stats(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *RiceHandler) UpdateRice(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req types.UpdateRiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	rice, err := h.riceService.Update(c.Request.Context(), id, currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, rice)
}

// DeleteRice hides the rice by default; soft_delete=false removes it and
// everything under it.
func (h *RiceHandler) DeleteRice(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	soft, parseErr := strconv.ParseBool(c.DefaultQuery("soft_delete", "true"))
	if parseErr != nil {
		soft = true
	}

	if err := h.riceService.Delete(c.Request.Context(), id, currentUser(c), soft); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RiceHandler) ClickDotfile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.riceService.IncrementDotfileClicks(c.Request.Context(), id); err != nil {
		apperror.Respond(c, err)
		return
	}
	logrus.WithField("rice_id", id).Debug("dotfile click recorded")
	c.Status(http.StatusNoContent)
}
