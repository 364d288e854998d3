package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/middleware"
	"github.com/AMN-D/RICE/internal/service"
	"github.com/AMN-D/RICE/internal/types"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
	authService   *service.AuthService
}

func NewReviewHandler(reviewService *service.ReviewService, authService *service.AuthService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		authService:   authService,
	}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.GET("/:id", h.GetReview)
		reviews.GET("/rice/:riceId", h.ListRiceReviews)
		reviews.GET("/rice/:riceId/stats", h.GetReviewStats)
		reviews.GET("/rice/:riceId/me", middleware.AuthMiddleware(h.authService), h.GetMyReviewForRice)
		reviews.GET("/user/me", middleware.AuthMiddleware(h.authService), h.ListMyReviews)
		reviews.POST("/rice/:riceId", middleware.AuthMiddleware(h.authService), h.CreateReview)
		reviews.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.UpdateReview)
		reviews.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteReview)
		// TODO: markHelpful accepts anonymous repeat votes; needs a
		// per-user dedupe once voting requires an account.
		reviews.POST("/:id/helpful", h.MarkHelpful)
	}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	riceID, err := pathID(c, "riceId")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req types.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), riceID, currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) ListRiceReviews(c *gin.Context) {
	riceID, err := pathID(c, "riceId")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	skip, limit := pageParams(c)
	sortBy := c.DefaultQuery("sort_by", "recent")

	reviews, total, err := h.reviewService.ListByRice(c.Request.Context(), riceID, skip, limit, sortBy)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewPage(reviews, total, skip, limit))
}

func (h *ReviewHandler) GetMyReviewForRice(c *gin.Context) {
	riceID, err := pathID(c, "riceId")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	review, err := h.reviewService.GetForRiceByUser(c.Request.Context(), riceID, currentUser(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) ListMyReviews(c *gin.Context) {
	skip, limit := pageParams(c)

	reviews, total, err := h.reviewService.ListByUser(c.Request.Context(), currentUser(c), skip, limit)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewPage(reviews, total, skip, limit))
}

func (h *ReviewHandler) GetReviewStats(c *gin.Context) {
	riceID, err := pathID(c, "riceId")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	stats, err := h.reviewService.Stats(c.Request.Context(), riceID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	var req types.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Respond(c, apperror.BadRequest(err.Error()))
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), id, currentUser(c), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	review, err := h.reviewService.MarkHelpful(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
