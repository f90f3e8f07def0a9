package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/platefuel/backend/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
	logger  *zap.Logger
}

func NewReviewHandler(reviews *service.ReviewService, logger *zap.Logger) *ReviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewHandler{reviews: reviews, logger: logger}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, writeLimit gin.HandlerFunc) {
	reviews := router.Group("/reviews")
	{
		reviews.GET("/:recipeId", h.ListReviews)
		reviews.POST("/:recipeId", auth, writeLimit, h.AddReview)
		reviews.PUT("/:id", auth, h.UpdateReview)
		reviews.DELETE("/:id", auth, h.DeleteReview)
	}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	recipeID, ok := pathUUID(c, "recipeId")
	if !ok {
		return
	}
	reviews, err := h.reviews.ListReviews(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) AddReview(c *gin.Context) {
	recipeID, ok := pathUUID(c, "recipeId")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := currentUserID(c)

	review, err := h.reviews.AddReview(c.Request.Context(), recipeID, userID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := currentUserID(c)

	review, err := h.reviews.UpdateReview(c.Request.Context(), id, userID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUserID(c)

	if err := h.reviews.DeleteReview(c.Request.Context(), id, userID, isAdmin(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
