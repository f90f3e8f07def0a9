package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/platefuel/backend/internal/service"
)

// RecipeHandler serves the recipe endpoints, including the search pipeline.
type RecipeHandler struct {
	recipes *service.RecipeService
	images  *service.ImageService
	logger  *zap.Logger
}

// NewRecipeHandler creates a RecipeHandler. The image service is optional;
// without it the upload endpoint reports the feature unavailable.
func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService, logger *zap.Logger) *RecipeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeHandler{recipes: recipes, images: images, logger: logger}
}

// RegisterRoutes mounts the recipe routes. Reads are public; writes require
// auth and sit behind the write rate limiter.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, writeLimit gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.SearchRecipes)
		recipes.GET("/search/suggestions", h.SearchSuggestions)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/rating/:userId", h.GetUserRating)

		recipes.POST("", auth, writeLimit, h.CreateRecipe)
		recipes.PUT("/:id", auth, writeLimit, h.UpdateRecipe)
		recipes.DELETE("/:id", auth, h.DeleteRecipe)
		recipes.POST("/:id/rate", auth, writeLimit, h.RateRecipe)
		recipes.POST("/:id/favorite", auth, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", auth, h.UnfavoriteRecipe)
		recipes.GET("/favorites", auth, h.ListFavorites)
		recipes.POST("/image", auth, writeLimit, h.UploadImage)
	}
}

// SearchRecipes runs the filter/rank/paginate pipeline. Every filter is
// optional; malformed numeric filters are ignored rather than rejected.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	filters := service.ParseSearchFilters(c.Request.URL.Query())

	recipes, pagination, err := h.recipes.SearchRecipes(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("recipe search failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Recipes:    recipes,
		Pagination: pagination,
		Filters:    filters,
	})
}

// SearchSuggestions serves autocomplete candidates for a partial query.
func (h *RecipeHandler) SearchSuggestions(c *gin.Context) {
	suggestions, err := h.recipes.SearchSuggestions(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.logger.Error("suggestion lookup failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe := req.toModel()
	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recipe added successfully", "recipe": created})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe := req.toModel()
	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, &recipe, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully", "recipe": updated})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, userID, isAdmin(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// RateRecipe upserts the authenticated user's rating and returns the fresh
// aggregates.
func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	average, total, err := h.recipes.RateRecipe(c.Request.Context(), id, userID, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"averageRating": average, "totalRatings": total})
}

// GetUserRating returns one user's rating of a recipe, null when absent.
func (h *RecipeHandler) GetUserRating(c *gin.Context) {
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	rating, err := h.recipes.GetUserRating(c.Request.Context(), recipeID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUserID(c)
	if err := h.recipes.FavoriteRecipe(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe favorited"})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUserID(c)
	if err := h.recipes.UnfavoriteRecipe(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe unfavorited"})
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID, _ := currentUserID(c)
	recipes, err := h.recipes.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// UploadImage stores a recipe image and returns its URL for use in a
// subsequent create or update.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.images.UploadRecipeImage(c.Request.Context(), file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"image_url": url})
}
