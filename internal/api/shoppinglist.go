package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/platefuel/backend/internal/service"
)

type ShoppingListHandler struct {
	lists  *service.ShoppingListService
	logger *zap.Logger
}

func NewShoppingListHandler(lists *service.ShoppingListService, logger *zap.Logger) *ShoppingListHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShoppingListHandler{lists: lists, logger: logger}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	lists := router.Group("/shopping-lists", auth)
	{
		lists.GET("", h.ListShoppingLists)
		lists.POST("", h.CreateShoppingList)
		lists.POST("/generate", h.GenerateFromMealPlans)
		lists.PUT("/:id", h.UpdateShoppingList)
		lists.DELETE("/:id", h.DeleteShoppingList)
	}
}

func (h *ShoppingListHandler) ListShoppingLists(c *gin.Context) {
	userID, _ := currentUserID(c)
	lists, err := h.lists.ListShoppingLists(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
}

func (h *ShoppingListHandler) CreateShoppingList(c *gin.Context) {
	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := currentUserID(c)

	list, err := h.lists.CreateShoppingList(c.Request.Context(), userID, req.Name, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// GenerateFromMealPlans builds a list from every recipe planned between two
// dates.
func (h *ShoppingListHandler) GenerateFromMealPlans(c *gin.Context) {
	var req GenerateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}
	userID, _ := currentUserID(c)

	list, err := h.lists.GenerateFromMealPlans(c.Request.Context(), userID, start, end, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ShoppingListHandler) UpdateShoppingList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := currentUserID(c)

	list, err := h.lists.UpdateShoppingList(c.Request.Context(), id, userID, req.Name, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUserID(c)

	if err := h.lists.DeleteShoppingList(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shopping list deleted"})
}
