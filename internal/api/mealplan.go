package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/platefuel/backend/internal/service"
)

const dateLayout = "2006-01-02"

type MealPlanHandler struct {
	plans  *service.MealPlanService
	logger *zap.Logger
}

func NewMealPlanHandler(plans *service.MealPlanService, logger *zap.Logger) *MealPlanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealPlanHandler{plans: plans, logger: logger}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	plans := router.Group("/meal-plans", auth)
	{
		plans.GET("", h.ListMealPlans)
		plans.PUT("", h.SaveMealPlan)
		plans.DELETE("/:id", h.DeleteMealPlan)
		plans.GET("/suggestions", h.SuggestRecipes)
	}
}

// ListMealPlans returns the authenticated user's plans, optionally limited
// to startDate..endDate.
func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	userID, _ := currentUserID(c)

	var start, end *time.Time
	if s, err := time.Parse(dateLayout, c.Query("startDate")); err == nil {
		if e, err := time.Parse(dateLayout, c.Query("endDate")); err == nil {
			start, end = &s, &e
		}
	}

	plans, err := h.plans.ListMealPlans(c.Request.Context(), userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

// SaveMealPlan creates or replaces the plan for one date.
func (h *MealPlanHandler) SaveMealPlan(c *gin.Context) {
	var req MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	userID, _ := currentUserID(c)

	plan, err := h.plans.SaveMealPlan(c.Request.Context(), userID, date, req.Meals, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUserID(c)

	if err := h.plans.DeleteMealPlan(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal plan deleted"})
}

// SuggestRecipes proposes recipes for a meal slot.
func (h *MealPlanHandler) SuggestRecipes(c *gin.Context) {
	userID, _ := currentUserID(c)

	recipes, err := h.plans.SuggestRecipes(c.Request.Context(), userID, c.Query("mealType"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": recipes})
}
