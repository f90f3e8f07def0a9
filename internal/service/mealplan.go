package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/platefuel/backend/internal/models"
)

// mealTypeCategories maps a meal slot to the recipe-category keywords that
// fit it when suggesting recipes.
var mealTypeCategories = map[string][]string{
	"breakfast": {"breakfast"},
	"lunch":     {"lunch", "main"},
	"dinner":    {"dinner", "main"},
	"snack":     {"snack", "appetizer"},
}

// MealPlanService handles per-day meal plans.
type MealPlanService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewMealPlanService(db *gorm.DB, logger *zap.Logger) *MealPlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealPlanService{db: db, logger: logger}
}

// ListMealPlans returns the user's plans, optionally restricted to a date
// range, ordered by date.
func (s *MealPlanService) ListMealPlans(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.MealPlan, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if start != nil && end != nil {
		query = query.Where("date BETWEEN ? AND ?", *start, *end)
	}
	var plans []models.MealPlan
	err := query.Order("date ASC").Find(&plans).Error
	return plans, err
}

// SaveMealPlan creates or replaces the user's plan for a date.
func (s *MealPlanService) SaveMealPlan(ctx context.Context, userID uuid.UUID, date time.Time, meals models.MealSlots, notes string) (*models.MealPlan, error) {
	day := date.Truncate(24 * time.Hour)

	var plan models.MealPlan
	err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, day).First(&plan).Error
	switch {
	case err == nil:
		plan.Meals = meals
		plan.Notes = notes
		if err := s.db.WithContext(ctx).Save(&plan).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		plan = models.MealPlan{UserID: userID, Date: day, Meals: meals, Notes: notes}
		if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return &plan, nil
}

// DeleteMealPlan removes one of the user's plans.
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, id, userID uuid.UUID) error {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if plan.UserID != userID {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&models.MealPlan{}, "id = ?", id).Error
}

// SuggestRecipes proposes up to six recipes for a meal slot, preferring
// highly rated ones and skipping anything the user planned in the last
// seven days.
func (s *MealPlanService) SuggestRecipes(ctx context.Context, userID uuid.UUID, mealType string) ([]models.Recipe, error) {
	recent, err := s.recentlyPlannedRecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Model(&models.Recipe{})
	if keywords, ok := mealTypeCategories[strings.ToLower(mealType)]; ok {
		conditions := make([]string, len(keywords))
		args := make([]interface{}, len(keywords))
		for i, kw := range keywords {
			conditions[i] = "LOWER(category) LIKE ?"
			args[i] = "%" + kw + "%"
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}
	if len(recent) > 0 {
		query = query.Where("id NOT IN ?", recent)
	}

	var recipes []models.Recipe
	err = query.
		Order("average_rating DESC, created_at DESC").
		Limit(6).
		Find(&recipes).Error
	return recipes, err
}

func (s *MealPlanService) recentlyPlannedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	since := time.Now().AddDate(0, 0, -7)
	var plans []models.MealPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for _, plan := range plans {
		for _, slot := range []models.MealSlot{plan.Meals.Breakfast, plan.Meals.Lunch, plan.Meals.Dinner, plan.Meals.Snack} {
			if slot.RecipeID != uuid.Nil {
				ids = append(ids, slot.RecipeID)
			}
		}
	}
	return ids, nil
}
