package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefuel/backend/internal/models"
)

func TestSaveMealPlanUpserts(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "plans@example.com")
	svc := NewMealPlanService(db, nil)

	recipe := createTestRecipe(t, db, user)
	day := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)

	first, err := svc.SaveMealPlan(context.Background(), user.ID, day, models.MealSlots{
		Dinner: models.MealSlot{RecipeID: recipe.ID, Servings: 2},
	}, "leftovers for lunch")
	require.NoError(t, err)

	// Saving the same day again replaces the plan instead of duplicating it.
	second, err := svc.SaveMealPlan(context.Background(), user.ID, day, models.MealSlots{
		Lunch: models.MealSlot{RecipeID: recipe.ID, Servings: 1},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	plans, err := svc.ListMealPlans(context.Background(), user.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, recipe.ID, plans[0].Meals.Lunch.RecipeID)
	assert.Empty(t, plans[0].Notes)
}

func TestListMealPlansDateRange(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "plan-range@example.com")
	svc := NewMealPlanService(db, nil)

	for day := 1; day <= 10; day++ {
		date := time.Date(2026, 5, day, 0, 0, 0, 0, time.UTC)
		_, err := svc.SaveMealPlan(context.Background(), user.ID, date, models.MealSlots{}, "")
		require.NoError(t, err)
	}

	start := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)
	plans, err := svc.ListMealPlans(context.Background(), user.ID, &start, &end)
	require.NoError(t, err)
	assert.Len(t, plans, 4)
	// Ordered by date ascending.
	assert.True(t, plans[0].Date.Before(plans[len(plans)-1].Date))
}

func TestDeleteMealPlanOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "plan-owner@example.com")
	other := createTestUser(t, db, "plan-other@example.com")
	svc := NewMealPlanService(db, nil)

	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	plan, err := svc.SaveMealPlan(context.Background(), owner.ID, day, models.MealSlots{}, "")
	require.NoError(t, err)

	err = svc.DeleteMealPlan(context.Background(), plan.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteMealPlan(context.Background(), plan.ID, owner.ID))
}

func TestSuggestRecipes(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "suggest-plan@example.com")
	svc := NewMealPlanService(db, nil)

	top := createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Top Breakfast"
		r.Category = "Breakfast"
		r.AverageRating = 4.9
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Okay Breakfast"
		r.Category = "Breakfast"
		r.AverageRating = 3.0
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Dinner Thing"
		r.Category = "Dinner"
		r.AverageRating = 5.0
	})

	suggestions, err := svc.SuggestRecipes(context.Background(), user.ID, "breakfast")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Top Breakfast", suggestions[0].Title)

	// A recipe planned within the last week is not suggested again.
	_, err = svc.SaveMealPlan(context.Background(), user.ID, time.Now().Truncate(24*time.Hour), models.MealSlots{
		Breakfast: models.MealSlot{RecipeID: top.ID, Servings: 1},
	}, "")
	require.NoError(t, err)

	suggestions, err = svc.SuggestRecipes(context.Background(), user.ID, "breakfast")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Okay Breakfast", suggestions[0].Title)
}
