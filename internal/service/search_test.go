package service

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefuel/backend/internal/models"
)

func TestParseSearchFilters(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := ParseSearchFilters(url.Values{})
		assert.Equal(t, "all", f.Cuisine)
		assert.Equal(t, "all", f.Difficulty)
		assert.Equal(t, "all", f.Category)
		assert.Equal(t, "all", f.Vegetarian)
		assert.Equal(t, "createdAt", f.SortBy)
		assert.Equal(t, "desc", f.SortOrder)
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, DefaultPageSize, f.Limit)
	})

	t.Run("malformed numbers fail open", func(t *testing.T) {
		f := ParseSearchFilters(url.Values{
			"maxPrepTime": {"banana"},
			"maxCookTime": {"-5"},
			"page":        {"zero"},
		})
		assert.Equal(t, 0, f.MaxPrepTime)
		assert.Equal(t, 0, f.MaxCookTime)
		assert.Equal(t, 1, f.Page)
	})

	t.Run("unknown sort key falls back", func(t *testing.T) {
		f := ParseSearchFilters(url.Values{
			"sortBy":    {"id; DROP TABLE recipes"},
			"sortOrder": {"sideways"},
		})
		assert.Equal(t, "createdAt", f.SortBy)
		assert.Equal(t, "desc", f.SortOrder)
	})

	t.Run("page below one clamps", func(t *testing.T) {
		f := ParseSearchFilters(url.Values{"page": {"-3"}})
		assert.Equal(t, 1, f.Page)
	})
}

func TestSearchRecipesFreeText(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "search@example.com")
	svc := NewRecipeService(db, nil, nil)

	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Garlic Butter Shrimp"
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Plain Pasta"
		r.Ingredients = "pasta\ngarlic\nolive oil"
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Pancakes"
		r.Notes = "Skip the garlic, obviously."
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Fruit Salad"
	})

	recipes, pagination, err := svc.SearchRecipes(context.Background(), SearchFilters{Search: "GARLIC"})
	require.NoError(t, err)

	assert.Len(t, recipes, 3)
	assert.EqualValues(t, 3, pagination.TotalRecipes)
}

func TestSearchRecipesConjunctiveFilters(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "filters@example.com")
	svc := NewRecipeService(db, nil, nil)

	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Match"
		r.Cuisine = "Italian"
		r.Difficulty = "Easy"
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Wrong Difficulty"
		r.Cuisine = "Italian"
		r.Difficulty = "Hard"
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Wrong Cuisine"
		r.Cuisine = "Thai"
		r.Difficulty = "Easy"
	})

	recipes, _, err := svc.SearchRecipes(context.Background(), SearchFilters{
		Cuisine:    "italian",
		Difficulty: "easy",
	})
	require.NoError(t, err)

	require.Len(t, recipes, 1)
	assert.Equal(t, "Match", recipes[0].Title)
}

func TestSearchRecipesIngredientsRequireAll(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ingredients@example.com")
	svc := NewRecipeService(db, nil, nil)

	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Chicken Fried Rice"
		r.Ingredients = "2 cups rice\n300g chicken\nsoy sauce"
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Chicken Soup"
		r.Ingredients = "300g chicken\ncarrots\nstock"
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Rice Pudding"
		r.Ingredients = "1 cup rice\nmilk\nsugar"
	})

	recipes, _, err := svc.SearchRecipes(context.Background(), SearchFilters{
		Ingredients: "chicken, rice",
	})
	require.NoError(t, err)

	require.Len(t, recipes, 1)
	assert.Equal(t, "Chicken Fried Rice", recipes[0].Title)
}

func TestSearchRecipesMaxPrepTime(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "preptime@example.com")
	svc := NewRecipeService(db, nil, nil)

	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Quick"
		r.PrepTime = "10 minutes"
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Slow"
		r.PrepTime = "45 minutes"
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Vague"
		r.PrepTime = "overnight"
	})

	recipes, _, err := svc.SearchRecipes(context.Background(), SearchFilters{MaxPrepTime: 20})
	require.NoError(t, err)

	require.Len(t, recipes, 1)
	assert.Equal(t, "Quick", recipes[0].Title)
}

func TestSearchRecipesPagination(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "pages@example.com")
	svc := NewRecipeService(db, nil, nil)

	for i := 0; i < 15; i++ {
		createTestRecipe(t, db, user, func(r *models.Recipe) {
			r.Title = fmt.Sprintf("Recipe %02d", i)
		})
	}

	first, pagination, err := svc.SearchRecipes(context.Background(), SearchFilters{Page: 1})
	require.NoError(t, err)
	assert.Len(t, first, DefaultPageSize)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.EqualValues(t, 15, pagination.TotalRecipes)
	assert.True(t, pagination.HasNextPage)
	assert.False(t, pagination.HasPrevPage)

	second, pagination, err := svc.SearchRecipes(context.Background(), SearchFilters{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second, 3)
	assert.False(t, pagination.HasNextPage)
	assert.True(t, pagination.HasPrevPage)

	// A page past the end is empty but keeps correct metadata.
	third, pagination, err := svc.SearchRecipes(context.Background(), SearchFilters{Page: 3})
	require.NoError(t, err)
	assert.Empty(t, third)
	assert.Equal(t, 2, pagination.TotalPages)
}

func TestSearchRecipesSorting(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "sort@example.com")
	svc := NewRecipeService(db, nil, nil)

	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Banana Bread"
		r.Cuisine = "American"
		r.AverageRating = 3.5
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Apple Pie"
		r.Cuisine = "American"
		r.AverageRating = 4.8
	})
	createTestRecipe(t, db, user, func(r *models.Recipe) {
		r.Title = "Cherry Tart"
		r.Cuisine = "French"
		r.AverageRating = 4.0
	})

	t.Run("title ascending", func(t *testing.T) {
		recipes, _, err := svc.SearchRecipes(context.Background(), SearchFilters{
			SortBy: "title", SortOrder: "asc",
		})
		require.NoError(t, err)
		require.Len(t, recipes, 3)
		assert.Equal(t, "Apple Pie", recipes[0].Title)
		assert.Equal(t, "Banana Bread", recipes[1].Title)
		assert.Equal(t, "Cherry Tart", recipes[2].Title)
	})

	t.Run("cuisine ties break on rating", func(t *testing.T) {
		recipes, _, err := svc.SearchRecipes(context.Background(), SearchFilters{
			SortBy: "cuisine", SortOrder: "asc",
		})
		require.NoError(t, err)
		require.Len(t, recipes, 3)
		// Both American recipes come first; the higher rated one leads.
		assert.Equal(t, "Apple Pie", recipes[0].Title)
		assert.Equal(t, "Banana Bread", recipes[1].Title)
		assert.Equal(t, "Cherry Tart", recipes[2].Title)
	})

	t.Run("order is deterministic across calls", func(t *testing.T) {
		filters := SearchFilters{SortBy: "averageRating", SortOrder: "desc"}
		first, _, err := svc.SearchRecipes(context.Background(), filters)
		require.NoError(t, err)
		second, _, err := svc.SearchRecipes(context.Background(), filters)
		require.NoError(t, err)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
		}
	})
}

func TestSearchSuggestions(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "suggest@example.com")
	svc := NewRecipeService(db, nil, nil)

	cuisines := []string{"Indian", "Indonesian", "Chinese", "Argentine", "Filipino"}
	for i, cuisine := range cuisines {
		createTestRecipe(t, db, user, func(r *models.Recipe) {
			r.Title = fmt.Sprintf("Dish %d", i)
			r.Cuisine = cuisine
			r.Category = "Dinner"
		})
	}

	t.Run("short query yields nothing", func(t *testing.T) {
		suggestions, err := svc.SearchSuggestions(context.Background(), "i")
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})

	t.Run("cuisine group capped at three", func(t *testing.T) {
		suggestions, err := svc.SearchSuggestions(context.Background(), "in")
		require.NoError(t, err)

		var cuisineValues []string
		for _, s := range suggestions {
			if s.Type == "cuisine" {
				cuisineValues = append(cuisineValues, s.Value)
			}
		}
		assert.Len(t, cuisineValues, 3)
	})

	t.Run("recipe suggestions carry IDs", func(t *testing.T) {
		suggestions, err := svc.SearchSuggestions(context.Background(), "dish")
		require.NoError(t, err)

		var recipeCount int
		for _, s := range suggestions {
			if s.Type == "recipe" {
				recipeCount++
				assert.NotEmpty(t, s.ID)
			}
		}
		assert.Equal(t, 5, recipeCount)
	})

	t.Run("recipe group capped at five", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			createTestRecipe(t, db, user, func(r *models.Recipe) {
				r.Title = fmt.Sprintf("Extra Dish %d", i)
			})
		}
		suggestions, err := svc.SearchSuggestions(context.Background(), "dish")
		require.NoError(t, err)

		var recipeCount int
		for _, s := range suggestions {
			if s.Type == "recipe" {
				recipeCount++
			}
		}
		assert.Equal(t, 5, recipeCount)
	})
}
