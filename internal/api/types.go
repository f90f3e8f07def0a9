package api

import (
	"github.com/platefuel/backend/internal/models"
	"github.com/platefuel/backend/internal/service"
)

// RecipeRequest is the write shape for creating and updating recipes.
// Ingredients, steps and the time fields are free text, exactly as typed.
type RecipeRequest struct {
	Title       string `json:"title" binding:"required"`
	ImageURL    string `json:"image_url"`
	Ingredients string `json:"ingredients" binding:"required"`
	Steps       string `json:"steps" binding:"required"`
	Cuisine     string `json:"cuisine" binding:"required"`
	PrepTime    string `json:"prep_time" binding:"required"`
	CookTime    string `json:"cook_time" binding:"required"`
	Servings    int    `json:"servings" binding:"required,min=1"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Tags        string `json:"tags"`
	Category    string `json:"category"`
	VideoURL    string `json:"video_url"`
	Notes       string `json:"notes"`
	Vegetarian  string `json:"vegetarian" binding:"omitempty,oneof=Yes No"`
}

func (r RecipeRequest) toModel() models.Recipe {
	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = "Easy"
	}
	vegetarian := r.Vegetarian
	if vegetarian == "" {
		vegetarian = "Yes"
	}
	return models.Recipe{
		Title:       r.Title,
		ImageURL:    r.ImageURL,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Cuisine:     r.Cuisine,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Difficulty:  difficulty,
		Tags:        r.Tags,
		Category:    r.Category,
		VideoURL:    r.VideoURL,
		Notes:       r.Notes,
		Vegetarian:  vegetarian,
	}
}

// SearchResponse is the recipe list payload: one page of results, where the
// page sits, and the filters that produced it echoed back.
type SearchResponse struct {
	Recipes    []models.Recipe       `json:"recipes"`
	Pagination service.Pagination    `json:"pagination"`
	Filters    service.SearchFilters `json:"filters"`
}

// RateRequest carries the star value for POST /recipes/:id/rate. The rater
// is always the authenticated user.
type RateRequest struct {
	Rating int `json:"rating" binding:"required"`
}

type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// MealPlanRequest upserts the plan for one date (YYYY-MM-DD).
type MealPlanRequest struct {
	Date  string           `json:"date" binding:"required"`
	Meals models.MealSlots `json:"meals"`
	Notes string           `json:"notes"`
}

type ShoppingListRequest struct {
	Name  string               `json:"name"`
	Items models.ShoppingItems `json:"items"`
}

// GenerateListRequest builds a shopping list from the meal plans between two
// dates (YYYY-MM-DD, inclusive).
type GenerateListRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Name      string `json:"name"`
}
