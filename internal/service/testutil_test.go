package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/platefuel/backend/internal/models"
)

// setupTestDB opens a fresh in-memory SQLite database for one test. The
// shared-cache DSN keeps every pooled connection pointed at the same
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeRating{},
		&models.RecipeFavorite{},
		&models.Review{},
		&models.MealPlan{},
		&models.ShoppingList{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createTestRecipe inserts a recipe with sensible defaults, applying any
// mutators before the insert.
func createTestRecipe(t *testing.T, db *gorm.DB, user *models.User, mutate ...func(*models.Recipe)) *models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		Title:       "Test Recipe",
		Ingredients: "1 cup flour\n2 eggs",
		Steps:       "Mix and bake.",
		Cuisine:     "Italian",
		PrepTime:    "10 minutes",
		CookTime:    "20 minutes",
		Servings:    2,
		Difficulty:  "Easy",
		Category:    "Dinner",
		Vegetarian:  "Yes",
		UserID:      user.ID,
	}
	for _, m := range mutate {
		m(&recipe)
	}
	require.NoError(t, db.Create(&recipe).Error)
	return &recipe
}
