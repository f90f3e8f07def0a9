package database

import (
	"gorm.io/gorm"

	"github.com/platefuel/backend/internal/models"
)

// AutoMigrate creates or updates the schema for every model. Production
// deployments use the SQL files under migrations/ via cmd/migrate; this
// path covers development and the SQLite test databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeRating{},
		&models.RecipeFavorite{},
		&models.Review{},
		&models.MealPlan{},
		&models.ShoppingList{},
	)
}
