package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platefuel/backend/internal/models"
)

// RecipeService handles recipe CRUD, search and rating operations.
type RecipeService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService. The Redis client is optional
// and only used as a suggestion cache; pass nil to disable caching.
func NewRecipeService(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}
}

// CreateRecipe stores a new recipe owned by the given user.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe, userID uuid.UUID) (*models.Recipe, error) {
	recipe.UserID = userID
	recipe.AverageRating = 0
	recipe.TotalRatings = 0
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe updates a recipe. Only the owner may update; the rating
// aggregates are never writable through this path.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, updated *models.Recipe, userID uuid.UUID) (*models.Recipe, error) {
	existing, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}

	updated.ID = id
	updated.UserID = existing.UserID
	updated.AverageRating = existing.AverageRating
	updated.TotalRatings = existing.TotalRatings
	if err := s.db.WithContext(ctx).Model(existing).Updates(updated).Error; err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe. Allowed for the owner or an admin.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != userID && !isAdmin {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error
}

// RateRecipe records or replaces the user's rating for a recipe and returns
// the recomputed aggregates. The whole read-modify-write runs inside one
// transaction, with the recipe row locked on Postgres, so concurrent raters
// serialize per recipe.
func (s *RecipeService) RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, rating int) (float64, int, error) {
	if rating < 1 || rating > 5 {
		return 0, 0, ErrInvalidRating
	}

	var average float64
	var total int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipeQuery := tx.Model(&models.Recipe{})
		if tx.Dialector.Name() == "postgres" {
			recipeQuery = recipeQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var recipe models.Recipe
		if err := recipeQuery.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Upsert: a second rating from the same user replaces the first.
		var existing models.RecipeRating
		err := tx.First(&existing, "recipe_id = ? AND user_id = ?", recipeID, userID).Error
		switch {
		case err == nil:
			existing.Rating = rating
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			record := models.RecipeRating{RecipeID: recipeID, UserID: userID, Rating: rating}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var stats struct {
			Average float64
			Total   int
		}
		err = tx.Model(&models.RecipeRating{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
			Where("recipe_id = ?", recipeID).
			Scan(&stats).Error
		if err != nil {
			return err
		}

		err = tx.Model(&models.Recipe{}).
			Where("id = ?", recipeID).
			Updates(map[string]interface{}{
				"average_rating": stats.Average,
				"total_ratings":  stats.Total,
			}).Error
		if err != nil {
			return err
		}

		average = stats.Average
		total = stats.Total
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.logger.Debug("recipe rated",
		zap.String("recipe_id", recipeID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("rating", rating),
	)
	return average, total, nil
}

// GetUserRating returns the user's rating for a recipe, or nil when the user
// has not rated it.
func (s *RecipeService) GetUserRating(ctx context.Context, recipeID, userID uuid.UUID) (*int, error) {
	var record models.RecipeRating
	err := s.db.WithContext(ctx).First(&record, "recipe_id = ? AND user_id = ?", recipeID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record.Rating, nil
}

// FavoriteRecipe marks a recipe as a favorite of the user. Favoriting twice
// is a no-op.
func (s *RecipeService) FavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return err
	}
	fav := models.RecipeFavorite{RecipeID: recipeID, UserID: userID}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

// UnfavoriteRecipe removes a favorite mark.
func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.RecipeFavorite{}).Error
}

// ListFavorites returns the user's favorite recipes, newest favorite first.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Order("recipe_favorites.created_at DESC").
		Find(&recipes).Error
	return recipes, err
}
