package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/platefuel/backend/internal/models"
)

// AdminService backs the admin panel: user management and site stats.
type AdminService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAdminService(db *gorm.DB, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{db: db, logger: logger}
}

// ListUsers returns all users, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// DeleteUser removes a user and everything they own.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		for _, model := range []interface{}{
			&models.Recipe{},
			&models.RecipeRating{},
			&models.RecipeFavorite{},
			&models.Review{},
			&models.MealPlan{},
			&models.ShoppingList{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
}

// SiteStats are the headline counts for the admin dashboard.
type SiteStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalRecipes int64 `json:"totalRecipes"`
	TotalReviews int64 `json:"totalReviews"`
	TotalRatings int64 `json:"totalRatings"`
}

func (s *AdminService) Stats(ctx context.Context) (SiteStats, error) {
	var stats SiteStats
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.TotalUsers},
		{&models.Recipe{}, &stats.TotalRecipes},
		{&models.Review{}, &stats.TotalReviews},
		{&models.RecipeRating{}, &stats.TotalRatings},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return SiteStats{}, err
		}
	}
	return stats, nil
}
