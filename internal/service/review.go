package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/platefuel/backend/internal/models"
)

// ReviewService handles written reviews.
type ReviewService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewReviewService(db *gorm.DB, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{db: db, logger: logger}
}

// AddReview attaches a review to a recipe.
func (s *ReviewService) AddReview(ctx context.Context, recipeID, userID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	review := models.Review{
		RecipeID: recipeID,
		UserID:   userID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviews returns all reviews for a recipe with their authors, newest
// first.
func (s *ReviewService) ListReviews(ctx context.Context, recipeID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// UpdateReview updates the author's own review.
func (s *ReviewService) UpdateReview(ctx context.Context, id, userID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrForbidden
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.db.WithContext(ctx).Save(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview deletes a review. Allowed for the author or an admin.
func (s *ReviewService) DeleteReview(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if review.UserID != userID && !isAdmin {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error
}
