package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a user-submitted recipe. Ingredients, steps, tags and the two
// time fields are stored as free text exactly as the author typed them;
// time-bound filtering over prep_time/cook_time is therefore a best-effort
// numeric-prefix match, not a precise range query.
type Recipe struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	ImageURL      string         `gorm:"size:255" json:"image_url"`
	Ingredients   string         `gorm:"type:text;not null" json:"ingredients"`
	Steps         string         `gorm:"type:text;not null" json:"steps"`
	Cuisine       string         `gorm:"size:50;not null" json:"cuisine"`
	PrepTime      string         `gorm:"size:50;not null" json:"prep_time"`
	CookTime      string         `gorm:"size:50;not null" json:"cook_time"`
	Servings      int            `gorm:"not null" json:"servings"`
	Difficulty    string         `gorm:"size:20;default:'Easy'" json:"difficulty"`
	Tags          string         `gorm:"type:text" json:"tags"`
	Category      string         `gorm:"size:50" json:"category"`
	VideoURL      string         `gorm:"size:255" json:"video_url"`
	Notes         string         `gorm:"type:text" json:"notes"`
	Vegetarian    string         `gorm:"size:10;default:'Yes'" json:"vegetarian"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	AverageRating float64        `gorm:"default:0" json:"average_rating"`
	TotalRatings  int            `gorm:"default:0" json:"total_ratings"`
}

// BeforeCreate assigns the ID client-side so the model works on both
// Postgres and the SQLite driver used in tests.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeRating is one user's rating of one recipe. The unique index makes
// a second submission from the same user an update, never a second row, so
// TotalRatings can never double-count a rater.
type RecipeRating struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_rater" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_rater" json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RecipeRating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeFavorite marks a recipe as saved by a user.
type RecipeFavorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_favoriter" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_favoriter" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *RecipeFavorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
