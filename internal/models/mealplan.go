package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealSlot is one planned meal on a day. A zero RecipeID means the slot is
// empty.
type MealSlot struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Servings int       `json:"servings"`
}

// MealSlots holds the four meals of one planned day, serialized as JSONB.
type MealSlots struct {
	Breakfast MealSlot `json:"breakfast"`
	Lunch     MealSlot `json:"lunch"`
	Dinner    MealSlot `json:"dinner"`
	Snack     MealSlot `json:"snack"`
}

// Value implements driver.Valuer.
func (m MealSlots) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *MealSlots) Scan(value interface{}) error {
	if value == nil {
		*m = MealSlots{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// MealPlan is one user's plan for one calendar day. The user+date unique
// index makes saving a plan an upsert.
type MealPlan struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_plan_date" json:"user_id"`
	Date      time.Time      `gorm:"not null;uniqueIndex:idx_user_plan_date" json:"date"`
	Meals     MealSlots      `gorm:"type:jsonb;not null;default:'{}'" json:"meals"`
	Notes     string         `gorm:"type:text" json:"notes"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
