package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the calendar date format used for scheduled meals.
const DateLayout = "2006-01-02"

var mealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// ValidMealType reports whether t is one of breakfast, lunch, dinner or snack.
func ValidMealType(t string) bool {
	return mealTypes[t]
}

// ScheduledMeal places a recipe, a meal plan or a free-text meal on a
// calendar day. Date is stored as YYYY-MM-DD text so range filters compare
// lexicographically on every driver.
type ScheduledMeal struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_scheduled_meals_user_date" json:"user_id"`
	Date       string     `gorm:"size:10;not null;index:idx_scheduled_meals_user_date" json:"date"`
	MealType   string     `gorm:"size:20;not null" json:"meal_type"`
	RecipeID   *uuid.UUID `gorm:"type:uuid" json:"recipe_id"`
	MealPlanID *uuid.UUID `gorm:"type:uuid" json:"meal_plan_id"`
	CustomMeal *string    `gorm:"type:text" json:"custom_meal"`
	CreatedAt  time.Time  `json:"created_at"`
	Recipe     *Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL" json:"recipe,omitempty"`
}

func (s *ScheduledMeal) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
