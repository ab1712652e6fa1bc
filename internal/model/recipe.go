package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var difficulties = map[string]bool{"easy": true, "medium": true, "hard": true}

// ValidDifficulty reports whether d is easy, medium or hard. Empty is allowed.
func ValidDifficulty(d string) bool {
	return d == "" || difficulties[d]
}

type Recipe struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string           `gorm:"size:255;not null" json:"title"`
	Description      string           `gorm:"type:text" json:"description"`
	Ingredients      Ingredients      `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions     JSONBStringArray `gorm:"type:jsonb;not null" json:"instructions"`
	IngredientsInput JSONBStringArray `gorm:"type:jsonb;not null" json:"ingredients_input"`
	SpicesUsed       JSONBStringArray `gorm:"type:jsonb;not null" json:"spices_used"`
	PrepTimeMinutes  int              `json:"prep_time_minutes"`
	CookTimeMinutes  int              `json:"cook_time_minutes"`
	Servings         int              `json:"servings"`
	Difficulty       string           `gorm:"size:20" json:"difficulty"`
	IsFavorite       bool             `gorm:"not null;default:false" json:"is_favorite"`
	IsFamilyFavorite bool             `gorm:"not null;default:false" json:"is_family_favorite"`
	CreatedAt        time.Time        `json:"created_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
