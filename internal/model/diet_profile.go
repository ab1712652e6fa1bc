package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietProfile holds a user's standing food preferences. One row per user.
type DietProfile struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null" json:"dietary_restrictions"`
	CuisinePreferences  JSONBStringArray `gorm:"type:jsonb;not null" json:"cuisine_preferences"`
	ProteinPreferences  JSONBStringArray `gorm:"type:jsonb;not null" json:"protein_preferences"`
	DislikedIngredients JSONBStringArray `gorm:"type:jsonb;not null" json:"disliked_ingredients"`
	CalorieTarget       *int             `json:"calorie_target"`
	KitchenEquipment    JSONBStringArray `gorm:"type:jsonb;not null" json:"kitchen_equipment"`
	BudgetMode          bool             `gorm:"not null;default:false" json:"budget_mode"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (d *DietProfile) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// EmptyDietProfile is served to users who have not saved a profile yet.
func EmptyDietProfile(userID uuid.UUID) *DietProfile {
	return &DietProfile{
		UserID:              userID,
		DietaryRestrictions: JSONBStringArray{},
		CuisinePreferences:  JSONBStringArray{},
		ProteinPreferences:  JSONBStringArray{},
		DislikedIngredients: JSONBStringArray{},
		KitchenEquipment:    JSONBStringArray{},
	}
}
