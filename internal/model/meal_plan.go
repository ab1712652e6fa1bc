package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/grocery"
)

// GrocerySection is the pre-grouped shopping list some generated plans
// carry alongside their days.
type GrocerySection struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// PlanData is the structured body of a saved meal plan.
type PlanData struct {
	grocery.MealPlan
	GroceryList      []GrocerySection `json:"grocery_list,omitempty"`
	PrepInstructions []string         `json:"prep_instructions,omitempty"`
	StorageTips      []string         `json:"storage_tips,omitempty"`
}

func (p PlanData) Value() (driver.Value, error) { return jsonbValue(p) }

func (p *PlanData) Scan(value interface{}) error { return jsonbScan(value, p) }

// StoredGroceryList is a grocery list persisted on a meal plan. When present
// it is served instead of recomputing the aggregation.
type StoredGroceryList struct {
	grocery.List
}

func (l StoredGroceryList) Value() (driver.Value, error) { return jsonbValue(l.List) }

func (l *StoredGroceryList) Scan(value interface{}) error { return jsonbScan(value, &l.List) }

// MealPlan is a saved multi-day plan owned by a user.
type MealPlan struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Title              string             `gorm:"size:255;not null" json:"title"`
	Description        string             `gorm:"type:text" json:"description"`
	PlanType           string             `gorm:"size:50" json:"plan_type"`
	People             int                `json:"people"`
	Days               int                `json:"days"`
	MealsPerDay        int                `json:"meals_per_day"`
	TotalPrepTimeHours float64            `json:"total_prep_time_hours"`
	PlanData           PlanData           `gorm:"type:jsonb;not null" json:"plan_data"`
	GroceryList        *StoredGroceryList `gorm:"type:jsonb" json:"grocery_list"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (m *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
