package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Source types for shopping list items.
const (
	SourceRecipe   = "recipe"
	SourceMealPlan = "meal_plan"
)

// DefaultShoppingListName names lists created without a name.
const DefaultShoppingListName = "My Shopping List"

type ShoppingListItem struct {
	ID         uuid.UUID `json:"id"`
	Item       string    `json:"item"`
	Amount     string    `json:"amount"`
	Category   string    `json:"category"`
	Checked    bool      `json:"checked"`
	SourceID   string    `json:"source_id,omitempty"`
	SourceType string    `json:"source_type,omitempty"`
}

// ShoppingListItems is stored as a JSONB array on the list row.
type ShoppingListItems []ShoppingListItem

func (s ShoppingListItems) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonbValue([]ShoppingListItem(s))
}

func (s *ShoppingListItems) Scan(value interface{}) error {
	*s = ShoppingListItems{}
	return jsonbScan(value, (*[]ShoppingListItem)(s))
}

type ShoppingList struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Items     ShoppingListItems `gorm:"type:jsonb;not null" json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (s *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
