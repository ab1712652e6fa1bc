package grocery

import (
	"encoding/json"
	"fmt"
	"sort"
)

// IngredientLine is a single ingredient as written in a recipe or meal.
type IngredientLine struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// Macros holds per-serving nutrition estimates.
type Macros struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Meal is one dish within a day of a meal plan. Only Ingredients is read
// during aggregation.
type Meal struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	MealType        string           `json:"meal_type,omitempty"`
	PrepTimeMinutes int              `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes int              `json:"cook_time_minutes,omitempty"`
	Servings        int              `json:"servings,omitempty"`
	AdultServings   int              `json:"adult_servings,omitempty"`
	ChildServings   int              `json:"child_servings,omitempty"`
	Ingredients     []IngredientLine `json:"ingredients"`
	Instructions    []string         `json:"instructions,omitempty"`
	Macros          *Macros          `json:"macros,omitempty"`
}

// Conventional meal slots, in traversal order.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
)

var slotOrder = []string{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// MealSlots maps a meal slot name to the meal served in it. A nil meal means
// the slot is empty.
type MealSlots map[string]*Meal

// UnmarshalJSON accepts either an object keyed by slot name or an array of
// meals carrying a meal_type.
func (s *MealSlots) UnmarshalJSON(data []byte) error {
	var byName map[string]*Meal
	if err := json.Unmarshal(data, &byName); err == nil {
		*s = byName
		return nil
	}

	var list []*Meal
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("invalid meals format: %w", err)
	}

	slots := make(MealSlots, len(list))
	for i, meal := range list {
		if meal == nil {
			continue
		}
		name := meal.MealType
		if name == "" {
			name = fmt.Sprintf("meal_%d", i+1)
		}
		if _, taken := slots[name]; taken {
			name = fmt.Sprintf("%s_%d", name, i+1)
		}
		slots[name] = meal
	}
	*s = slots
	return nil
}

// SlotNames returns the populated slot names: conventional slots first, then
// any other names sorted.
func (s MealSlots) SlotNames() []string {
	names := make([]string, 0, len(s))
	known := make(map[string]bool, len(slotOrder))
	for _, name := range slotOrder {
		known[name] = true
		if s[name] != nil {
			names = append(names, name)
		}
	}

	var extra []string
	for name, meal := range s {
		if !known[name] && meal != nil {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Day is one labelled day of a meal plan.
type Day struct {
	Day   string    `json:"day"`
	Meals MealSlots `json:"meals"`
}

// MealPlan is the day → meal → ingredient structure the aggregator consumes.
type MealPlan struct {
	Days []Day `json:"days"`
}

// Item is one consolidated line of a grocery list.
type Item struct {
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

// Category groups grocery items belonging to the same shopping aisle.
type Category struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// List is a categorized, sorted, deduplicated grocery list.
type List struct {
	Categories []Category `json:"categories"`
}

// Flatten returns every item in category order, then item order.
func (l List) Flatten() []Item {
	items := make([]Item, 0, l.ItemCount())
	for _, category := range l.Categories {
		items = append(items, category.Items...)
	}
	return items
}

// ItemCount returns the number of items across all categories.
func (l List) ItemCount() int {
	n := 0
	for _, category := range l.Categories {
		n += len(category.Items)
	}
	return n
}
