package model

type Spice struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category string `gorm:"size:50;not null" json:"category"`
	IsCommon bool   `gorm:"not null;default:false" json:"is_common"`
}

// DefaultSpices is the built-in pantry list served when the spices table is
// empty or unreachable.
func DefaultSpices() []Spice {
	return []Spice{
		{1, "Salt", "Basic", true},
		{2, "Black Pepper", "Basic", true},
		{3, "Garlic Powder", "Basic", true},
		{4, "Onion Powder", "Basic", true},
		{5, "Paprika", "Warm", true},
		{6, "Cumin", "Warm", true},
		{7, "Chili Powder", "Warm", true},
		{8, "Cayenne", "Warm", true},
		{9, "Oregano", "Herbs", true},
		{10, "Basil", "Herbs", true},
		{11, "Thyme", "Herbs", true},
		{12, "Rosemary", "Herbs", true},
		{13, "Cinnamon", "Sweet", true},
		{14, "Nutmeg", "Sweet", true},
		{15, "Ginger", "Asian", true},
		{16, "Turmeric", "Asian", true},
		{17, "Curry Powder", "Asian", true},
		{18, "Italian Seasoning", "Blends", true},
		{19, "Taco Seasoning", "Blends", true},
		{20, "Everything Bagel", "Blends", true},
	}
}

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Recipe{},
		&MealPlan{},
		&ShoppingList{},
		&ScheduledMeal{},
		&DietProfile{},
		&Spice{},
	}
}
