package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealwise/backend/internal/grocery"
	"github.com/pageza/mealwise/backend/internal/model"
)

// CreateMealPlanRequest represents the request body for saving a meal plan
type CreateMealPlanRequest struct {
	Title              string         `json:"title" binding:"required"`
	Description        string         `json:"description"`
	PlanType           string         `json:"plan_type"`
	People             int            `json:"people"`
	Days               int            `json:"days"`
	MealsPerDay        int            `json:"meals_per_day"`
	TotalPrepTimeHours float64        `json:"total_prep_time_hours"`
	PlanData           model.PlanData `json:"plan_data"`
	GroceryList        *grocery.List  `json:"grocery_list"`
}

// UpdateMealPlanRequest represents the request body for editing a meal plan.
// Omitted fields are left unchanged.
type UpdateMealPlanRequest struct {
	Title              *string         `json:"title"`
	Description        *string         `json:"description"`
	PlanType           *string         `json:"plan_type"`
	People             *int            `json:"people"`
	Days               *int            `json:"days"`
	MealsPerDay        *int            `json:"meals_per_day"`
	TotalPrepTimeHours *float64        `json:"total_prep_time_hours"`
	PlanData           *model.PlanData `json:"plan_data"`
	GroceryList        *grocery.List   `json:"grocery_list"`
}

// ShoppingListItemInput is an item as submitted by a client.
type ShoppingListItemInput struct {
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
}

type CreateShoppingListRequest struct {
	Name  string                  `json:"name"`
	Items []ShoppingListItemInput `json:"items"`
}

type UpdateShoppingListRequest struct {
	Name  *string                   `json:"name"`
	Items *[]model.ShoppingListItem `json:"items"`
}

// AddItemsRequest appends items to the user's most recent shopping list.
type AddItemsRequest struct {
	Items      []ShoppingListItemInput `json:"items"`
	SourceID   string                  `json:"source_id"`
	SourceType string                  `json:"source_type" binding:"omitempty,oneof=recipe meal_plan"`
}

type AddItemsResult struct {
	List    *model.ShoppingList `json:"list"`
	Added   int                 `json:"added"`
	Skipped int                 `json:"skipped"`
}

type ScheduleMealRequest struct {
	Date       string     `json:"date" binding:"required"`
	MealType   string     `json:"meal_type" binding:"required"`
	RecipeID   *uuid.UUID `json:"recipe_id"`
	MealPlanID *uuid.UUID `json:"meal_plan_id"`
	CustomMeal *string    `json:"custom_meal"`
}

// UpdateScheduledMealRequest patches a scheduled meal. Sending null for an
// optional reference clears it.
type UpdateScheduledMealRequest struct {
	Date       Optional[string]    `json:"date"`
	MealType   Optional[string]    `json:"meal_type"`
	RecipeID   Optional[uuid.UUID] `json:"recipe_id"`
	MealPlanID Optional[uuid.UUID] `json:"meal_plan_id"`
	CustomMeal Optional[string]    `json:"custom_meal"`
}

type CreateRecipeRequest struct {
	Title            string                   `json:"title" binding:"required"`
	Description      string                   `json:"description"`
	Ingredients      []grocery.IngredientLine `json:"ingredients"`
	Instructions     []string                 `json:"instructions"`
	IngredientsInput []string                 `json:"ingredients_input"`
	SpicesUsed       []string                 `json:"spices_used"`
	PrepTimeMinutes  int                      `json:"prep_time_minutes"`
	CookTimeMinutes  int                      `json:"cook_time_minutes"`
	Servings         int                      `json:"servings"`
	Difficulty       string                   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type UpdateRecipeRequest struct {
	Title            *string                   `json:"title"`
	Description      *string                   `json:"description"`
	Ingredients      *[]grocery.IngredientLine `json:"ingredients"`
	Instructions     *[]string                 `json:"instructions"`
	PrepTimeMinutes  *int                      `json:"prep_time_minutes"`
	CookTimeMinutes  *int                      `json:"cook_time_minutes"`
	Servings         *int                      `json:"servings"`
	Difficulty       *string                   `json:"difficulty"`
	IsFavorite       *bool                     `json:"is_favorite"`
	IsFamilyFavorite *bool                     `json:"is_family_favorite"`
}

type DietProfileRequest struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
	ProteinPreferences  []string `json:"protein_preferences"`
	DislikedIngredients []string `json:"disliked_ingredients"`
	CalorieTarget       *int     `json:"calorie_target"`
	KitchenEquipment    []string `json:"kitchen_equipment"`
	BudgetMode          bool     `json:"budget_mode"`
}

// ExportResponse points at an uploaded grocery checklist.
type ExportResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
