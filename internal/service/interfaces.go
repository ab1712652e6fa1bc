package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/mealwise/backend/internal/grocery"
	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/types"
)

// IMealPlanService defines the interface for saved meal plan operations
type IMealPlanService interface {
	ListMealPlans(ctx context.Context, userID uuid.UUID) ([]model.MealPlan, error)
	GetMealPlan(ctx context.Context, userID, id uuid.UUID) (*model.MealPlan, error)
	CreateMealPlan(ctx context.Context, userID uuid.UUID, req *types.CreateMealPlanRequest) (*model.MealPlan, error)
	UpdateMealPlan(ctx context.Context, userID, id uuid.UUID, req *types.UpdateMealPlanRequest) (*model.MealPlan, error)
	DeleteMealPlan(ctx context.Context, userID, id uuid.UUID) error
}

// IGroceryService defines the interface for grocery list operations
type IGroceryService interface {
	MealPlanGroceryList(ctx context.Context, userID, planID uuid.UUID) (grocery.List, error)
	MealPlanChecklist(ctx context.Context, userID, planID uuid.UUID) (string, error)
	RecipeGroceryList(ctx context.Context, userID, recipeID uuid.UUID) (grocery.List, error)
	ExportChecklist(ctx context.Context, userID, planID uuid.UUID) (*types.ExportResponse, error)
	AddToShoppingList(ctx context.Context, userID, planID uuid.UUID) (*types.AddItemsResult, error)
}

// IShoppingListService defines the interface for shopping list operations
type IShoppingListService interface {
	ListShoppingLists(ctx context.Context, userID uuid.UUID) ([]model.ShoppingList, error)
	CreateShoppingList(ctx context.Context, userID uuid.UUID, req *types.CreateShoppingListRequest) (*model.ShoppingList, error)
	UpdateShoppingList(ctx context.Context, userID, id uuid.UUID, req *types.UpdateShoppingListRequest) (*model.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, userID, id uuid.UUID) error
	AddItems(ctx context.Context, userID uuid.UUID, req *types.AddItemsRequest) (*types.AddItemsResult, error)
}

// IScheduledMealService defines the interface for calendar operations
type IScheduledMealService interface {
	ListScheduledMeals(ctx context.Context, userID uuid.UUID, start, end string) ([]model.ScheduledMeal, error)
	ScheduleMeal(ctx context.Context, userID uuid.UUID, req *types.ScheduleMealRequest) (*model.ScheduledMeal, error)
	UpdateScheduledMeal(ctx context.Context, userID, id uuid.UUID, req *types.UpdateScheduledMealRequest) (*model.ScheduledMeal, error)
	DeleteScheduledMeal(ctx context.Context, userID, id uuid.UUID) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
}

// IDietProfileService defines the interface for diet profile operations
type IDietProfileService interface {
	GetDietProfile(ctx context.Context, userID uuid.UUID) (*model.DietProfile, error)
	SaveDietProfile(ctx context.Context, userID uuid.UUID, req *types.DietProfileRequest) (*model.DietProfile, error)
}

// ISpiceService defines the interface for the spice catalogue
type ISpiceService interface {
	ListSpices(ctx context.Context) []model.Spice
}

var (
	_ IMealPlanService      = (*MealPlanService)(nil)
	_ IGroceryService       = (*GroceryService)(nil)
	_ IShoppingListService  = (*ShoppingListService)(nil)
	_ IScheduledMealService = (*ScheduledMealService)(nil)
	_ IRecipeService        = (*RecipeService)(nil)
	_ IDietProfileService   = (*DietProfileService)(nil)
	_ ISpiceService         = (*SpiceService)(nil)
)
