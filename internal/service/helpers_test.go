package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/grocery"
	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/testhelpers"
	"github.com/pageza/mealwise/backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testhelpers.SetupSQLite(t)
}

func ingredients(pairs ...string) []grocery.IngredientLine {
	lines := make([]grocery.IngredientLine, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		lines = append(lines, grocery.IngredientLine{Item: pairs[i], Amount: pairs[i+1]})
	}
	return lines
}

// twoDayPlan uses chicken breast on both days so aggregation has something
// to merge.
func twoDayPlan() model.PlanData {
	return model.PlanData{MealPlan: grocery.MealPlan{Days: []grocery.Day{
		{Day: "Monday", Meals: grocery.MealSlots{
			grocery.SlotDinner: {Name: "Grilled chicken", Ingredients: ingredients("Chicken Breast", "8 oz", "rice", "1 cup")},
		}},
		{Day: "Tuesday", Meals: grocery.MealSlots{
			grocery.SlotLunch:  {Name: "Salad", Ingredients: ingredients("lettuce", "1 head")},
			grocery.SlotDinner: {Name: "Stir fry", Ingredients: ingredients("chicken breast", "8 oz")},
		}},
	}}}
}

func createPlan(t *testing.T, svc *MealPlanService, userID uuid.UUID) *model.MealPlan {
	t.Helper()
	plan, err := svc.CreateMealPlan(ctxT(t), userID, &types.CreateMealPlanRequest{
		Title:    "Week one",
		PlanData: twoDayPlan(),
	})
	require.NoError(t, err)
	return plan
}

func newServices(t *testing.T) (*gorm.DB, *MealPlanService, *RecipeService, *ShoppingListService) {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()
	return db, NewMealPlanService(db, log), NewRecipeService(db, log), NewShoppingListService(db, log)
}

func ctxT(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
