package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/types"
)

func createRecipe(t *testing.T, svc *RecipeService, userID uuid.UUID) *model.Recipe {
	t.Helper()
	recipe, err := svc.CreateRecipe(ctxT(t), userID, &types.CreateRecipeRequest{
		Title:        "Garlic rice",
		Ingredients:  ingredients("rice", "2 cups", "garlic", "3 cloves"),
		Instructions: []string{"Rinse rice", "Cook"},
		Servings:     4,
		Difficulty:   "easy",
	})
	require.NoError(t, err)
	return recipe
}

func TestCreateAndGetRecipe(t *testing.T) {
	_, _, recipes, _ := newServices(t)
	userID := uuid.New()
	recipe := createRecipe(t, recipes, userID)

	got, err := recipes.GetRecipe(ctxT(t), userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garlic rice", got.Title)
	assert.Len(t, got.Ingredients, 2)
	assert.Equal(t, model.JSONBStringArray{"Rinse rice", "Cook"}, got.Instructions)
	assert.NotNil(t, got.SpicesUsed)

	_, err = recipes.GetRecipe(ctxT(t), uuid.New(), recipe.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestCreateRecipeRejectsDifficulty(t *testing.T) {
	_, _, recipes, _ := newServices(t)

	_, err := recipes.CreateRecipe(ctxT(t), uuid.New(), &types.CreateRecipeRequest{Title: "x", Difficulty: "extreme"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRecipeFavorites(t *testing.T) {
	_, _, recipes, _ := newServices(t)
	userID := uuid.New()
	recipe := createRecipe(t, recipes, userID)

	yes := true
	servings := 2
	updated, err := recipes.UpdateRecipe(ctxT(t), userID, recipe.ID, &types.UpdateRecipeRequest{
		IsFavorite:       &yes,
		IsFamilyFavorite: &yes,
		Servings:         &servings,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsFavorite)
	assert.True(t, updated.IsFamilyFavorite)
	assert.Equal(t, 2, updated.Servings)
	assert.Equal(t, "Garlic rice", updated.Title)

	bad := "impossible"
	_, err = recipes.UpdateRecipe(ctxT(t), userID, recipe.ID, &types.UpdateRecipeRequest{Difficulty: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteRecipeUnlinksScheduledMeals(t *testing.T) {
	db, _, recipes, _ := newServices(t)
	userID := uuid.New()
	recipe := createRecipe(t, recipes, userID)

	meal := model.ScheduledMeal{UserID: userID, Date: "2025-03-01", MealType: "dinner", RecipeID: &recipe.ID}
	require.NoError(t, db.Create(&meal).Error)

	require.NoError(t, recipes.DeleteRecipe(ctxT(t), userID, recipe.ID))
	assert.ErrorIs(t, recipes.DeleteRecipe(ctxT(t), userID, recipe.ID), ErrRecipeNotFound)

	var stored model.ScheduledMeal
	require.NoError(t, db.First(&stored, "id = ?", meal.ID).Error)
	assert.Nil(t, stored.RecipeID)
}
