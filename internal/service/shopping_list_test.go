package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealwise/backend/internal/grocery"
	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/types"
)

func TestCreateShoppingList(t *testing.T) {
	_, _, _, lists := newServices(t)
	userID := uuid.New()

	list, err := lists.CreateShoppingList(ctxT(t), userID, &types.CreateShoppingListRequest{
		Name:  "  Weekend  ",
		Items: []types.ShoppingListItemInput{{Item: "Eggs", Amount: "12"}, {Item: "Milk", Category: "Dairy"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Weekend", list.Name)
	require.Len(t, list.Items, 2)
	assert.NotEqual(t, uuid.Nil, list.Items[0].ID)
	assert.Equal(t, grocery.OtherCategory, list.Items[0].Category)
	assert.Equal(t, "Dairy", list.Items[1].Category)

	unnamed, err := lists.CreateShoppingList(ctxT(t), userID, &types.CreateShoppingListRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultShoppingListName, unnamed.Name)
	assert.NotNil(t, unnamed.Items)
}

func TestUpdateShoppingList(t *testing.T) {
	_, _, _, lists := newServices(t)
	userID := uuid.New()
	list, err := lists.CreateShoppingList(ctxT(t), userID, &types.CreateShoppingListRequest{Name: "Groceries"})
	require.NoError(t, err)

	name := "Renamed"
	items := []model.ShoppingListItem{{Item: "Bread", Amount: "1 loaf", Checked: true}}
	updated, err := lists.UpdateShoppingList(ctxT(t), userID, list.ID, &types.UpdateShoppingListRequest{
		Name:  &name,
		Items: &items,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.Len(t, updated.Items, 1)
	assert.NotEqual(t, uuid.Nil, updated.Items[0].ID)
	assert.Equal(t, grocery.OtherCategory, updated.Items[0].Category)
	assert.True(t, updated.Items[0].Checked)

	blank := "   "
	_, err = lists.UpdateShoppingList(ctxT(t), userID, list.ID, &types.UpdateShoppingListRequest{Name: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = lists.UpdateShoppingList(ctxT(t), uuid.New(), list.ID, &types.UpdateShoppingListRequest{Name: &name})
	assert.ErrorIs(t, err, ErrShoppingListNotFound)
}

func TestDeleteShoppingList(t *testing.T) {
	_, _, _, lists := newServices(t)
	userID := uuid.New()
	list, err := lists.CreateShoppingList(ctxT(t), userID, &types.CreateShoppingListRequest{})
	require.NoError(t, err)

	assert.ErrorIs(t, lists.DeleteShoppingList(ctxT(t), uuid.New(), list.ID), ErrShoppingListNotFound)
	require.NoError(t, lists.DeleteShoppingList(ctxT(t), userID, list.ID))

	all, err := lists.ListShoppingLists(ctxT(t), userID)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAddItemsCreatesDefaultList(t *testing.T) {
	_, _, _, lists := newServices(t)
	userID := uuid.New()

	result, err := lists.AddItems(ctxT(t), userID, &types.AddItemsRequest{
		Items:      []types.ShoppingListItemInput{{Item: "Tomato", Amount: "2"}},
		SourceID:   "recipe-1",
		SourceType: model.SourceRecipe,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, model.DefaultShoppingListName, result.List.Name)
	require.Len(t, result.List.Items, 1)
	assert.Equal(t, "recipe-1", result.List.Items[0].SourceID)
	assert.Equal(t, model.SourceRecipe, result.List.Items[0].SourceType)
}

func TestAddItemsDeduplicatesCaseInsensitively(t *testing.T) {
	_, _, _, lists := newServices(t)
	userID := uuid.New()
	_, err := lists.CreateShoppingList(ctxT(t), userID, &types.CreateShoppingListRequest{
		Items: []types.ShoppingListItemInput{{Item: "Milk", Amount: "1 gallon"}},
	})
	require.NoError(t, err)

	result, err := lists.AddItems(ctxT(t), userID, &types.AddItemsRequest{
		Items: []types.ShoppingListItemInput{
			{Item: "MILK", Amount: "2 cups"},
			{Item: "Eggs"},
			{Item: "eggs"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.List.Items, 2)
	assert.Equal(t, "1 gallon", result.List.Items[0].Amount, "existing item is left untouched")
	assert.Equal(t, "Eggs", result.List.Items[1].Item)

	stored, err := lists.ListShoppingLists(ctxT(t), userID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Items, 2)
}

func TestAddItemsIgnoresSurroundingWhitespace(t *testing.T) {
	_, _, _, lists := newServices(t)
	userID := uuid.New()
	_, err := lists.CreateShoppingList(ctxT(t), userID, &types.CreateShoppingListRequest{
		Items: []types.ShoppingListItemInput{{Item: "Milk "}},
	})
	require.NoError(t, err)

	result, err := lists.AddItems(ctxT(t), userID, &types.AddItemsRequest{
		Items: []types.ShoppingListItemInput{
			{Item: "milk"},
			{Item: "  Eggs"},
			{Item: "eggs "},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.List.Items, 2)
	assert.Equal(t, "  Eggs", result.List.Items[1].Item)
}

func TestAddItemsRequiresItems(t *testing.T) {
	_, _, _, lists := newServices(t)

	_, err := lists.AddItems(ctxT(t), uuid.New(), &types.AddItemsRequest{})
	assert.ErrorIs(t, err, ErrNoItems)
}
