package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

type ShoppingListHandler struct {
	lists  service.IShoppingListService
	logger *zap.Logger
}

func NewShoppingListHandler(lists service.IShoppingListService, logger *zap.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{lists: lists, logger: logger}
}

func (h *ShoppingListHandler) ListShoppingLists(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	lists, err := h.lists.ListShoppingLists(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
}

func (h *ShoppingListHandler) CreateShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CreateShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.lists.CreateShoppingList(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shopping_list": list})
}

func (h *ShoppingListHandler) UpdateShoppingList(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}
	var req types.UpdateShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.lists.UpdateShoppingList(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_list": list})
}

func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}

	if err := h.lists.DeleteShoppingList(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) AddItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.AddItemsRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.lists.AddItems(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
