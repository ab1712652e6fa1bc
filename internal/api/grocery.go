package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/service"
)

// GroceryHandler serves grocery lists derived from plans and recipes.
type GroceryHandler struct {
	grocery service.IGroceryService
	logger  *zap.Logger
}

func NewGroceryHandler(grocery service.IGroceryService, logger *zap.Logger) *GroceryHandler {
	return &GroceryHandler{grocery: grocery, logger: logger}
}

func (h *GroceryHandler) MealPlanGroceryList(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}

	list, err := h.grocery.MealPlanGroceryList(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MealPlanChecklist downloads the list as a printable text checklist.
func (h *GroceryHandler) MealPlanChecklist(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}

	text, err := h.grocery.MealPlanChecklist(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="grocery-list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (h *GroceryHandler) ExportChecklist(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}

	export, err := h.grocery.ExportChecklist(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}

func (h *GroceryHandler) AddToShoppingList(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}

	result, err := h.grocery.AddToShoppingList(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GroceryHandler) RecipeGroceryList(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}

	list, err := h.grocery.RecipeGroceryList(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
