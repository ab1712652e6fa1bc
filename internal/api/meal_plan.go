package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

type MealPlanHandler struct {
	plans  service.IMealPlanService
	logger *zap.Logger
}

func NewMealPlanHandler(plans service.IMealPlanService, logger *zap.Logger) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, logger: logger}
}

func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plans, err := h.plans.ListMealPlans(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}

	plan, err := h.plans.GetMealPlan(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CreateMealPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.plans.CreateMealPlan(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) UpdateMealPlan(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}
	var req types.UpdateMealPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.plans.UpdateMealPlan(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}

	if err := h.plans.DeleteMealPlan(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
