package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

type ScheduledMealHandler struct {
	calendar service.IScheduledMealService
	logger   *zap.Logger
}

func NewScheduledMealHandler(calendar service.IScheduledMealService, logger *zap.Logger) *ScheduledMealHandler {
	return &ScheduledMealHandler{calendar: calendar, logger: logger}
}

// ListScheduledMeals accepts optional start and end query dates.
func (h *ScheduledMealHandler) ListScheduledMeals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	meals, err := h.calendar.ListScheduledMeals(c.Request.Context(), userID, c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheduled_meals": meals})
}

func (h *ScheduledMealHandler) ScheduleMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.ScheduleMealRequest
	if !bindJSON(c, &req) {
		return
	}

	meal, err := h.calendar.ScheduleMeal(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"scheduled_meal": meal})
}

func (h *ScheduledMealHandler) UpdateScheduledMeal(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}
	var req types.UpdateScheduledMealRequest
	if !bindJSON(c, &req) {
		return
	}

	meal, err := h.calendar.UpdateScheduledMeal(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheduled_meal": meal})
}

func (h *ScheduledMealHandler) DeleteScheduledMeal(c *gin.Context) {
	userID, id, ok := userAndID(c)
	if !ok {
		return
	}

	if err := h.calendar.DeleteScheduledMeal(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
