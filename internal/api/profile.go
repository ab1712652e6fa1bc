package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// ProfileHandler serves the diet profile and the public spice catalogue.
type ProfileHandler struct {
	profiles service.IDietProfileService
	spices   service.ISpiceService
	logger   *zap.Logger
}

func NewProfileHandler(profiles service.IDietProfileService, spices service.ISpiceService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, spices: spices, logger: logger}
}

func (h *ProfileHandler) GetDietProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetDietProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) SaveDietProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.DietProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.SaveDietProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) ListSpices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"spices": h.spices.ListSpices(c.Request.Context())})
}
