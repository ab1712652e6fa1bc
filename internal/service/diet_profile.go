package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/types"
)

type DietProfileService struct {
	db *gorm.DB
}

func NewDietProfileService(db *gorm.DB) *DietProfileService {
	return &DietProfileService{db: db}
}

// GetDietProfile returns the stored profile or an empty one for new users.
func (s *DietProfileService) GetDietProfile(ctx context.Context, userID uuid.UUID) (*model.DietProfile, error) {
	var profile model.DietProfile
	err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.EmptyDietProfile(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diet profile: %w", err)
	}
	return &profile, nil
}

// SaveDietProfile upserts the user's profile on user_id.
func (s *DietProfileService) SaveDietProfile(ctx context.Context, userID uuid.UUID, req *types.DietProfileRequest) (*model.DietProfile, error) {
	profile := model.EmptyDietProfile(userID)
	if req.DietaryRestrictions != nil {
		profile.DietaryRestrictions = req.DietaryRestrictions
	}
	if req.CuisinePreferences != nil {
		profile.CuisinePreferences = req.CuisinePreferences
	}
	if req.ProteinPreferences != nil {
		profile.ProteinPreferences = req.ProteinPreferences
	}
	if req.DislikedIngredients != nil {
		profile.DislikedIngredients = req.DislikedIngredients
	}
	if req.KitchenEquipment != nil {
		profile.KitchenEquipment = req.KitchenEquipment
	}
	if req.CalorieTarget != nil && *req.CalorieTarget > 0 {
		profile.CalorieTarget = req.CalorieTarget
	}
	profile.BudgetMode = req.BudgetMode

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"dietary_restrictions",
			"cuisine_preferences",
			"protein_preferences",
			"disliked_ingredients",
			"calorie_target",
			"kitchen_equipment",
			"budget_mode",
			"updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save diet profile: %w", err)
	}

	return s.GetDietProfile(ctx, userID)
}
