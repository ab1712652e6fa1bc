package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/types"
)

// MealPlanService stores and edits saved meal plans
type MealPlanService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewMealPlanService(db *gorm.DB, logger *zap.Logger) *MealPlanService {
	return &MealPlanService{db: db, logger: logger}
}

// ListMealPlans returns the user's plans, newest first
func (s *MealPlanService) ListMealPlans(ctx context.Context, userID uuid.UUID) ([]model.MealPlan, error) {
	plans := []model.MealPlan{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return plans, nil
}

func (s *MealPlanService) GetMealPlan(ctx context.Context, userID, id uuid.UUID) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := s.db.WithContext(ctx).First(&plan, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return &plan, nil
}

func (s *MealPlanService) CreateMealPlan(ctx context.Context, userID uuid.UUID, req *types.CreateMealPlanRequest) (*model.MealPlan, error) {
	if len(req.PlanData.Days) == 0 {
		return nil, fmt.Errorf("%w: plan_data.days is required", ErrValidation)
	}

	plan := model.MealPlan{
		UserID:             userID,
		Title:              req.Title,
		Description:        req.Description,
		PlanType:           req.PlanType,
		People:             req.People,
		Days:               req.Days,
		MealsPerDay:        req.MealsPerDay,
		TotalPrepTimeHours: req.TotalPrepTimeHours,
		PlanData:           req.PlanData,
	}
	if plan.Days == 0 {
		plan.Days = len(req.PlanData.Days)
	}
	if req.GroceryList != nil {
		plan.GroceryList = &model.StoredGroceryList{List: *req.GroceryList}
	}

	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}

	s.logger.Info("meal plan saved",
		zap.String("meal_plan_id", plan.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("days", len(plan.PlanData.Days)),
	)
	return &plan, nil
}

// UpdateMealPlan applies the non-nil fields of req. Replacing plan_data
// discards any stored grocery list unless req carries a new one, and the
// bumped updated_at retires cached aggregations.
func (s *MealPlanService) UpdateMealPlan(ctx context.Context, userID, id uuid.UUID, req *types.UpdateMealPlanRequest) (*model.MealPlan, error) {
	plan, err := s.GetMealPlan(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		plan.Title = *req.Title
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.PlanType != nil {
		plan.PlanType = *req.PlanType
	}
	if req.People != nil {
		plan.People = *req.People
	}
	if req.Days != nil {
		plan.Days = *req.Days
	}
	if req.MealsPerDay != nil {
		plan.MealsPerDay = *req.MealsPerDay
	}
	if req.TotalPrepTimeHours != nil {
		plan.TotalPrepTimeHours = *req.TotalPrepTimeHours
	}
	if req.PlanData != nil {
		if len(req.PlanData.Days) == 0 {
			return nil, fmt.Errorf("%w: plan_data.days is required", ErrValidation)
		}
		plan.PlanData = *req.PlanData
		plan.GroceryList = nil
	}
	if req.GroceryList != nil {
		plan.GroceryList = &model.StoredGroceryList{List: *req.GroceryList}
	}

	if err := s.db.WithContext(ctx).Save(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to update meal plan: %w", err)
	}
	return plan, nil
}

// DeleteMealPlan deletes a plan and unlinks it from the user's calendar.
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, userID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ScheduledMeal{}).
			Where("meal_plan_id = ? AND user_id = ?", id, userID).
			Update("meal_plan_id", nil).Error; err != nil {
			return fmt.Errorf("failed to unlink scheduled meals: %w", err)
		}
		result := tx.Delete(&model.MealPlan{}, "id = ? AND user_id = ?", id, userID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete meal plan: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrMealPlanNotFound
		}
		return nil
	})
}
