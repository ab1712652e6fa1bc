package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/types"
)

// ScheduledMealService manages the meal calendar
type ScheduledMealService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewScheduledMealService(db *gorm.DB, logger *zap.Logger) *ScheduledMealService {
	return &ScheduledMealService{db: db, logger: logger}
}

func validDate(field, value string) error {
	if _, err := time.Parse(model.DateLayout, value); err != nil {
		return fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, field)
	}
	return nil
}

func validMealType(value string) error {
	if !model.ValidMealType(value) {
		return fmt.Errorf("%w: meal_type must be breakfast, lunch, dinner or snack", ErrValidation)
	}
	return nil
}

// ListScheduledMeals returns meals between start and end inclusive, ordered
// by date. Either bound may be empty.
func (s *ScheduledMealService) ListScheduledMeals(ctx context.Context, userID uuid.UUID, start, end string) ([]model.ScheduledMeal, error) {
	query := s.db.WithContext(ctx).Preload("Recipe").Where("user_id = ?", userID)
	if start != "" {
		if err := validDate("start", start); err != nil {
			return nil, err
		}
		query = query.Where("date >= ?", start)
	}
	if end != "" {
		if err := validDate("end", end); err != nil {
			return nil, err
		}
		query = query.Where("date <= ?", end)
	}
	if start != "" && end != "" && start > end {
		return nil, ErrInvalidDateRange
	}

	meals := []model.ScheduledMeal{}
	if err := query.Order("date ASC").Order("created_at ASC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to list scheduled meals: %w", err)
	}
	return meals, nil
}

func (s *ScheduledMealService) ScheduleMeal(ctx context.Context, userID uuid.UUID, req *types.ScheduleMealRequest) (*model.ScheduledMeal, error) {
	if err := validDate("date", req.Date); err != nil {
		return nil, err
	}
	if err := validMealType(req.MealType); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, userID, req.RecipeID, req.MealPlanID); err != nil {
		return nil, err
	}

	meal := model.ScheduledMeal{
		UserID:     userID,
		Date:       req.Date,
		MealType:   req.MealType,
		RecipeID:   req.RecipeID,
		MealPlanID: req.MealPlanID,
		CustomMeal: req.CustomMeal,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, fmt.Errorf("failed to schedule meal: %w", err)
	}
	return s.get(ctx, userID, meal.ID)
}

// UpdateScheduledMeal applies only the fields present in req. An explicit
// null clears recipe_id, meal_plan_id or custom_meal.
func (s *ScheduledMealService) UpdateScheduledMeal(ctx context.Context, userID, id uuid.UUID, req *types.UpdateScheduledMealRequest) (*model.ScheduledMeal, error) {
	if _, err := s.get(ctx, userID, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Date.Set {
		if req.Date.Value == nil {
			return nil, fmt.Errorf("%w: date cannot be null", ErrValidation)
		}
		if err := validDate("date", *req.Date.Value); err != nil {
			return nil, err
		}
		updates["date"] = *req.Date.Value
	}
	if req.MealType.Set {
		if req.MealType.Value == nil {
			return nil, fmt.Errorf("%w: meal_type cannot be null", ErrValidation)
		}
		if err := validMealType(*req.MealType.Value); err != nil {
			return nil, err
		}
		updates["meal_type"] = *req.MealType.Value
	}
	if req.RecipeID.Set {
		if err := s.checkReferences(ctx, userID, req.RecipeID.Value, nil); err != nil {
			return nil, err
		}
		updates["recipe_id"] = req.RecipeID.Value
	}
	if req.MealPlanID.Set {
		if err := s.checkReferences(ctx, userID, nil, req.MealPlanID.Value); err != nil {
			return nil, err
		}
		updates["meal_plan_id"] = req.MealPlanID.Value
	}
	if req.CustomMeal.Set {
		updates["custom_meal"] = req.CustomMeal.Value
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).
			Model(&model.ScheduledMeal{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update scheduled meal: %w", err)
		}
	}
	return s.get(ctx, userID, id)
}

func (s *ScheduledMealService) DeleteScheduledMeal(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.ScheduledMeal{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete scheduled meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrScheduledMealNotFound
	}
	return nil
}

func (s *ScheduledMealService) get(ctx context.Context, userID, id uuid.UUID) (*model.ScheduledMeal, error) {
	var meal model.ScheduledMeal
	err := s.db.WithContext(ctx).Preload("Recipe").First(&meal, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScheduledMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled meal: %w", err)
	}
	return &meal, nil
}

// checkReferences makes sure linked recipes and plans belong to the user.
func (s *ScheduledMealService) checkReferences(ctx context.Context, userID uuid.UUID, recipeID, mealPlanID *uuid.UUID) error {
	if recipeID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
			Where("id = ? AND user_id = ?", *recipeID, userID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check recipe: %w", err)
		}
		if count == 0 {
			return ErrRecipeNotFound
		}
	}
	if mealPlanID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.MealPlan{}).
			Where("id = ? AND user_id = ?", *mealPlanID, userID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check meal plan: %w", err)
		}
		if count == 0 {
			return ErrMealPlanNotFound
		}
	}
	return nil
}
