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

// RecipeService handles saved recipe operations
type RecipeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, logger *zap.Logger) *RecipeService {
	return &RecipeService{db: db, logger: logger}
}

// ListRecipes lists the user's recipes, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*model.Recipe, error) {
	if !model.ValidDifficulty(req.Difficulty) {
		return nil, fmt.Errorf("%w: difficulty must be easy, medium or hard", ErrValidation)
	}

	recipe := model.Recipe{
		UserID:           userID,
		Title:            req.Title,
		Description:      req.Description,
		Ingredients:      model.Ingredients(req.Ingredients),
		Instructions:     model.JSONBStringArray(req.Instructions),
		IngredientsInput: model.JSONBStringArray(req.IngredientsInput),
		SpicesUsed:       model.JSONBStringArray(req.SpicesUsed),
		PrepTimeMinutes:  req.PrepTimeMinutes,
		CookTimeMinutes:  req.CookTimeMinutes,
		Servings:         req.Servings,
		Difficulty:       req.Difficulty,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return &recipe, nil
}

// UpdateRecipe applies the non-nil fields of req, including the favorite flags
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Ingredients != nil {
		recipe.Ingredients = model.Ingredients(*req.Ingredients)
	}
	if req.Instructions != nil {
		recipe.Instructions = model.JSONBStringArray(*req.Instructions)
	}
	if req.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = *req.CookTimeMinutes
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Difficulty != nil {
		if !model.ValidDifficulty(*req.Difficulty) {
			return nil, fmt.Errorf("%w: difficulty must be easy, medium or hard", ErrValidation)
		}
		recipe.Difficulty = *req.Difficulty
	}
	if req.IsFavorite != nil {
		recipe.IsFavorite = *req.IsFavorite
	}
	if req.IsFamilyFavorite != nil {
		recipe.IsFamilyFavorite = *req.IsFamilyFavorite
	}

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

// DeleteRecipe deletes a recipe and unlinks it from the user's calendar
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Recipe{}, "id = ? AND user_id = ?", id, userID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		if err := tx.Model(&model.ScheduledMeal{}).
			Where("recipe_id = ? AND user_id = ?", id, userID).
			Update("recipe_id", nil).Error; err != nil {
			return fmt.Errorf("failed to unlink scheduled meals: %w", err)
		}
		s.logger.Info("Recipe deleted", zap.String("recipe_id", id.String()))
		return nil
	})
}
