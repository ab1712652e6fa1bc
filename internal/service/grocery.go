package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pageza/mealwise/backend/internal/grocery"
	"github.com/pageza/mealwise/backend/internal/metrics"
	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/types"
)

const (
	groceryCacheTTL    = 24 * time.Hour
	exportURLLifetime  = 15 * time.Minute
	checklistMediaType = "text/plain; charset=utf-8"
)

// ObjectStore uploads checklists and signs download links.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// GroceryService turns saved plans and recipes into grocery lists
type GroceryService struct {
	plans      IMealPlanService
	recipes    IRecipeService
	shopping   IShoppingListService
	aggregator *grocery.Aggregator
	cache      Cache
	store      ObjectStore
	metrics    *metrics.Metrics
	logger     *zap.Logger
	group      singleflight.Group
	now        func() time.Time
}

// GroceryServiceConfig wires the optional collaborators. A nil Cache
// disables caching and a nil Store disables export.
type GroceryServiceConfig struct {
	Aggregator *grocery.Aggregator
	Cache      Cache
	Store      ObjectStore
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

func NewGroceryService(plans IMealPlanService, recipes IRecipeService, shopping IShoppingListService, cfg GroceryServiceConfig) *GroceryService {
	aggregator := cfg.Aggregator
	if aggregator == nil {
		aggregator = grocery.NewAggregator(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroceryService{
		plans:      plans,
		recipes:    recipes,
		shopping:   shopping,
		aggregator: aggregator,
		cache:      cfg.Cache,
		store:      cfg.Store,
		metrics:    cfg.Metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// GroceryCacheKey identifies one revision of a plan. Any edit moves
// updated_at and therefore the key.
func GroceryCacheKey(plan *model.MealPlan) string {
	return fmt.Sprintf("grocery:list:%s:%d", plan.ID, plan.UpdatedAt.UnixNano())
}

// MealPlanGroceryList returns the plan's stored list when it has one,
// otherwise the aggregated list for the plan's current revision.
func (s *GroceryService) MealPlanGroceryList(ctx context.Context, userID, planID uuid.UUID) (grocery.List, error) {
	plan, err := s.plans.GetMealPlan(ctx, userID, planID)
	if err != nil {
		return grocery.List{}, err
	}
	if plan.GroceryList != nil {
		return plan.GroceryList.List, nil
	}
	return s.aggregateCached(ctx, GroceryCacheKey(plan), plan.PlanData.MealPlan)
}

func (s *GroceryService) MealPlanChecklist(ctx context.Context, userID, planID uuid.UUID) (string, error) {
	list, err := s.MealPlanGroceryList(ctx, userID, planID)
	if err != nil {
		return "", err
	}
	return grocery.RenderChecklist(list), nil
}

// RecipeGroceryList aggregates a single recipe as a one-meal plan.
func (s *GroceryService) RecipeGroceryList(ctx context.Context, userID, recipeID uuid.UUID) (grocery.List, error) {
	recipe, err := s.recipes.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return grocery.List{}, err
	}
	plan := grocery.MealPlan{Days: []grocery.Day{{
		Day: recipe.Title,
		Meals: grocery.MealSlots{grocery.SlotDinner: {
			Name:        recipe.Title,
			Servings:    recipe.Servings,
			Ingredients: recipe.Ingredients,
		}},
	}}}
	return s.aggregate(plan), nil
}

// ExportChecklist uploads the plan's checklist and returns a short-lived
// download link.
func (s *GroceryService) ExportChecklist(ctx context.Context, userID, planID uuid.UUID) (*types.ExportResponse, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	checklist, err := s.MealPlanChecklist(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("grocery-lists/%s/%s.txt", userID, planID)
	if err := s.store.PutObject(ctx, key, checklistMediaType, []byte(checklist)); err != nil {
		s.metrics.ExportOutcome("failed")
		return nil, fmt.Errorf("failed to export checklist: %w", err)
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, exportURLLifetime)
	if err != nil {
		s.metrics.ExportOutcome("failed")
		return nil, fmt.Errorf("failed to sign checklist URL: %w", err)
	}

	s.metrics.ExportOutcome("uploaded")
	s.logger.Info("grocery checklist exported",
		zap.String("meal_plan_id", planID.String()),
		zap.String("key", key),
	)
	return &types.ExportResponse{
		Key:       key,
		URL:       url,
		ExpiresAt: s.now().Add(exportURLLifetime).UTC(),
	}, nil
}

// AddToShoppingList pushes every grocery item of the plan into the user's
// current shopping list.
func (s *GroceryService) AddToShoppingList(ctx context.Context, userID, planID uuid.UUID) (*types.AddItemsResult, error) {
	list, err := s.MealPlanGroceryList(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	flat := list.Flatten()
	items := make([]types.ShoppingListItemInput, 0, len(flat))
	for _, item := range flat {
		items = append(items, types.ShoppingListItemInput{
			Item:     item.Item,
			Amount:   item.Amount,
			Category: item.Category,
		})
	}

	return s.shopping.AddItems(ctx, userID, &types.AddItemsRequest{
		Items:      items,
		SourceID:   planID.String(),
		SourceType: model.SourceMealPlan,
	})
}

// aggregateCached serves key from the cache, computing and storing it on a
// miss. Concurrent misses for the same key share one computation. Cache
// failures are logged and never fail the request.
func (s *GroceryService) aggregateCached(ctx context.Context, key string, plan grocery.MealPlan) (grocery.List, error) {
	if s.cache == nil {
		return s.aggregate(plan), nil
	}

	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("grocery cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var list grocery.List
		if err := json.Unmarshal(data, &list); err == nil {
			s.metrics.CacheResult(true)
			return list, nil
		}
		s.logger.Warn("discarding corrupt grocery cache entry", zap.String("key", key))
	}
	s.metrics.CacheResult(false)

	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		list := s.aggregate(plan)
		data, err := json.Marshal(list)
		if err == nil {
			err = s.cache.Set(context.WithoutCancel(ctx), key, data, groceryCacheTTL)
		}
		if err != nil {
			s.logger.Warn("grocery cache write failed", zap.String("key", key), zap.Error(err))
		}
		return list, nil
	})
	return v.(grocery.List), nil
}

func (s *GroceryService) aggregate(plan grocery.MealPlan) grocery.List {
	start := time.Now()
	list := s.aggregator.Aggregate(plan)
	s.metrics.ObserveAggregation(time.Since(start), list.ItemCount())
	return list
}
