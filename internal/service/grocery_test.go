package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/grocery"
	"github.com/pageza/mealwise/backend/internal/metrics"
	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/types"
)

type memoryCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	sets     int
	getErr   error
	setDelay time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	data, ok := c.data[key]
	return data, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	time.Sleep(c.setDelay)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = value
	return nil
}

func (c *memoryCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *mockObjectStore) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

type groceryFixture struct {
	plans    *MealPlanService
	recipes  *RecipeService
	shopping *ShoppingListService
	svc      *GroceryService
	cache    *memoryCache
	store    *mockObjectStore
	metrics  *metrics.Metrics
}

func newGroceryFixture(t *testing.T) *groceryFixture {
	t.Helper()
	_, plans, recipes, shopping := newServices(t)
	f := &groceryFixture{
		plans:    plans,
		recipes:  recipes,
		shopping: shopping,
		cache:    newMemoryCache(),
		store:    &mockObjectStore{},
		metrics:  metrics.New(),
	}
	f.svc = NewGroceryService(plans, recipes, shopping, GroceryServiceConfig{
		Cache:   f.cache,
		Store:   f.store,
		Metrics: f.metrics,
		Logger:  zap.NewNop(),
	})
	return f
}

func TestMealPlanGroceryListAggregates(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	plan := createPlan(t, f.plans, userID)

	list, err := f.svc.MealPlanGroceryList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)

	assert.Equal(t, grocery.Aggregate(twoDayPlan().MealPlan), list)
	require.Len(t, list.Categories, 3)
	assert.Equal(t, "Grains & Bread", list.Categories[0].Name)
	assert.Equal(t, "Produce", list.Categories[1].Name)
	assert.Equal(t, []grocery.Item{{Item: "Chicken breast", Amount: "16 oz", Category: "Proteins"}}, list.Categories[2].Items)
}

func TestMealPlanGroceryListPrefersStoredList(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	stored := grocery.List{Categories: []grocery.Category{{
		Name:  "Other",
		Items: []grocery.Item{{Item: "Saffron", Amount: "1 pinch", Category: "Other"}},
	}}}
	plan, err := f.plans.CreateMealPlan(ctxT(t), userID, &types.CreateMealPlanRequest{
		Title:       "Stored",
		PlanData:    twoDayPlan(),
		GroceryList: &stored,
	})
	require.NoError(t, err)

	list, err := f.svc.MealPlanGroceryList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, list)
	assert.Zero(t, f.cache.setCount())
}

func TestMealPlanGroceryListNotFound(t *testing.T) {
	f := newGroceryFixture(t)

	_, err := f.svc.MealPlanGroceryList(ctxT(t), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrMealPlanNotFound)
}

func TestMealPlanGroceryListCaching(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	plan := createPlan(t, f.plans, userID)

	first, err := f.svc.MealPlanGroceryList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)
	second, err := f.svc.MealPlanGroceryList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.cache.setCount())
	series, err := testutil.GatherAndCount(f.metrics.Registry(), "grocery_cache_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series, "one miss series and one hit series")
}

func TestMealPlanGroceryListCacheKeyFollowsEdits(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	plan := createPlan(t, f.plans, userID)

	_, err := f.svc.MealPlanGroceryList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)

	data := twoDayPlan()
	data.Days = data.Days[:1]
	time.Sleep(2 * time.Millisecond)
	_, err = f.plans.UpdateMealPlan(ctxT(t), userID, plan.ID, &types.UpdateMealPlanRequest{PlanData: &data})
	require.NoError(t, err)

	list, err := f.svc.MealPlanGroceryList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "8 oz", list.Flatten()[len(list.Flatten())-1].Amount)
	assert.Equal(t, 2, f.cache.setCount())
}

func TestMealPlanGroceryListIgnoresCacheFailures(t *testing.T) {
	f := newGroceryFixture(t)
	f.cache.getErr = errors.New("connection refused")
	userID := uuid.New()
	plan := createPlan(t, f.plans, userID)

	list, err := f.svc.MealPlanGroceryList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, list.ItemCount())
}

func TestMealPlanGroceryListCorruptCacheEntry(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	plan := createPlan(t, f.plans, userID)
	f.cache.data[GroceryCacheKey(plan)] = []byte("not json")

	list, err := f.svc.MealPlanGroceryList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, list.ItemCount())

	var cached grocery.List
	require.NoError(t, json.Unmarshal(f.cache.data[GroceryCacheKey(plan)], &cached))
	assert.Equal(t, list, cached)
}

func TestAggregateCachedSharesConcurrentMisses(t *testing.T) {
	f := newGroceryFixture(t)
	f.cache.setDelay = 50 * time.Millisecond
	plan := twoDayPlan().MealPlan

	const callers = 8
	var wg sync.WaitGroup
	results := make([]grocery.List, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			list, err := f.svc.aggregateCached(context.Background(), "grocery:list:shared", plan)
			assert.NoError(t, err)
			results[i] = list
		}(i)
	}
	wg.Wait()

	for _, list := range results {
		assert.Equal(t, results[0], list)
	}
	assert.Less(t, f.cache.setCount(), callers)
}

func TestRecipeGroceryList(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	recipe := createRecipe(t, f.recipes, userID)

	list, err := f.svc.RecipeGroceryList(ctxT(t), userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, list.ItemCount())

	_, err = f.svc.RecipeGroceryList(ctxT(t), uuid.New(), recipe.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestMealPlanChecklist(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	plan := createPlan(t, f.plans, userID)

	text, err := f.svc.MealPlanChecklist(ctxT(t), userID, plan.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "PROTEINS\n")
	assert.Contains(t, text, "[ ] 16 oz Chicken breast\n")
}

func TestExportChecklist(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	plan := createPlan(t, f.plans, userID)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }
	key := "grocery-lists/" + userID.String() + "/" + plan.ID.String() + ".txt"

	f.store.On("PutObject", mock.Anything, key, "text/plain; charset=utf-8", mock.MatchedBy(func(body []byte) bool {
		return len(body) > 0
	})).Return(nil)
	f.store.On("GeneratePresignedURL", mock.Anything, key, 15*time.Minute).Return("https://example.test/list", nil)

	resp, err := f.svc.ExportChecklist(ctxT(t), userID, plan.ID)
	require.NoError(t, err)

	assert.Equal(t, key, resp.Key)
	assert.Equal(t, "https://example.test/list", resp.URL)
	assert.Equal(t, now.Add(15*time.Minute), resp.ExpiresAt)
	f.store.AssertExpectations(t)
}

func TestExportChecklistUploadFailure(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	plan := createPlan(t, f.plans, userID)
	f.store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("access denied"))

	_, err := f.svc.ExportChecklist(ctxT(t), userID, plan.ID)
	require.Error(t, err)
	f.store.AssertNotCalled(t, "GeneratePresignedURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportChecklistDisabled(t *testing.T) {
	_, plans, recipes, shopping := newServices(t)
	svc := NewGroceryService(plans, recipes, shopping, GroceryServiceConfig{})

	_, err := svc.ExportChecklist(ctxT(t), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrExportDisabled)
}

func TestAddToShoppingList(t *testing.T) {
	f := newGroceryFixture(t)
	userID := uuid.New()
	plan := createPlan(t, f.plans, userID)

	result, err := f.svc.AddToShoppingList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Added)
	for _, item := range result.List.Items {
		assert.Equal(t, model.SourceMealPlan, item.SourceType)
		assert.Equal(t, plan.ID.String(), item.SourceID)
	}

	again, err := f.svc.AddToShoppingList(ctxT(t), userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Added)
	assert.Equal(t, 3, again.Skipped)
}
