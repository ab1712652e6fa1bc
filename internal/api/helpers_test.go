package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/api"
	"github.com/pageza/mealwise/backend/internal/router"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *fakeStore) PutObject(_ context.Context, key, _ string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	return nil
}

func (s *fakeStore) GeneratePresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.example.test/" + key, nil
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	store  *fakeStore
	userID uuid.UUID
	token  string
}

// setupTestRouter mounts the real router over an in-memory database.
// withStore toggles checklist export.
func setupTestRouter(t *testing.T, withStore bool) *testEnv {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	log := zap.NewNop()

	plans := service.NewMealPlanService(db, log)
	recipes := service.NewRecipeService(db, log)
	lists := service.NewShoppingListService(db, log)

	env := &testEnv{db: db, userID: uuid.New()}
	env.token = testhelpers.IssueToken(t, testhelpers.TestJWTSecret, env.userID)

	cfg := service.GroceryServiceConfig{Logger: log}
	if withStore {
		env.store = &fakeStore{objects: map[string][]byte{}}
		cfg.Store = env.store
	}
	grocery := service.NewGroceryService(plans, recipes, lists, cfg)

	env.router = router.SetupRouter(router.Handlers{
		MealPlans:      api.NewMealPlanHandler(plans, log),
		Grocery:        api.NewGroceryHandler(grocery, log),
		ShoppingLists:  api.NewShoppingListHandler(lists, log),
		ScheduledMeals: api.NewScheduledMealHandler(service.NewScheduledMealService(db, log), log),
		Recipes:        api.NewRecipeHandler(recipes, log),
		Profile:        api.NewProfileHandler(service.NewDietProfileService(db), service.NewSpiceService(db, log), log),
		Health:         api.NewHealthHandler(db, nil),
	}, router.Options{
		Logger:         log,
		AllowedOrigins: []string{"http://localhost:5173"},
		Auth:           service.NewAuthService(testhelpers.TestJWTSecret),
	})
	return env
}

// do sends an authenticated request. A string body is sent verbatim,
// anything else is JSON encoded.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return e.doAs(t, e.token, method, path, body)
}

func (e *testEnv) doAs(t *testing.T, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

const planJSON = `{
	"title": "Week one",
	"plan_data": {
		"days": [
			{"day": "Monday", "meals": {"dinner": {"name": "Grilled", "ingredients": [
				{"item": "Chicken Breast", "amount": "8 oz"},
				{"item": "rice", "amount": "1 cup"}
			]}}},
			{"day": "Tuesday", "meals": [
				{"meal_type": "lunch", "name": "Salad", "ingredients": [{"item": "lettuce", "amount": "1 head"}]},
				{"meal_type": "dinner", "name": "Stir fry", "ingredients": [{"item": "chicken breast", "amount": "8 oz"}]}
			]}
		]
	}
}`

// createPlan saves planJSON and returns the new plan id.
func (e *testEnv) createPlan(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/meal-plans", planJSON)
	requireStatus(t, w, http.StatusCreated)
	resp := decode[struct {
		MealPlan struct {
			ID string `json:"id"`
		} `json:"meal_plan"`
	}](t, w)
	return resp.MealPlan.ID
}
