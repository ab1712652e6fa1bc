package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:      "localhost",
		ServerPort:      "0",
		DBDriver:        "sqlite",
		JWTSecret:       testhelpers.TestJWTSecret,
		AllowedOrigins:  []string{"http://localhost:5173"},
		ExportRateLimit: 5,
	}
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLite(t)

	server, err := New(testConfig(), Dependencies{DB: db}, zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok","redis":"disabled"}`, w.Body.String())
}

func TestNewWithCategoryFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- keyword: kale\n  category: Greens\n"), 0o600))

	cfg := testConfig()
	cfg.CategoriesFile = path
	_, err := New(cfg, Dependencies{DB: testhelpers.SetupSQLite(t)}, zap.NewNop())
	assert.NoError(t, err)

	cfg.CategoriesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(cfg, Dependencies{DB: testhelpers.SetupSQLite(t)}, zap.NewNop())
	assert.Error(t, err)
}

func TestBootstrapSQLite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.SQLitePath = "file:" + filepath.Join(t.TempDir(), "bootstrap.db")

	server, err := Bootstrap(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { server.Shutdown(context.Background()) })

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/spices", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
