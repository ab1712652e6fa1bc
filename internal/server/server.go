package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/api"
	"github.com/pageza/mealwise/backend/internal/database"
	"github.com/pageza/mealwise/backend/internal/grocery"
	"github.com/pageza/mealwise/backend/internal/metrics"
	"github.com/pageza/mealwise/backend/internal/middleware"
	"github.com/pageza/mealwise/backend/internal/router"
	"github.com/pageza/mealwise/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg     *config.Config
	router  *gin.Engine
	http    *http.Server
	db      *gorm.DB
	redis   *redis.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Dependencies are the external resources a Server runs on. Redis and Store
// are optional.
type Dependencies struct {
	DB    *gorm.DB
	Redis *redis.Client
	Store service.ObjectStore
}

// Bootstrap connects to everything cfg describes, migrates the schema and
// builds the server.
func Bootstrap(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, cfg.MigrationsDir, log); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	deps := Dependencies{DB: db}

	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			log.Warn("redis unavailable, grocery caching and rate limiting disabled", zap.Error(err))
		} else {
			deps.Redis = client
		}
	}

	if cfg.ExportEnabled() {
		store, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			if deps.Redis != nil {
				deps.Redis.Close()
			}
			closeDB(db)
			return nil, err
		}
		deps.Store = store
		log.Info("checklist export enabled", zap.String("bucket", cfg.S3BucketName))
	}

	return New(cfg, deps, log)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// New wires services, handlers and routes on top of deps.
func New(cfg *config.Config, deps Dependencies, log *zap.Logger) (*Server, error) {
	categories, err := loadCategories(cfg.CategoriesFile)
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	plans := service.NewMealPlanService(deps.DB, log)
	recipes := service.NewRecipeService(deps.DB, log)
	lists := service.NewShoppingListService(deps.DB, log)
	groceries := service.NewGroceryService(plans, recipes, lists, service.GroceryServiceConfig{
		Aggregator: grocery.NewAggregator(categories),
		Cache:      service.NewRedisCache(deps.Redis),
		Store:      deps.Store,
		Metrics:    m,
		Logger:     log,
	})

	handlers := router.Handlers{
		MealPlans:      api.NewMealPlanHandler(plans, log),
		Grocery:        api.NewGroceryHandler(groceries, log),
		ShoppingLists:  api.NewShoppingListHandler(lists, log),
		ScheduledMeals: api.NewScheduledMealHandler(service.NewScheduledMealService(deps.DB, log), log),
		Recipes:        api.NewRecipeHandler(recipes, log),
		Profile:        api.NewProfileHandler(service.NewDietProfileService(deps.DB), service.NewSpiceService(deps.DB, log), log),
		Health:         api.NewHealthHandler(deps.DB, deps.Redis),
	}

	r := router.SetupRouter(handlers, router.Options{
		Logger:         log,
		Metrics:        m,
		AllowedOrigins: cfg.AllowedOrigins,
		Auth:           service.NewAuthService(cfg.JWTSecret),
		ExportLimiter:  middleware.NewExportRateLimiter(deps.Redis, cfg.ExportRateLimit, log),
	})

	return &Server{
		cfg:     cfg,
		router:  r,
		db:      deps.DB,
		redis:   deps.Redis,
		logger:  log,
		metrics: m,
	}, nil
}

// loadCategories reads a YAML category table, or returns nil for the
// built-in table when path is empty.
func loadCategories(path string) (grocery.CategoryTable, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open category table: %w", err)
	}
	defer f.Close()

	table, err := grocery.ParseCategoryTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load category table %s: %w", path, err)
	}
	return table, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              net.JoinHostPort(s.cfg.ServerHost, s.cfg.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and releases
// the database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}
	return errors.Join(errs...)
}
