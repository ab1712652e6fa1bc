package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/api"
	"github.com/pageza/mealwise/backend/internal/metrics"
	"github.com/pageza/mealwise/backend/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	MealPlans      *api.MealPlanHandler
	Grocery        *api.GroceryHandler
	ShoppingLists  *api.ShoppingListHandler
	ScheduledMeals *api.ScheduledMealHandler
	Recipes        *api.RecipeHandler
	Profile        *api.ProfileHandler
	Health         *api.HealthHandler
}

// Options carries the cross-cutting pieces of the router.
type Options struct {
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	Auth           middleware.TokenValidator
	ExportLimiter  *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(opts.Logger))
	router.Use(middleware.RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	router.Use(middleware.CORS(opts.AllowedOrigins))

	router.GET("/health", h.Health.Health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/spices", h.Profile.ListSpices)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(opts.Auth))
	{
		plans := protected.Group("/meal-plans")
		{
			plans.GET("", h.MealPlans.ListMealPlans)
			plans.POST("", h.MealPlans.CreateMealPlan)
			plans.GET("/:id", h.MealPlans.GetMealPlan)
			plans.PUT("/:id", h.MealPlans.UpdateMealPlan)
			plans.DELETE("/:id", h.MealPlans.DeleteMealPlan)

			plans.GET("/:id/grocery-list", h.Grocery.MealPlanGroceryList)
			plans.GET("/:id/grocery-list.txt", h.Grocery.MealPlanChecklist)
			plans.POST("/:id/grocery-list/shopping-list", h.Grocery.AddToShoppingList)
			export := []gin.HandlerFunc{h.Grocery.ExportChecklist}
			if opts.ExportLimiter != nil {
				export = append([]gin.HandlerFunc{opts.ExportLimiter.RateLimitMiddleware()}, export...)
			}
			plans.POST("/:id/grocery-list/export", export...)
		}

		lists := protected.Group("/shopping-lists")
		{
			lists.GET("", h.ShoppingLists.ListShoppingLists)
			lists.POST("", h.ShoppingLists.CreateShoppingList)
			lists.POST("/add-items", h.ShoppingLists.AddItems)
			lists.PATCH("/:id", h.ShoppingLists.UpdateShoppingList)
			lists.DELETE("/:id", h.ShoppingLists.DeleteShoppingList)
		}

		calendar := protected.Group("/scheduled-meals")
		{
			calendar.GET("", h.ScheduledMeals.ListScheduledMeals)
			calendar.POST("", h.ScheduledMeals.ScheduleMeal)
			calendar.PATCH("/:id", h.ScheduledMeals.UpdateScheduledMeal)
			calendar.DELETE("/:id", h.ScheduledMeals.DeleteScheduledMeal)
		}

		recipes := protected.Group("/recipes")
		{
			recipes.GET("", h.Recipes.ListRecipes)
			recipes.POST("", h.Recipes.CreateRecipe)
			recipes.GET("/:id", h.Recipes.GetRecipe)
			recipes.PATCH("/:id", h.Recipes.UpdateRecipe)
			recipes.DELETE("/:id", h.Recipes.DeleteRecipe)
			recipes.GET("/:id/grocery-list", h.Grocery.RecipeGroceryList)
		}

		protected.GET("/diet-profile", h.Profile.GetDietProfile)
		protected.POST("/diet-profile", h.Profile.SaveDietProfile)
	}

	return router
}
