package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mealsnap/backend/internal/api"
	"github.com/mealsnap/backend/internal/middleware"
)

// Handlers bundles everything SetupRouter needs to register routes.
type Handlers struct {
	Auth    *api.AuthHandler
	Meal    *api.MealHandler
	Goal    *api.GoalHandler
	Summary *api.SummaryHandler

	TokenValidator      middleware.TokenValidator
	AnalysisRateLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(h.TokenValidator))
	{
		meals := protected.Group("/meals")
		{
			// Analysis costs an upstream model call per request.
			meals.POST("/analyze", h.AnalysisRateLimiter.RateLimitMiddleware(), h.Meal.AnalyzeMeal)
			meals.GET("", h.Meal.ListMeals)
			meals.GET("/:id", h.Meal.GetMeal)
			meals.GET("/:id/items", h.Meal.GetFoodItems)
			meals.PATCH("/:id", h.Meal.UpdateMeal)
			meals.DELETE("/:id", h.Meal.DeleteMeal)
		}

		goals := protected.Group("/goals")
		{
			goals.GET("", h.Goal.GetGoal)
			goals.PUT("", h.Goal.UpsertGoal)
		}

		summaries := protected.Group("/summaries")
		{
			summaries.GET("/daily", h.Summary.GetDailySummary)
			summaries.GET("", h.Summary.GetSummaryRange)
		}
	}

	return router
}
