package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mealsnap/backend/config"
	"github.com/mealsnap/backend/internal/api"
	"github.com/mealsnap/backend/internal/middleware"
	"github.com/mealsnap/backend/internal/router"
	"github.com/mealsnap/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

// NewServer wires services and handlers together and builds the route table.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	mealService := service.NewMealService(db)
	summaryService := service.NewSummaryService(db, redisClient)
	storageService := service.NewStorageService(s3Config)
	analysisService := service.NewAnalysisService(
		service.NewImageProcessorService(cfg),
		storageService,
		service.NewRecognitionService(cfg),
		mealService,
		summaryService,
	)

	engine := router.SetupRouter(router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Meal:    api.NewMealHandler(analysisService, mealService, storageService),
		Goal:    api.NewGoalHandler(summaryService),
		Summary: api.NewSummaryHandler(summaryService),

		TokenValidator:      authService,
		AnalysisRateLimiter: middleware.NewAnalysisRateLimiter(redisClient),
	}, cfg.AllowedOrigins)

	return &Server{
		engine: engine,
		cfg:    cfg,
	}
}

// Start runs the server until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
