package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsnap/backend/internal/models"
)

// IImageProcessor defines the interface for image resize/compress operations
type IImageProcessor interface {
	ProcessImage(src []byte) (*ProcessedImage, error)
	CreateThumbnail(src []byte) (*ProcessedImage, error)
}

// IStorageService defines the interface for object store operations
type IStorageService interface {
	UploadImage(ctx context.Context, data []byte, userID, mealID uuid.UUID) (string, error)
	UploadThumbnail(ctx context.Context, data []byte, userID, mealID uuid.UUID) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
	DeleteThumbnail(ctx context.Context, thumbnailURL string) error
}

// IRecognitionService defines the interface for the food recognition model
type IRecognitionService interface {
	AnalyzeFoodImage(ctx context.Context, imageBase64 string) (*AnalysisResult, error)
}

// IMealService defines the interface for meal persistence operations
type IMealService interface {
	CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error)
	ListMeals(ctx context.Context, userID uuid.UUID, limit int) ([]models.Meal, error)
	UpdateMeal(ctx context.Context, userID, mealID uuid.UUID, updates map[string]interface{}) (*models.Meal, error)
	DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error
	CreateFoodItems(ctx context.Context, items []models.FoodItem) ([]models.FoodItem, error)
	GetFoodItems(ctx context.Context, mealID uuid.UUID) ([]models.FoodItem, error)
	LogEvent(ctx context.Context, userID *uuid.UUID, eventType string, eventData models.JSONBMap)
}

// ISummaryService defines the interface for goal and daily rollup operations
type ISummaryService interface {
	GetUserGoal(ctx context.Context, userID uuid.UUID) (*models.UserGoal, error)
	UpsertUserGoal(ctx context.Context, goal *models.UserGoal) (*models.UserGoal, error)
	GetDailySummary(ctx context.Context, userID uuid.UUID, date string) (*models.DailySummary, error)
	GetDailySummaries(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]models.DailySummary, error)
	ApplyMeal(ctx context.Context, meal *models.Meal) error
}

// IAnalysisService defines the interface for the meal analysis pipeline
type IAnalysisService interface {
	AnalyzeMeal(ctx context.Context, userID uuid.UUID, image []byte, report ProgressFunc) (*models.Meal, error)
}
