package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/service"
)

// MockImageProcessor is a mock implementation of service.IImageProcessor
type MockImageProcessor struct {
	mock.Mock
}

func (m *MockImageProcessor) ProcessImage(src []byte) (*service.ProcessedImage, error) {
	args := m.Called(src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessedImage), args.Error(1)
}

func (m *MockImageProcessor) CreateThumbnail(src []byte) (*service.ProcessedImage, error) {
	args := m.Called(src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessedImage), args.Error(1)
}

// MockStorageService is a mock implementation of service.IStorageService
type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) UploadImage(ctx context.Context, data []byte, userID, mealID uuid.UUID) (string, error) {
	args := m.Called(ctx, data, userID, mealID)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) UploadThumbnail(ctx context.Context, data []byte, userID, mealID uuid.UUID) (string, error) {
	args := m.Called(ctx, data, userID, mealID)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) DeleteImage(ctx context.Context, imageURL string) error {
	args := m.Called(ctx, imageURL)
	return args.Error(0)
}

func (m *MockStorageService) DeleteThumbnail(ctx context.Context, thumbnailURL string) error {
	args := m.Called(ctx, thumbnailURL)
	return args.Error(0)
}

// MockRecognitionService is a mock implementation of service.IRecognitionService
type MockRecognitionService struct {
	mock.Mock
}

func (m *MockRecognitionService) AnalyzeFoodImage(ctx context.Context, imageBase64 string) (*service.AnalysisResult, error) {
	args := m.Called(ctx, imageBase64)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalysisResult), args.Error(1)
}

// MockAnalysisService is a mock implementation of service.IAnalysisService
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) AnalyzeMeal(ctx context.Context, userID uuid.UUID, image []byte, report service.ProgressFunc) (*models.Meal, error) {
	args := m.Called(ctx, userID, image, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

// MockSummaryService is a mock implementation of service.ISummaryService
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) GetUserGoal(ctx context.Context, userID uuid.UUID) (*models.UserGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserGoal), args.Error(1)
}

func (m *MockSummaryService) UpsertUserGoal(ctx context.Context, goal *models.UserGoal) (*models.UserGoal, error) {
	args := m.Called(ctx, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserGoal), args.Error(1)
}

func (m *MockSummaryService) GetDailySummary(ctx context.Context, userID uuid.UUID, date string) (*models.DailySummary, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailySummary), args.Error(1)
}

func (m *MockSummaryService) GetDailySummaries(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]models.DailySummary, error) {
	args := m.Called(ctx, userID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailySummary), args.Error(1)
}

func (m *MockSummaryService) ApplyMeal(ctx context.Context, meal *models.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}
