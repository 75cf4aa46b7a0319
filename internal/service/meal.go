package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsnap/backend/internal/models"
)

// ErrMealNotFound is returned for reads of missing or soft-deleted meals.
var ErrMealNotFound = errors.New("meal not found")

// MealService handles meal and food item persistence
type MealService struct {
	db *gorm.DB
}

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// CreateMeal inserts a new meal row. The orchestrator calls this before any
// analysis result exists, so the row starts without URLs or totals.
func (s *MealService) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	if meal.ProcessingStatus == "" {
		meal.ProcessingStatus = models.StatusPending
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, fmt.Errorf("%w: create meal: %v", ErrPersistence, err)
	}
	return meal, nil
}

// GetMeal retrieves a meal by id, scoped to its owner. Soft-deleted rows are
// not visible.
func (s *MealService) GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).First(&meal, "id = ? AND user_id = ?", mealID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, fmt.Errorf("%w: get meal: %v", ErrPersistence, err)
	}
	return &meal, nil
}

// ListMeals returns the owner's meals, newest first.
func (s *MealService) ListMeals(ctx context.Context, userID uuid.UUID, limit int) ([]models.Meal, error) {
	if limit <= 0 {
		limit = 50
	}

	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list meals: %v", ErrPersistence, err)
	}
	return meals, nil
}

// UpdateMeal applies the given column updates to a meal row and returns the
// refreshed record.
func (s *MealService) UpdateMeal(ctx context.Context, userID, mealID uuid.UUID, updates map[string]interface{}) (*models.Meal, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Meal{}).
		Where("id = ? AND user_id = ?", mealID, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: update meal: %v", ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrMealNotFound
	}
	return s.GetMeal(ctx, userID, mealID)
}

// DeleteMeal soft-deletes a meal. The row and its food items stay in the
// database; reads simply stop returning them.
func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Meal{}, "id = ?", mealID)
	if result.Error != nil {
		return fmt.Errorf("%w: delete meal: %v", ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMealNotFound
	}
	return nil
}

// CreateFoodItems batch-inserts the detected foods for a meal. Items are
// immutable once written.
func (s *MealService) CreateFoodItems(ctx context.Context, items []models.FoodItem) ([]models.FoodItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: create food items: %v", ErrPersistence, err)
	}
	return items, nil
}

// GetFoodItems returns a meal's food items in insertion order.
func (s *MealService) GetFoodItems(ctx context.Context, mealID uuid.UUID) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := s.db.WithContext(ctx).
		Where("meal_id = ?", mealID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("%w: get food items: %v", ErrPersistence, err)
	}
	return items, nil
}

// LogEvent records an analytics event. Best effort: failures are logged and
// swallowed so analytics never breaks a request.
func (s *MealService) LogEvent(ctx context.Context, userID *uuid.UUID, eventType string, eventData models.JSONBMap) {
	event := models.AppAnalytics{
		ID:        uuid.New(),
		UserID:    userID,
		EventType: eventType,
		EventData: eventData,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		log.Printf("[MealService] Failed to log analytics event %s: %v", eventType, err)
	}
}
