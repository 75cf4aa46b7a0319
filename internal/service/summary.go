package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mealsnap/backend/internal/models"
)

const summaryCacheTTL = 5 * time.Minute

// SummaryService handles user goals and daily nutrition rollups. Summaries
// for past dates are read-mostly, so they are cached in Redis.
type SummaryService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewSummaryService creates a new SummaryService instance. The Redis client
// may be nil; caching is then skipped.
func NewSummaryService(db *gorm.DB, redisClient *redis.Client) *SummaryService {
	return &SummaryService{
		db:    db,
		redis: redisClient,
	}
}

// GetUserGoal returns the user's goal row, or nil when none has been set.
func (s *SummaryService) GetUserGoal(ctx context.Context, userID uuid.UUID) (*models.UserGoal, error) {
	var goal models.UserGoal
	err := s.db.WithContext(ctx).First(&goal, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get user goal: %v", ErrPersistence, err)
	}
	return &goal, nil
}

// UpsertUserGoal creates or replaces the user's goal row.
func (s *SummaryService) UpsertUserGoal(ctx context.Context, goal *models.UserGoal) (*models.UserGoal, error) {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(goal).Error
	if err != nil {
		return nil, fmt.Errorf("%w: upsert user goal: %v", ErrPersistence, err)
	}
	return goal, nil
}

// GetDailySummary returns the rollup for one date (YYYY-MM-DD), or nil when
// no meals were logged that day.
func (s *SummaryService) GetDailySummary(ctx context.Context, userID uuid.UUID, date string) (*models.DailySummary, error) {
	cacheKey := fmt.Sprintf("daily_summary:%s:%s", userID, date)

	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached models.DailySummary
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var summary models.DailySummary
	err := s.db.WithContext(ctx).First(&summary, "user_id = ? AND date = ?", userID, date).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get daily summary: %v", ErrPersistence, err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(&summary); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, summaryCacheTTL).Err(); err != nil {
				log.Printf("[SummaryService] Failed to cache summary %s: %v", cacheKey, err)
			}
		}
	}

	return &summary, nil
}

// GetDailySummaries returns rollups for an inclusive date range, newest first.
func (s *SummaryService) GetDailySummaries(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]models.DailySummary, error) {
	var summaries []models.DailySummary
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate).
		Order("date DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: get daily summaries: %v", ErrPersistence, err)
	}
	return summaries, nil
}

// ApplyMeal folds a completed meal into its day's rollup and invalidates the
// cached entry. Called best-effort after an analysis completes. The upsert
// increments columns in place so concurrent analyses for the same day never
// lose an update.
func (s *SummaryService) ApplyMeal(ctx context.Context, meal *models.Meal) error {
	date := meal.CreatedAt.UTC().Format("2006-01-02")

	summary := models.DailySummary{
		ID:            uuid.New(),
		UserID:        meal.UserID,
		Date:          date,
		TotalCalories: meal.TotalCalories,
		TotalProteinG: meal.TotalProteinG,
		TotalCarbsG:   meal.TotalCarbsG,
		TotalFatG:     meal.TotalFatG,
		TotalFiberG:   meal.TotalFiberG,
		TotalSugarG:   meal.TotalSugarG,
		MealCount:     1,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_calories":  gorm.Expr("total_calories + ?", meal.TotalCalories),
				"total_protein_g": gorm.Expr("total_protein_g + ?", meal.TotalProteinG),
				"total_carbs_g":   gorm.Expr("total_carbs_g + ?", meal.TotalCarbsG),
				"total_fat_g":     gorm.Expr("total_fat_g + ?", meal.TotalFatG),
				"total_fiber_g":   gorm.Expr("total_fiber_g + ?", meal.TotalFiberG),
				"total_sugar_g":   gorm.Expr("total_sugar_g + ?", meal.TotalSugarG),
				"meal_count":      gorm.Expr("meal_count + 1"),
				"updated_at":      time.Now(),
			}),
		}).
		Create(&summary).Error
	if err != nil {
		return fmt.Errorf("%w: apply meal to daily summary: %v", ErrPersistence, err)
	}

	if s.redis != nil {
		cacheKey := fmt.Sprintf("daily_summary:%s:%s", meal.UserID, date)
		if err := s.redis.Del(ctx, cacheKey).Err(); err != nil {
			log.Printf("[SummaryService] Failed to invalidate %s: %v", cacheKey, err)
		}
	}

	return nil
}
