package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/service"
	"github.com/mealsnap/backend/internal/testhelpers"
)

func TestUpsertUserGoal(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewSummaryService(db, nil)
	ctx := context.Background()
	userID := uuid.New()

	none, err := svc.GetUserGoal(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := svc.UpsertUserGoal(ctx, &models.UserGoal{
		UserID:           userID,
		DailyCalorieGoal: 2000,
		GoalType:         "maintain",
	})
	require.NoError(t, err)

	// Second upsert replaces, it must not create a second row.
	_, err = svc.UpsertUserGoal(ctx, &models.UserGoal{
		UserID:           userID,
		DailyCalorieGoal: 1800,
		GoalType:         "lose",
	})
	require.NoError(t, err)

	got, err := svc.GetUserGoal(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.InDelta(t, 1800, got.DailyCalorieGoal, 1e-9)
	assert.Equal(t, "lose", got.GoalType)

	var count int64
	require.NoError(t, db.Model(&models.UserGoal{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestApplyMealAccumulates(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewSummaryService(db, nil)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	mealA := &models.Meal{
		ID:            uuid.New(),
		UserID:        userID,
		CreatedAt:     now,
		TotalCalories: 455,
		TotalProteinG: 50.3,
	}
	mealB := &models.Meal{
		ID:            uuid.New(),
		UserID:        userID,
		CreatedAt:     now,
		TotalCalories: 300,
		TotalFatG:     12,
	}

	require.NoError(t, svc.ApplyMeal(ctx, mealA))
	require.NoError(t, svc.ApplyMeal(ctx, mealB))

	summary, err := svc.GetDailySummary(ctx, userID, now.Format("2006-01-02"))
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.MealCount)
	assert.InDelta(t, 755, summary.TotalCalories, 1e-9)
	assert.InDelta(t, 50.3, summary.TotalProteinG, 1e-9)
	assert.InDelta(t, 12, summary.TotalFatG, 1e-9)

	// Both applies must land on the same row through the unique user/date
	// index, not race past each other into a duplicate.
	var count int64
	require.NoError(t, db.Model(&models.DailySummary{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestApplyMealConcurrent(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewSummaryService(db, nil)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	var g errgroup.Group
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			return svc.ApplyMeal(ctx, &models.Meal{
				ID:            uuid.New(),
				UserID:        userID,
				CreatedAt:     now,
				TotalCalories: 100,
			})
		})
	}
	require.NoError(t, g.Wait())

	summary, err := svc.GetDailySummary(ctx, userID, now.Format("2006-01-02"))
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 4, summary.MealCount)
	assert.InDelta(t, 400, summary.TotalCalories, 1e-9)
}

func TestGetDailySummaryMissingDate(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewSummaryService(db, nil)

	summary, err := svc.GetDailySummary(context.Background(), uuid.New(), "2026-01-01")
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestGetDailySummariesRange(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewSummaryService(db, nil)
	ctx := context.Background()
	userID := uuid.New()

	for i, date := range []string{"2026-08-28", "2026-08-29", "2026-08-30"} {
		day, err := time.Parse("2006-01-02", date)
		require.NoError(t, err)
		require.NoError(t, svc.ApplyMeal(ctx, &models.Meal{
			ID:            uuid.New(),
			UserID:        userID,
			CreatedAt:     day.Add(12 * time.Hour),
			TotalCalories: float64(100 * (i + 1)),
		}))
	}

	summaries, err := svc.GetDailySummaries(ctx, userID, "2026-08-29", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	// Newest first.
	assert.Equal(t, "2026-08-30", summaries[0].Date)
	assert.Equal(t, "2026-08-29", summaries[1].Date)
}
