package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mealsnap/backend/internal/models"
)

// AnalysisState identifies where a running analysis currently is. The pipeline
// only ever moves forward; any error jumps straight to StateFailed.
type AnalysisState string

const (
	StateIdle               AnalysisState = "idle"
	StateValidatingUser     AnalysisState = "validating-user"
	StateResizingImage      AnalysisState = "resizing-image"
	StateCreatingThumbnail  AnalysisState = "creating-thumbnail"
	StateCreatingMealRecord AnalysisState = "creating-meal-record"
	StateUploadingImages    AnalysisState = "uploading-images"
	StateEncodingImage      AnalysisState = "encoding-base64"
	StateCallingRecognition AnalysisState = "calling-recognition"
	StateCreatingFoodItems  AnalysisState = "creating-food-items"
	StateUpdatingMealRecord AnalysisState = "updating-meal-record"
	StateDone               AnalysisState = "done"
	StateFailed             AnalysisState = "failed"
)

func (s AnalysisState) String() string {
	return string(s)
}

// Progress maps a state to the percentage shown while that state runs. It is
// a pure function of the state; encoding and the recognition call share one
// checkpoint because they form a single network round trip from the caller's
// point of view.
func (s AnalysisState) Progress() int {
	switch s {
	case StateResizingImage:
		return 10
	case StateCreatingThumbnail:
		return 20
	case StateCreatingMealRecord:
		return 30
	case StateUploadingImages:
		return 40
	case StateEncodingImage, StateCallingRecognition:
		return 60
	case StateCreatingFoodItems:
		return 80
	case StateUpdatingMealRecord:
		return 90
	case StateDone:
		return 100
	default:
		return 0
	}
}

// ProgressFunc receives state transitions during an analysis. May be nil.
type ProgressFunc func(state AnalysisState, percent int)

// AnalysisService orchestrates the meal analysis pipeline: resize, upload,
// recognize, persist. Collaborators are injected as interfaces so each stage
// can be mocked independently.
type AnalysisService struct {
	processor  IImageProcessor
	storage    IStorageService
	recognizer IRecognitionService
	meals      IMealService
	summaries  ISummaryService
}

// NewAnalysisService creates a new AnalysisService instance
func NewAnalysisService(
	processor IImageProcessor,
	storage IStorageService,
	recognizer IRecognitionService,
	meals IMealService,
	summaries ISummaryService,
) *AnalysisService {
	return &AnalysisService{
		processor:  processor,
		storage:    storage,
		recognizer: recognizer,
		meals:      meals,
		summaries:  summaries,
	}
}

// AnalyzeMeal runs the full pipeline for one photo and returns the completed
// meal. The meal row is created in status processing before the uploads start;
// if a later stage fails the row is left as-is and the error is returned. No
// rollback and no retry.
func (s *AnalysisService) AnalyzeMeal(ctx context.Context, userID uuid.UUID, image []byte, report ProgressFunc) (*models.Meal, error) {
	advance := func(state AnalysisState) {
		if report != nil {
			report(state, state.Progress())
		}
	}

	fail := func(state AnalysisState, err error) (*models.Meal, error) {
		if report != nil {
			report(StateFailed, StateFailed.Progress())
		}
		log.Printf("[AnalysisService] Pipeline failed at %s: %v", state, err)
		return nil, err
	}

	startTime := time.Now()

	advance(StateValidatingUser)
	if userID == uuid.Nil {
		return fail(StateValidatingUser, ErrNotAuthenticated)
	}

	advance(StateResizingImage)
	processed, err := s.processor.ProcessImage(image)
	if err != nil {
		return fail(StateResizingImage, err)
	}

	advance(StateCreatingThumbnail)
	thumbnail, err := s.processor.CreateThumbnail(image)
	if err != nil {
		return fail(StateCreatingThumbnail, err)
	}

	advance(StateCreatingMealRecord)
	meal, err := s.meals.CreateMeal(ctx, &models.Meal{
		UserID:           userID,
		ProcessingStatus: models.StatusProcessing,
	})
	if err != nil {
		return fail(StateCreatingMealRecord, err)
	}

	// Both uploads run concurrently; the first error cancels the other.
	advance(StateUploadingImages)
	var imageURL, thumbnailURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		imageURL, err = s.storage.UploadImage(gctx, processed.Data, userID, meal.ID)
		return err
	})
	g.Go(func() error {
		var err error
		thumbnailURL, err = s.storage.UploadThumbnail(gctx, thumbnail.Data, userID, meal.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fail(StateUploadingImages, err)
	}

	advance(StateEncodingImage)
	imageBase64 := base64.StdEncoding.EncodeToString(processed.Data)

	advance(StateCallingRecognition)
	analysis, err := s.recognizer.AnalyzeFoodImage(ctx, imageBase64)
	if err != nil {
		return fail(StateCallingRecognition, err)
	}

	advance(StateCreatingFoodItems)
	items := make([]models.FoodItem, 0, len(analysis.Foods))
	for _, food := range analysis.Foods {
		items = append(items, models.FoodItem{
			MealID:          meal.ID,
			FoodName:        food.Name,
			Quantity:        food.Quantity,
			Unit:            food.Unit,
			Calories:        food.Nutrition.Calories,
			ProteinG:        food.Nutrition.ProteinG,
			CarbsG:          food.Nutrition.CarbsG,
			FatG:            food.Nutrition.FatG,
			FiberG:          food.Nutrition.FiberG,
			SugarG:          food.Nutrition.SugarG,
			ConfidenceScore: food.Confidence,
		})
	}
	if _, err := s.meals.CreateFoodItems(ctx, items); err != nil {
		return fail(StateCreatingFoodItems, err)
	}

	advance(StateUpdatingMealRecord)
	meal, err = s.meals.UpdateMeal(ctx, userID, meal.ID, map[string]interface{}{
		"image_url":         imageURL,
		"thumbnail_url":     thumbnailURL,
		"total_calories":    analysis.TotalNutrition.Calories,
		"total_protein_g":   analysis.TotalNutrition.ProteinG,
		"total_carbs_g":     analysis.TotalNutrition.CarbsG,
		"total_fat_g":       analysis.TotalNutrition.FatG,
		"total_fiber_g":     analysis.TotalNutrition.FiberG,
		"total_sugar_g":     analysis.TotalNutrition.SugarG,
		"confidence_score":  analysis.Confidence,
		"ai_analysis":       analysisBlob(analysis),
		"processing_status": models.StatusCompleted,
	})
	if err != nil {
		return fail(StateUpdatingMealRecord, err)
	}

	// Rollup and analytics are best effort; the meal itself is already
	// committed.
	if err := s.summaries.ApplyMeal(ctx, meal); err != nil {
		log.Printf("[AnalysisService] Failed to apply meal %s to daily summary: %v", meal.ID, err)
	}
	s.meals.LogEvent(ctx, &userID, "meal_analyzed", models.JSONBMap{
		"meal_id":     meal.ID.String(),
		"food_count":  len(analysis.Foods),
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	advance(StateDone)
	log.Printf("[AnalysisService] Meal %s analyzed: %d foods, %.0f kcal", meal.ID, len(analysis.Foods), meal.TotalCalories)

	return meal, nil
}

// analysisBlob converts the recognition result into the JSONB column shape.
func analysisBlob(analysis *AnalysisResult) models.JSONBMap {
	data, err := json.Marshal(analysis)
	if err != nil {
		return models.JSONBMap{"error": fmt.Sprintf("marshal analysis: %v", err)}
	}
	var blob models.JSONBMap
	if err := json.Unmarshal(data, &blob); err != nil {
		return models.JSONBMap{"error": fmt.Sprintf("remarshal analysis: %v", err)}
	}
	return blob
}
