package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealsnap/backend/internal/service"
	"github.com/mealsnap/backend/internal/types"
)

type MealHandler struct {
	analysis service.IAnalysisService
	meals    service.IMealService
	storage  service.IStorageService
}

func NewMealHandler(analysis service.IAnalysisService, meals service.IMealService, storage service.IStorageService) *MealHandler {
	return &MealHandler{
		analysis: analysis,
		meals:    meals,
		storage:  storage,
	}
}

// currentUserID pulls the authenticated user's id out of the gin context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// AnalyzeMeal accepts a photo as multipart form data and runs the full
// analysis pipeline synchronously. The response carries the completed meal
// and its detected foods.
func (h *MealHandler) AnalyzeMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open image"})
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(io.LimitReader(file, service.MaxSourceImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	meal, err := h.analysis.AnalyzeMeal(c.Request.Context(), userID, image, nil)
	if err != nil {
		status := analysisErrorStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	items, err := h.meals.GetFoodItems(c.Request.Context(), meal.ID)
	if err != nil {
		// The meal is committed; return it even if the item read failed.
		log.Printf("[MealHandler] Failed to load food items for %s: %v", meal.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"meal":       meal,
		"food_items": items,
	})
}

// analysisErrorStatus maps pipeline errors onto HTTP status codes.
func analysisErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrImageProcessing):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEmptyFoodList):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrRecognitionTransport),
		errors.Is(err, service.ErrRecognitionParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	meals, err := h.meals.ListMeals(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.meals.GetMeal(c.Request.Context(), userID, mealID)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal"})
		return
	}

	items, err := h.meals.GetFoodItems(c.Request.Context(), meal.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal":       meal,
		"food_items": items,
	})
}

func (h *MealHandler) GetFoodItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	// Ownership check before exposing items.
	if _, err := h.meals.GetMeal(c.Request.Context(), userID, mealID); err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal"})
		return
	}

	items, err := h.meals.GetFoodItems(c.Request.Context(), mealID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"food_items": items})
}

// UpdateMeal edits user-owned metadata. Nutrition totals stay read-only;
// only the pipeline writes them.
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var req types.UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.MealType != "" {
		updates["meal_type"] = req.MealType
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	meal, err := h.meals.UpdateMeal(c.Request.Context(), userID, mealID, updates)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meal"})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// DeleteMeal soft-deletes a meal and removes its stored images. Object
// deletions are best effort: an orphaned object is cheaper than a meal that
// cannot be deleted.
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.meals.GetMeal(c.Request.Context(), userID, mealID)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch meal"})
		return
	}

	if err := h.meals.DeleteMeal(c.Request.Context(), userID, mealID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal"})
		return
	}

	if meal.ImageURL != "" {
		if err := h.storage.DeleteImage(c.Request.Context(), meal.ImageURL); err != nil {
			log.Printf("[MealHandler] Failed to delete image for %s: %v", mealID, err)
		}
	}
	if meal.ThumbnailURL != "" {
		if err := h.storage.DeleteThumbnail(c.Request.Context(), meal.ThumbnailURL); err != nil {
			log.Printf("[MealHandler] Failed to delete thumbnail for %s: %v", mealID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}
