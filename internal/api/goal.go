package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/service"
	"github.com/mealsnap/backend/internal/types"
)

type GoalHandler struct {
	summaries service.ISummaryService
}

func NewGoalHandler(summaries service.ISummaryService) *GoalHandler {
	return &GoalHandler{summaries: summaries}
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	goal, err := h.summaries.GetUserGoal(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch goal"})
		return
	}
	if goal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no goal set"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) UpsertGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpsertGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.summaries.UpsertUserGoal(c.Request.Context(), &models.UserGoal{
		UserID:            userID,
		DailyCalorieGoal:  req.DailyCalorieGoal,
		DailyProteinGoalG: req.DailyProteinGoalG,
		DailyCarbsGoalG:   req.DailyCarbsGoalG,
		DailyFatGoalG:     req.DailyFatGoalG,
		WeightKg:          req.WeightKg,
		HeightCm:          req.HeightCm,
		Age:               req.Age,
		Gender:            req.Gender,
		ActivityLevel:     req.ActivityLevel,
		GoalType:          req.GoalType,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save goal"})
		return
	}

	c.JSON(http.StatusOK, goal)
}
