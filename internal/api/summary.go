package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mealsnap/backend/internal/service"
)

type SummaryHandler struct {
	summaries service.ISummaryService
}

func NewSummaryHandler(summaries service.ISummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// GetDailySummary returns the rollup for one date. Defaults to today (UTC)
// when no date is given.
func (h *SummaryHandler) GetDailySummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	date := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	summary, err := h.summaries.GetDailySummary(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch summary"})
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no meals logged for this date"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetSummaryRange returns rollups for an inclusive date range, defaulting to
// the last seven days.
func (h *SummaryHandler) GetSummaryRange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	now := time.Now().UTC()
	endDate := c.DefaultQuery("end_date", now.Format("2006-01-02"))
	startDate := c.DefaultQuery("start_date", now.AddDate(0, 0, -6).Format("2006-01-02"))

	for _, date := range []string{startDate, endDate} {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
			return
		}
	}

	summaries, err := h.summaries.GetDailySummaries(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch summaries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}
