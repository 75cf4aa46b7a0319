package models

import (
	"time"

	"github.com/google/uuid"
)

// DailySummary is a per-user, per-day rollup of meal totals.
type DailySummary struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index:idx_summary_user_date,unique" json:"user_id"`
	Date          string    `gorm:"size:10;not null;index:idx_summary_user_date,unique" json:"date"`
	TotalCalories float64   `gorm:"type:float" json:"total_calories"`
	TotalProteinG float64   `gorm:"type:float" json:"total_protein_g"`
	TotalCarbsG   float64   `gorm:"type:float" json:"total_carbs_g"`
	TotalFatG     float64   `gorm:"type:float" json:"total_fat_g"`
	TotalFiberG   float64   `gorm:"type:float" json:"total_fiber_g"`
	TotalSugarG   float64   `gorm:"type:float" json:"total_sugar_g"`
	MealCount     int       `json:"meal_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AppAnalytics records a best-effort application event. Failures to insert
// are logged and ignored.
type AppAnalytics struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	EventType string     `gorm:"size:100;not null" json:"event_type"`
	EventData JSONBMap   `gorm:"type:jsonb" json:"event_data,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
