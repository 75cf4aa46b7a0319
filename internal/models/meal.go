package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Processing status values for a meal's analysis lifecycle.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// JSONBMap is a custom type for handling arbitrary JSON objects in JSONB
type JSONBMap map[string]interface{}

// Value implements the driver.Valuer interface
func (m JSONBMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONBMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Meal is one photographed eating event with aggregated nutrition totals.
// It is created in 'processing' status before any analysis result exists and
// updated exactly once with final totals and URLs. Rows are soft-deleted.
type Meal struct {
	ID               uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	ImageURL         string         `gorm:"size:255" json:"image_url"`
	ThumbnailURL     string         `gorm:"size:255" json:"thumbnail_url"`
	TotalCalories    float64        `gorm:"type:float" json:"total_calories"`
	TotalProteinG    float64        `gorm:"type:float" json:"total_protein_g"`
	TotalCarbsG      float64        `gorm:"type:float" json:"total_carbs_g"`
	TotalFatG        float64        `gorm:"type:float" json:"total_fat_g"`
	TotalFiberG      float64        `gorm:"type:float" json:"total_fiber_g"`
	TotalSugarG      float64        `gorm:"type:float" json:"total_sugar_g"`
	MealType         string         `gorm:"size:20" json:"meal_type,omitempty"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	ConfidenceScore  float64        `gorm:"type:float" json:"confidence_score"`
	ProcessingStatus string         `gorm:"size:20;not null;default:'pending'" json:"processing_status"`
	ProcessingError  string         `gorm:"type:text" json:"processing_error,omitempty"`
	AIAnalysis       JSONBMap       `gorm:"type:jsonb" json:"ai_analysis,omitempty"`
}

// FoodItem is one detected food within a meal. Items are batch-inserted after
// recognition and never mutated afterwards.
type FoodItem struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	MealID          uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_id"`
	FoodName        string    `gorm:"size:255;not null" json:"food_name"`
	Quantity        float64   `gorm:"type:float" json:"quantity,omitempty"`
	Unit            string    `gorm:"size:50" json:"unit,omitempty"`
	Calories        float64   `gorm:"type:float" json:"calories"`
	ProteinG        float64   `gorm:"type:float" json:"protein_g"`
	CarbsG          float64   `gorm:"type:float" json:"carbs_g"`
	FatG            float64   `gorm:"type:float" json:"fat_g"`
	FiberG          float64   `gorm:"type:float" json:"fiber_g"`
	SugarG          float64   `gorm:"type:float" json:"sugar_g"`
	ConfidenceScore float64   `gorm:"type:float" json:"confidence_score"`
	CreatedAt       time.Time `json:"created_at"`
}
