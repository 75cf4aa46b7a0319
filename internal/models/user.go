package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	FullName     string         `gorm:"size:100" json:"full_name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	AvatarURL    string         `gorm:"size:255" json:"avatar_url,omitempty"`
}

// UserGoal holds a user's daily nutrition targets and body metrics.
type UserGoal struct {
	ID                uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DailyCalorieGoal  float64   `gorm:"type:float" json:"daily_calorie_goal"`
	DailyProteinGoalG float64   `gorm:"type:float" json:"daily_protein_goal_g"`
	DailyCarbsGoalG   float64   `gorm:"type:float" json:"daily_carbs_goal_g"`
	DailyFatGoalG     float64   `gorm:"type:float" json:"daily_fat_goal_g"`
	WeightKg          float64   `gorm:"type:float" json:"weight_kg,omitempty"`
	HeightCm          float64   `gorm:"type:float" json:"height_cm,omitempty"`
	Age               int       `json:"age,omitempty"`
	Gender            string    `gorm:"size:10" json:"gender,omitempty"`
	ActivityLevel     string    `gorm:"size:20" json:"activity_level,omitempty"`
	GoalType          string    `gorm:"size:20" json:"goal_type,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
