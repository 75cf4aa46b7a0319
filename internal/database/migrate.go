package database

import (
	"gorm.io/gorm"

	"github.com/mealsnap/backend/internal/models"
)

// RunMigrations brings the schema up to date. GORM auto-migration works for
// both Postgres and the SQLite databases the tests use.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserGoal{},
		&models.Meal{},
		&models.FoodItem{},
		&models.DailySummary{},
		&models.AppAnalytics{},
	)
}
