package types

// RegisterRequest is the request body for user registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

// LoginRequest is the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a signed token back to the client
type AuthResponse struct {
	Token string `json:"token"`
}

// UpdateMealRequest is the request body for editing a meal's metadata.
// Nutrition totals are owned by the analysis pipeline and are not editable.
type UpdateMealRequest struct {
	MealType string `json:"meal_type"`
	Notes    string `json:"notes"`
}

// UpsertGoalRequest is the request body for creating or replacing the
// caller's daily nutrition goals.
type UpsertGoalRequest struct {
	DailyCalorieGoal  float64 `json:"daily_calorie_goal" binding:"required,gt=0"`
	DailyProteinGoalG float64 `json:"daily_protein_goal_g"`
	DailyCarbsGoalG   float64 `json:"daily_carbs_goal_g"`
	DailyFatGoalG     float64 `json:"daily_fat_goal_g"`
	WeightKg          float64 `json:"weight_kg"`
	HeightCm          float64 `json:"height_cm"`
	Age               int     `json:"age"`
	Gender            string  `json:"gender"`
	ActivityLevel     string  `json:"activity_level"`
	GoalType          string  `json:"goal_type"`
}
