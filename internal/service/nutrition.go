package service

// NutritionInfo is the six-field nutrition tuple used both per detected food
// and as meal totals.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`
}

// Add returns the field-wise sum of two nutrition tuples.
func (n NutritionInfo) Add(other NutritionInfo) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories + other.Calories,
		ProteinG: n.ProteinG + other.ProteinG,
		CarbsG:   n.CarbsG + other.CarbsG,
		FatG:     n.FatG + other.FatG,
		FiberG:   n.FiberG + other.FiberG,
		SugarG:   n.SugarG + other.SugarG,
	}
}

// DetectedFood is one food identified by the recognition model.
type DetectedFood struct {
	Name       string        `json:"name"`
	Quantity   float64       `json:"quantity,omitempty"`
	Unit       string        `json:"unit,omitempty"`
	Nutrition  NutritionInfo `json:"nutrition"`
	Confidence float64       `json:"confidence"`
}

// AggregateNutrition reduces a food list to one totals tuple and one overall
// confidence score (arithmetic mean of per-food confidences).
//
// For an empty list the totals are zero and the confidence is NaN (0/0);
// callers are expected to reject empty lists before aggregating.
func AggregateNutrition(foods []DetectedFood) (NutritionInfo, float64) {
	var total NutritionInfo
	var confidenceSum float64
	for _, food := range foods {
		total = total.Add(food.Nutrition)
		confidenceSum += food.Confidence
	}
	return total, confidenceSum / float64(len(foods))
}
