package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/mealsnap/backend/config"
)

const analysisSystemPrompt = `You are a nutrition expert AI. Analyze food images and provide detailed nutrition information.

For each food item detected in the image, provide:
1. Food name
2. Estimated quantity and unit (e.g., "1 cup", "150g", "1 piece")
3. Nutrition information per item:
   - Calories (kcal)
   - Protein (g)
   - Carbohydrates (g)
   - Fat (g)
   - Fiber (g, if applicable)
   - Sugar (g, if applicable)
4. Confidence score (0-1)

Respond ONLY with valid JSON in this exact format:
{
  "foods": [
    {
      "name": "Food name",
      "quantity": 1,
      "unit": "cup",
      "nutrition": {
        "calories": 200,
        "protein_g": 10,
        "carbs_g": 30,
        "fat_g": 5,
        "fiber_g": 3,
        "sugar_g": 5
      },
      "confidence": 0.85
    }
  ]
}

Be as accurate as possible with portion sizes and nutrition values. Use USDA nutrition database standards.`

const analysisUserInstruction = "Analyze this food image and provide detailed nutrition information."

// AnalysisResult is the parsed recognition response. It is not persisted as
// its own row; the orchestrator stores it as an opaque blob on the meal.
type AnalysisResult struct {
	Foods            []DetectedFood `json:"foods"`
	TotalNutrition   NutritionInfo  `json:"total_nutrition"`
	Confidence       float64        `json:"confidence"`
	ProcessingTimeMs int64          `json:"processing_time_ms"`
	ModelVersion     string         `json:"model_version"`
}

// RecognitionService submits meal photos to a hosted multimodal
// chat-completions endpoint and parses the reply into a typed food list.
type RecognitionService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewRecognitionService creates a new RecognitionService instance
func NewRecognitionService(cfg *config.Config) *RecognitionService {
	return &RecognitionService{
		apiKey: cfg.RecognitionAPIKey,
		apiURL: cfg.RecognitionAPIURL,
		model:  cfg.RecognitionModel,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type imageURLPart struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type imageURL struct {
	URL string `json:"url"`
}

type textPart struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeFoodImage submits a base64-encoded JPEG and returns the structured
// analysis. A single non-streaming call; failures are terminal, never retried.
func (s *RecognitionService) AnalyzeFoodImage(ctx context.Context, imageBase64 string) (*AnalysisResult, error) {
	startTime := time.Now()

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: analysisSystemPrompt,
			},
			{
				Role: "user",
				Content: []interface{}{
					imageURLPart{
						Type:     "image_url",
						ImageURL: imageURL{URL: "data:image/jpeg;base64," + imageBase64},
					},
					textPart{
						Type:    "text",
						Content: analysisUserInstruction,
					},
				},
			},
		},
		// Low temperature biases the model toward deterministic structured
		// output; the reply still arrives as free text.
		Temperature: 0.3,
		MaxTokens:   2000,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecognitionTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrRecognitionTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[RecognitionService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", ErrRecognitionTransport, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", ErrRecognitionParse, err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty completion content", ErrRecognitionParse)
	}

	result, err := parseAnalysisContent(chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	result.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	result.ModelVersion = chatResp.Model
	if result.ModelVersion == "" {
		result.ModelVersion = s.model
	}

	return result, nil
}

// parsedFood mirrors the JSON contract the prompt demands. Confidence is a
// pointer so an absent field can be told apart from an explicit zero.
type parsedFood struct {
	Name       string         `json:"name"`
	Quantity   float64        `json:"quantity"`
	Unit       string         `json:"unit"`
	Nutrition  *NutritionInfo `json:"nutrition"`
	Confidence *float64       `json:"confidence"`
}

// parseAnalysisContent extracts the first balanced JSON object from the model
// reply, decodes it, and validates the food list. Both stages fail with a
// distinguishable parse error.
func parseAnalysisContent(content string) (*AnalysisResult, error) {
	candidate, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Foods []parsedFood `json:"foods"`
	}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecognitionParse, err)
	}

	if len(parsed.Foods) == 0 {
		return nil, fmt.Errorf("%w", ErrEmptyFoodList)
	}

	foods := make([]DetectedFood, 0, len(parsed.Foods))
	for i, food := range parsed.Foods {
		if food.Name == "" {
			return nil, fmt.Errorf("%w: food %d has no name", ErrRecognitionParse, i)
		}

		detected := DetectedFood{
			Name:       food.Name,
			Quantity:   food.Quantity,
			Unit:       food.Unit,
			Confidence: 0.5,
		}
		if food.Nutrition != nil {
			// Absent sub-fields have already defaulted to zero in decoding.
			detected.Nutrition = *food.Nutrition
		}
		if food.Confidence != nil {
			detected.Confidence = *food.Confidence
		}
		foods = append(foods, detected)
	}

	total, confidence := AggregateNutrition(foods)

	return &AnalysisResult{
		Foods:          foods,
		TotalNutrition: total,
		Confidence:     confidence,
	}, nil
}

// extractJSONObject returns the first balanced {...} span in s, accounting
// for nesting and for braces inside JSON string literals.
func extractJSONObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("%w: no JSON object found in response", ErrRecognitionParse)
}
