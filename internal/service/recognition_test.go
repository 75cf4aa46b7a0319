package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsnap/backend/config"
)

func newTestRecognitionService(url string) *RecognitionService {
	return NewRecognitionService(&config.Config{
		RecognitionAPIKey: "test-key",
		RecognitionAPIURL: url,
		RecognitionModel:  "test-model",
		RequestTimeout:    5 * time.Second,
	})
}

func chatCompletion(content string) string {
	resp := map[string]interface{}{
		"model": "test-model-v1",
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

const appleContent = `{
  "foods": [
    {
      "name": "Apple",
      "quantity": 1,
      "unit": "piece",
      "nutrition": {
        "calories": 95,
        "protein_g": 0.5,
        "carbs_g": 25,
        "fat_g": 0.3,
        "fiber_g": 4.4,
        "sugar_g": 19
      },
      "confidence": 0.9
    }
  ]
}`

func TestAnalyzeFoodImage(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, chatCompletion(appleContent))
	}))
	defer server.Close()

	svc := newTestRecognitionService(server.URL)
	result, err := svc.AnalyzeFoodImage(context.Background(), "aW1hZ2U=")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotBody.Model)
	assert.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.InDelta(t, 0.3, gotBody.Temperature, 0.001)
	assert.Equal(t, 2000, gotBody.MaxTokens)

	require.Len(t, result.Foods, 1)
	assert.Equal(t, "Apple", result.Foods[0].Name)
	assert.InDelta(t, 95, result.TotalNutrition.Calories, 0.001)
	assert.InDelta(t, 0.9, result.Confidence, 0.001)
	assert.Equal(t, "test-model-v1", result.ModelVersion)
	assert.GreaterOrEqual(t, result.ProcessingTimeMs, int64(0))
}

func TestAnalyzeFoodImageJSONInProse(t *testing.T) {
	content := "Here is the analysis you asked for:\n```json\n" + appleContent + "\n```\nLet me know if you need more."
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatCompletion(content))
	}))
	defer server.Close()

	svc := newTestRecognitionService(server.URL)
	result, err := svc.AnalyzeFoodImage(context.Background(), "aW1hZ2U=")
	require.NoError(t, err)

	require.Len(t, result.Foods, 1)
	assert.Equal(t, "Apple", result.Foods[0].Name)
}

func TestAnalyzeFoodImageServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestRecognitionService(server.URL)
	_, err := svc.AnalyzeFoodImage(context.Background(), "aW1hZ2U=")
	assert.ErrorIs(t, err, ErrRecognitionTransport)
}

func TestAnalyzeFoodImageConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := newTestRecognitionService(server.URL)
	_, err := svc.AnalyzeFoodImage(context.Background(), "aW1hZ2U=")
	assert.ErrorIs(t, err, ErrRecognitionTransport)
}

func TestAnalyzeFoodImageNoJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatCompletion("I cannot identify any structured data in this image."))
	}))
	defer server.Close()

	svc := newTestRecognitionService(server.URL)
	_, err := svc.AnalyzeFoodImage(context.Background(), "aW1hZ2U=")
	assert.ErrorIs(t, err, ErrRecognitionParse)
}

func TestAnalyzeFoodImageEmptyFoods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatCompletion(`{"foods": []}`))
	}))
	defer server.Close()

	svc := newTestRecognitionService(server.URL)
	_, err := svc.AnalyzeFoodImage(context.Background(), "aW1hZ2U=")
	assert.ErrorIs(t, err, ErrEmptyFoodList)
}

func TestParseAnalysisContent(t *testing.T) {
	t.Run("defaults missing confidence", func(t *testing.T) {
		result, err := parseAnalysisContent(`{"foods": [{"name": "Rice", "quantity": 1, "unit": "cup"}]}`)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, result.Foods[0].Confidence, 0.001)
		assert.Zero(t, result.Foods[0].Nutrition.Calories)
	})

	t.Run("keeps explicit zero confidence", func(t *testing.T) {
		result, err := parseAnalysisContent(`{"foods": [{"name": "Rice", "confidence": 0}]}`)
		require.NoError(t, err)
		assert.Zero(t, result.Foods[0].Confidence)
	})

	t.Run("rejects nameless food", func(t *testing.T) {
		_, err := parseAnalysisContent(`{"foods": [{"quantity": 1}]}`)
		assert.ErrorIs(t, err, ErrRecognitionParse)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := parseAnalysisContent(`{"foods": [{"name": "Rice", "confidence": }]}`)
		assert.ErrorIs(t, err, ErrRecognitionParse)
	})

	t.Run("is deterministic", func(t *testing.T) {
		first, err := parseAnalysisContent(appleContent)
		require.NoError(t, err)
		second, err := parseAnalysisContent(appleContent)
		require.NoError(t, err)
		assert.Equal(t, first.Foods, second.Foods)
		assert.Equal(t, first.TotalNutrition, second.TotalNutrition)
	})
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "object in prose",
			input: "Sure! {\"a\": 1} Hope that helps.",
			want:  `{"a": 1}`,
		},
		{
			name:  "nested objects",
			input: `{"a": {"b": {"c": 2}}}`,
			want:  `{"a": {"b": {"c": 2}}}`,
		},
		{
			name:  "braces inside strings",
			input: `{"note": "uses { and } freely"}`,
			want:  `{"note": "uses { and } freely"}`,
		},
		{
			name:  "escaped quotes inside strings",
			input: `{"note": "a \"quoted\" word"}`,
			want:  `{"note": "a \"quoted\" word"}`,
		},
		{
			name:    "no object at all",
			input:   "there is nothing structured here",
			wantErr: true,
		},
		{
			name:    "unbalanced object",
			input:   `{"a": 1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrRecognitionParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
