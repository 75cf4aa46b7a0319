package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mealsnap/backend/internal/types"
)

// stubTokenValidator maps fixed token strings to claims.
type stubTokenValidator struct {
	tokens map[string]*types.TokenClaims
}

func newStubTokenValidator() *stubTokenValidator {
	return &stubTokenValidator{tokens: map[string]*types.TokenClaims{}}
}

func (v *stubTokenValidator) allow(token string, userID uuid.UUID) {
	v.tokens[token] = &types.TokenClaims{UserID: userID}
}

func (v *stubTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	claims, ok := v.tokens[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// PerformRequest executes an HTTP request against the router and returns the
// recorder.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// multipartImageRequest builds a multipart POST with one image file field.
func multipartImageRequest(t *testing.T, path string, image []byte, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "meal.jpg")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
