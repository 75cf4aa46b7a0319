package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsnap/backend/config"
)

// captureHTTPClient records the last request instead of sending it.
type captureHTTPClient struct {
	requests []*http.Request
}

func (c *captureHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.requests = append(c.requests, req)
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func newCaptureStorageService(capture *captureHTTPClient) *StorageService {
	client := s3.New(s3.Options{
		Region:      "us-east-1",
		Credentials: aws.AnonymousCredentials{},
		HTTPClient:  capture,
	})
	return NewStorageService(&config.S3Config{
		Client:          client,
		ImageBucket:     "meal-images",
		ThumbnailBucket: "meal-thumbnails",
	})
}

func TestUploadRefusesOverwrite(t *testing.T) {
	capture := &captureHTTPClient{}
	svc := newCaptureStorageService(capture)
	ctx := context.Background()
	userID, mealID := uuid.New(), uuid.New()

	imageURL, err := svc.UploadImage(ctx, []byte("image-bytes"), userID, mealID)
	require.NoError(t, err)
	thumbnailURL, err := svc.UploadThumbnail(ctx, []byte("thumb-bytes"), userID, mealID)
	require.NoError(t, err)

	require.Len(t, capture.requests, 2)
	for _, req := range capture.requests {
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "*", req.Header.Get("If-None-Match"))
		assert.Equal(t, "image/jpeg", req.Header.Get("Content-Type"))
	}

	assert.Contains(t, imageURL, "meal-images")
	assert.Contains(t, imageURL, userID.String()+"/"+mealID.String()+"/")
	assert.Contains(t, thumbnailURL, "meal-thumbnails")
	assert.True(t, strings.HasSuffix(thumbnailURL, "_thumb.jpg"))
}

func TestKeyFromURL(t *testing.T) {
	key, err := keyFromURL("https://meal-images.s3.amazonaws.com/5f6e/9a2b/1736951234567.jpg")
	require.NoError(t, err)
	assert.Equal(t, "5f6e/9a2b/1736951234567.jpg", key)

	key, err = keyFromURL("https://meal-thumbnails.s3.amazonaws.com/5f6e/9a2b/1736951234567_thumb.jpg")
	require.NoError(t, err)
	assert.Equal(t, "5f6e/9a2b/1736951234567_thumb.jpg", key)

	_, err = keyFromURL("https://example.com/shallow.jpg")
	assert.Error(t, err)

	_, err = keyFromURL("://not a url")
	assert.Error(t, err)
}
