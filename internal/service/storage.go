package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mealsnap/backend/config"
)

// StorageService uploads processed meal images to S3 and maps public URLs
// back to object keys for deletion.
type StorageService struct {
	s3Config *config.S3Config
}

// NewStorageService creates a new StorageService instance
func NewStorageService(s3Config *config.S3Config) *StorageService {
	return &StorageService{s3Config: s3Config}
}

// UploadImage uploads the full-size image under
// {userID}/{mealID}/{timestamp}.jpg and returns its public URL.
func (s *StorageService) UploadImage(ctx context.Context, data []byte, userID, mealID uuid.UUID) (string, error) {
	key := fmt.Sprintf("%s/%s/%d.jpg", userID, mealID, time.Now().UnixMilli())
	return s.upload(ctx, s.s3Config.ImageBucket, key, data)
}

// UploadThumbnail uploads the thumbnail variant under
// {userID}/{mealID}/{timestamp}_thumb.jpg and returns its public URL.
func (s *StorageService) UploadThumbnail(ctx context.Context, data []byte, userID, mealID uuid.UUID) (string, error) {
	key := fmt.Sprintf("%s/%s/%d_thumb.jpg", userID, mealID, time.Now().UnixMilli())
	return s.upload(ctx, s.s3Config.ThumbnailBucket, key, data)
}

func (s *StorageService) upload(ctx context.Context, bucket, key string, data []byte) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
		// The timestamp in the key makes collisions practically impossible;
		// refuse to overwrite if one happens anyway.
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
	log.Printf("[StorageService] Uploaded %s", publicURL)

	return publicURL, nil
}

// DeleteImage removes a previously uploaded full-size image given its public URL.
func (s *StorageService) DeleteImage(ctx context.Context, imageURL string) error {
	return s.delete(ctx, s.s3Config.ImageBucket, imageURL)
}

// DeleteThumbnail removes a previously uploaded thumbnail given its public URL.
func (s *StorageService) DeleteThumbnail(ctx context.Context, thumbnailURL string) error {
	return s.delete(ctx, s.s3Config.ThumbnailBucket, thumbnailURL)
}

func (s *StorageService) delete(ctx context.Context, bucket, objectURL string) error {
	key, err := keyFromURL(objectURL)
	if err != nil {
		return err
	}

	_, err = s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

// keyFromURL reverses the URL-to-key mapping. Keys are always the last three
// path segments: userID/mealID/filename.jpg.
func keyFromURL(objectURL string) (string, error) {
	parsed, err := url.Parse(objectURL)
	if err != nil {
		return "", fmt.Errorf("invalid object URL %q: %w", objectURL, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 3 {
		return "", fmt.Errorf("object URL %q has no storage key", objectURL)
	}

	return strings.Join(segments[len(segments)-3:], "/"), nil
}
