package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the configuration is complete enough to start
// the server. Secrets are required everywhere; sane defaults cover the rest.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD is required")
	}
	if cfg.RecognitionAPIKey == "" {
		errors = append(errors, "RECOGNITION_API_KEY is required")
	}
	if cfg.MaxImageDimension <= 0 {
		errors = append(errors, "MAX_IMAGE_DIMENSION must be positive")
	}
	if cfg.ImageQuality <= 0 || cfg.ImageQuality > 1 {
		errors = append(errors, "IMAGE_QUALITY must be in (0, 1]")
	}
	if cfg.ThumbnailSize <= 0 {
		errors = append(errors, "THUMBNAIL_SIZE must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
