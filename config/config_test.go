package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:         "secret",
		DBPassword:        "password",
		RecognitionAPIKey: "key",
		MaxImageDimension: 1024,
		ImageQuality:      0.7,
		ThumbnailSize:     200,
	}
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(validConfig()))

	t.Run("missing secrets", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		cfg.RecognitionAPIKey = ""
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "RECOGNITION_API_KEY")
	})

	t.Run("bad image quality", func(t *testing.T) {
		cfg := validConfig()
		cfg.ImageQuality = 1.5
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "IMAGE_QUALITY")
	})

	t.Run("bad dimensions", func(t *testing.T) {
		cfg := validConfig()
		cfg.MaxImageDimension = 0
		cfg.ThumbnailSize = -1
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MAX_IMAGE_DIMENSION")
		assert.Contains(t, err.Error(), "THUMBNAIL_SIZE")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PASSWORD", "test-password")
	t.Setenv("RECOGNITION_API_KEY", "test-key")
	t.Setenv("API_TIMEOUT_MS", "15000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "meal-images", cfg.ImageBucket)
	assert.Equal(t, "meal-thumbnails", cfg.ThumbnailBucket)
	assert.Equal(t, 1024, cfg.MaxImageDimension)
	assert.InDelta(t, 0.7, cfg.ImageQuality, 0.001)
	assert.Equal(t, 200, cfg.ThumbnailSize)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "test-key", cfg.RecognitionAPIKey)
}

func TestRedisOptions(t *testing.T) {
	t.Run("host and port", func(t *testing.T) {
		cfg := &Config{RedisHost: "cache.internal", RedisPort: "6380", RedisPassword: "pw", RedisDB: 2}
		opts, err := cfg.RedisOptions()
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.Equal(t, 2, opts.DB)
	})

	t.Run("url takes precedence", func(t *testing.T) {
		cfg := &Config{RedisHost: "ignored", RedisPort: "6379", RedisURL: "redis://:secret@prod-redis:6390/1"}
		opts, err := cfg.RedisOptions()
		require.NoError(t, err)
		assert.Equal(t, "prod-redis:6390", opts.Addr)
		assert.Equal(t, "secret", opts.Password)
		assert.Equal(t, 1, opts.DB)
	})

	t.Run("bad url", func(t *testing.T) {
		cfg := &Config{RedisURL: "://not-a-url"}
		_, err := cfg.RedisOptions()
		assert.Error(t, err)
	})
}

func TestLoadSecretFromFile(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "api_key")
	require.NoError(t, os.WriteFile(secretFile, []byte("file-key\n"), 0600))

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PASSWORD", "test-password")
	t.Setenv("RECOGNITION_API_KEY", "")
	t.Setenv("RECOGNITION_API_KEY_FILE", secretFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.RecognitionAPIKey)
}

func TestLoadConfigMissingRecognitionKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PASSWORD", "test-password")
	t.Setenv("RECOGNITION_API_KEY", "")
	t.Setenv("RECOGNITION_API_KEY_FILE", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
