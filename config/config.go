package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Recognition endpoint configuration
	RecognitionAPIKey string
	RecognitionAPIURL string
	RecognitionModel  string
	RequestTimeout    time.Duration

	// Image processing configuration
	MaxImageDimension int
	ImageQuality      float64
	ThumbnailSize     int

	// Object storage configuration
	S3Region        string
	ImageBucket     string
	ThumbnailBucket string
}

// LoadConfig creates a new Config instance from environment variables.
// Secrets accept a *_FILE fallback pointing at a mounted secret file.
func LoadConfig() (*Config, error) {
	apiKey, err := loadSecret("RECOGNITION_API_KEY")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:8081"), ","),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "mealsnap"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RecognitionAPIKey: apiKey,
		RecognitionAPIURL: getEnv("RECOGNITION_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		RecognitionModel:  getEnv("RECOGNITION_MODEL", "deepseek-chat"),
		RequestTimeout:    time.Duration(getEnvInt("API_TIMEOUT_MS", 30000)) * time.Millisecond,

		MaxImageDimension: getEnvInt("MAX_IMAGE_DIMENSION", 1024),
		ImageQuality:      getEnvFloat("IMAGE_QUALITY", 0.7),
		ThumbnailSize:     getEnvInt("THUMBNAIL_SIZE", 200),

		S3Region:        getEnv("S3_REGION", os.Getenv("AWS_REGION")),
		ImageBucket:     getEnv("S3_IMAGE_BUCKET", "meal-images"),
		ThumbnailBucket: getEnv("S3_THUMBNAIL_BUCKET", "meal-thumbnails"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RedisOptions resolves the Redis connection settings. REDIS_URL, when set,
// takes precedence over the individual host, port, password and db values.
func (c *Config) RedisOptions() (*redis.Options, error) {
	if c.RedisURL != "" {
		opts, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(c.RedisHost, c.RedisPort),
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}, nil
}

// loadSecret reads a secret from NAME, falling back to the file named by
// NAME_FILE when the variable itself is unset.
func loadSecret(name string) (string, error) {
	if value := os.Getenv(name); value != "" {
		return value, nil
	}

	secretFile := os.Getenv(name + "_FILE")
	if secretFile == "" {
		return "", fmt.Errorf("%s or %s_FILE must be set", name, name)
	}

	content, err := os.ReadFile(secretFile)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file for %s: %w", name, err)
	}

	value := strings.TrimSpace(string(content))
	if value == "" {
		return "", fmt.Errorf("secret file for %s is empty", name)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
