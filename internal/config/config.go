package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTTTL            = "24h"
	defaultLogLevel          = "info"
	defaultRateLimitRequests = "60"
	defaultRateLimitWindow   = "1m"
	defaultStorageDriver     = "local"
	defaultUploadsDir        = "./uploads"
	defaultUploadsPublicBase = "/static/uploads"
	defaultMaxAttachment     = "10485760"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	LogLevel    string

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins []string

	RedisAddr         string
	RedisPassword     string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	Storage StorageConfig
	Reviews ReviewPolicy
}

type StorageConfig struct {
	Driver             string
	UploadsDir         string
	UploadsPublicBase  string
	S3Bucket           string
	S3PublicBase       string
	MaxAttachmentBytes int64
}

// ReviewPolicy controls review eligibility gates.
type ReviewPolicy struct {
	RequireCompletedBooking bool
	AllowDuplicates         bool
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow, err = parseDurationEnv("RATE_LIMIT_WINDOW", defaultRateLimitWindow)
	if err != nil {
		return nil, err
	}
	requests, err := parseIntEnv("RATE_LIMIT_REQUESTS", defaultRateLimitRequests)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitRequests = int(requests)

	cfg.Storage = StorageConfig{
		Driver:            strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", defaultStorageDriver))),
		UploadsDir:        strings.TrimSpace(getEnv("UPLOADS_DIR", defaultUploadsDir)),
		UploadsPublicBase: strings.TrimRight(strings.TrimSpace(getEnv("UPLOADS_PUBLIC_BASE", defaultUploadsPublicBase)), "/"),
		S3Bucket:          strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3PublicBase:      strings.TrimRight(strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE")), "/"),
	}
	cfg.Storage.MaxAttachmentBytes, err = parseIntEnv("MAX_ATTACHMENT_BYTES", defaultMaxAttachment)
	if err != nil {
		return nil, err
	}

	cfg.Reviews = ReviewPolicy{
		RequireCompletedBooking: parseBoolEnv("REVIEW_REQUIRE_COMPLETED_BOOKING", "false"),
		AllowDuplicates:         parseBoolEnv("REVIEW_ALLOW_DUPLICATES", "true"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be > 0")
	}
	if cfg.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be > 0")
	}
	if cfg.Storage.MaxAttachmentBytes <= 0 {
		return fmt.Errorf("MAX_ATTACHMENT_BYTES must be > 0")
	}

	switch cfg.Storage.Driver {
	case "local":
		if cfg.Storage.UploadsDir == "" {
			return fmt.Errorf("UPLOADS_DIR must not be empty when STORAGE_DRIVER=local")
		}
	case "s3":
		if cfg.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of: local, s3")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
