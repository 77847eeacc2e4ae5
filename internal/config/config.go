package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingAPIKey = errors.New("YouTube API key is required")
)

const (
	MinVideos = 10
	MaxVideos = 50
)

// Config holds the application configuration
type Config struct {
	YouTubeAPIKey    string
	Port             string
	Env              string
	CacheTTL         time.Duration
	CacheSize        int
	RedisURL         string
	ThumbnailTimeout time.Duration
	AllowedOrigins   []string
	DefaultMaxVideos int
}

// Load loads the configuration from environment variables.
// The .env file, if any, must already have been applied by the caller.
func Load() (*Config, error) {
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	thumbTimeout, err := getEnvAsDuration("THUMBNAIL_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cacheSize, err := getEnvAsInt("CACHE_SIZE", 0)
	if err != nil {
		return nil, err
	}
	maxVideos, err := getEnvAsInt("DEFAULT_MAX_VIDEOS", 25)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		Port:             getEnvOrDefault("PORT", "8080"),
		Env:              getEnvOrDefault("ENV", "production"),
		CacheTTL:         cacheTTL,
		CacheSize:        cacheSize,
		RedisURL:         os.Getenv("REDIS_URL"),
		ThumbnailTimeout: thumbTimeout,
		AllowedOrigins:   splitList(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		DefaultMaxVideos: ClampMaxVideos(maxVideos),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("CACHE_SIZE must not be negative, got %d", c.CacheSize)
	}
	return nil
}

// IsDevelopment reports whether human-readable console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ClampMaxVideos bounds a requested video count to the range the dashboard offers.
func ClampMaxVideos(n int) int {
	if n < MinVideos {
		return MinVideos
	}
	if n > MaxVideos {
		return MaxVideos
	}
	return n
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, val, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, val, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
