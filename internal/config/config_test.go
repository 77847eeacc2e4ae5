package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "key-123")
	for _, k := range []string{"PORT", "ENV", "CACHE_TTL", "REDIS_URL", "THUMBNAIL_TIMEOUT", "ALLOWED_ORIGINS", "DEFAULT_MAX_VIDEOS", "CACHE_SIZE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "key-123", cfg.YouTubeAPIKey)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Zero(t, cfg.CacheSize, "cache is unbounded unless sized")
	assert.Equal(t, 5*time.Second, cfg.ThumbnailTimeout)
	assert.Equal(t, 25, cfg.DefaultMaxVideos)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "k")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "development")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("DEFAULT_MAX_VIDEOS", "500")
	t.Setenv("CACHE_SIZE", "1000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, MaxVideos, cfg.DefaultMaxVideos)
	assert.Equal(t, 1000, cfg.CacheSize)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "k")
	t.Setenv("CACHE_TTL", "ten minutes")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NegativeCacheSize(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "k")
	t.Setenv("CACHE_SIZE", "-1")

	_, err := Load()
	assert.ErrorContains(t, err, "CACHE_SIZE")
}

func TestClampMaxVideos(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 10},
		{10, 10},
		{25, 25},
		{50, 50},
		{51, 50},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ClampMaxVideos(tc.in), "ClampMaxVideos(%d)", tc.in)
	}
}
