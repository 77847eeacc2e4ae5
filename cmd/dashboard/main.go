package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yt-insights/dashboard/internal/api"
	"github.com/yt-insights/dashboard/internal/cache"
	"github.com/yt-insights/dashboard/internal/config"
	"github.com/yt-insights/dashboard/internal/dashboard"
	"github.com/yt-insights/dashboard/internal/youtube"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogging(cfg)

	ctx := context.Background()

	// Cache store
	var store cache.Store = cache.NewMemoryStore(cfg.CacheSize, cfg.CacheTTL)
	if cfg.RedisURL != "" {
		client, err := cache.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("error closing redis client")
			}
		}()
		store = cache.NewRedisStore(client)
		log.Info().Msg("using Redis cache store")
	}
	c := cache.New(store, cache.SystemClock)

	// Initialize YouTube API
	client, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize YouTube API")
	}
	fetcher := youtube.NewFetcher(client, c, cfg.CacheTTL)
	service := dashboard.NewService(fetcher, dashboard.NewThumbnailFetcher(cfg.ThumbnailTimeout))

	server, err := api.NewServer(cfg, service, fetcher, c)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	log.Info().Str("port", cfg.Port).Dur("cache_ttl", cfg.CacheTTL).Msg("server starting")
	if err := server.Start(cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
	zerolog.DefaultContextLogger = &log.Logger
}
