package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yt-insights/dashboard/internal/config"
	"github.com/yt-insights/dashboard/internal/dashboard"
	"github.com/yt-insights/dashboard/internal/models"
)

// Builder renders dashboards; *dashboard.Service implements it.
type Builder interface {
	Build(ctx context.Context, req dashboard.Request) (*dashboard.Dashboard, error)
}

// ChannelSource resolves a single channel; *youtube.Fetcher implements it.
type ChannelSource interface {
	Channel(ctx context.Context, lookup models.ChannelLookup) (*models.ChannelSummary, error)
}

// CacheStats reports cache counters for the health check.
type CacheStats interface {
	Stats() (hits, misses int64)
}

// Server represents the dashboard HTTP server
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	builder  Builder
	channels ChannelSource
	stats    CacheStats
}

// NewServer creates a new dashboard server
func NewServer(cfg *config.Config, builder Builder, channels ChannelSource, stats CacheStats) (*Server, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger())
	router.Use(apiCORS(cfg.AllowedOrigins))
	router.SetHTMLTemplate(tmpl)

	server := &Server{
		router:   router,
		cfg:      cfg,
		builder:  builder,
		channels: channels,
		stats:    stats,
	}
	server.setupRoutes()

	return server, nil
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.health)

	s.router.GET("/", s.index)
	s.router.GET("/export.csv", s.exportCSV)

	api := s.router.Group("/api")
	api.GET("/channel", s.getChannel)
	api.GET("/dashboard", s.getDashboard)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

// apiCORS applies the CORS policy to /api routes only. It is installed on the
// engine rather than the group so that preflight requests, which match no
// route, still get answered.
func apiCORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return func(c *gin.Context) {}
	}
	handler := cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "Pragma", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			handler(c)
		}
	}
}
