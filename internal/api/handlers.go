package api

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yt-insights/dashboard/internal/config"
	"github.com/yt-insights/dashboard/internal/dashboard"
	"github.com/yt-insights/dashboard/internal/models"
)

var ErrInvalidMax = errors.New("max must be a whole number")

// pageData is what index.tmpl renders.
type pageData struct {
	Mode      string
	Query     string
	Max       int
	Refresh   bool
	MinVideos int
	MaxVideos int

	Error     string
	Dashboard *dashboard.Dashboard
	Chart     template.JS
	ExportURL string
}

func (s *Server) health(c *gin.Context) {
	hits, misses := s.stats.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cache": gin.H{
			"hits":   hits,
			"misses": misses,
		},
	})
}

// index renders the form and, when an identifier was submitted, the dashboard.
func (s *Server) index(c *gin.Context) {
	data := pageData{
		Mode:      c.DefaultQuery("mode", string(models.LookupByID)),
		Query:     c.Query("q"),
		Max:       s.cfg.DefaultMaxVideos,
		Refresh:   checked(c.Query("refresh")),
		MinVideos: config.MinVideos,
		MaxVideos: config.MaxVideos,
	}
	if strings.TrimSpace(data.Query) == "" {
		c.HTML(http.StatusOK, "index.tmpl", data)
		return
	}

	req, err := s.parseRequest(c)
	if err != nil {
		data.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index.tmpl", data)
		return
	}
	data.Max = req.MaxVideos
	req.Images = true

	d, err := s.builder.Build(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		data.Error = err.Error()
		c.HTML(http.StatusBadGateway, "index.tmpl", data)
		return
	}
	data.Dashboard = d

	if d.Status == dashboard.StatusOK {
		if data.Chart, err = chartData(d.Daily); err != nil {
			c.Error(err)
		}
		data.ExportURL = "/export.csv?" + url.Values{
			"mode": {string(req.Lookup.Mode())},
			"q":    {req.Lookup.Value()},
			"max":  {strconv.Itoa(req.MaxVideos)},
		}.Encode()
	}
	c.HTML(http.StatusOK, "index.tmpl", data)
}

// exportCSV downloads the ranked table.
func (s *Server) exportCSV(c *gin.Context) {
	req, err := s.parseRequest(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	d, err := s.builder.Build(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		c.String(http.StatusBadGateway, err.Error())
		return
	}
	if d.Status == dashboard.StatusChannelNotFound {
		c.String(http.StatusNotFound, "channel not found")
		return
	}

	var buf bytes.Buffer
	if err := dashboard.WriteCSV(&buf, d.Rows); err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "failed to write csv")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dashboard.CSVFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// getChannel handles requests for a single channel summary
func (s *Server) getChannel(c *gin.Context) {
	lookup, err := models.ParseLookup(c.DefaultQuery("mode", string(models.LookupByID)), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel, err := s.channels.Channel(c.Request.Context(), lookup)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if channel == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "channel not found", "lookup": lookup})
		return
	}
	c.JSON(http.StatusOK, channel)
}

// getDashboard handles requests for the dashboard data without inline images
func (s *Server) getDashboard(c *gin.Context) {
	req, err := s.parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := s.builder.Build(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if d.Status == dashboard.StatusChannelNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "channel not found", "status": d.Status, "lookup": d.Lookup})
		return
	}
	c.JSON(http.StatusOK, d)
}

// parseRequest reads mode, q, max and refresh from the query string.
func (s *Server) parseRequest(c *gin.Context) (dashboard.Request, error) {
	lookup, err := models.ParseLookup(c.DefaultQuery("mode", string(models.LookupByID)), c.Query("q"))
	if err != nil {
		return dashboard.Request{}, err
	}

	maxVideos := s.cfg.DefaultMaxVideos
	if raw := strings.TrimSpace(c.Query("max")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return dashboard.Request{}, fmt.Errorf("%w: %q", ErrInvalidMax, raw)
		}
		maxVideos = config.ClampMaxVideos(n)
	}

	zerolog.Ctx(c.Request.Context()).Debug().
		Stringer("lookup", lookup).
		Int("max_videos", maxVideos).
		Msg("dashboard request")

	return dashboard.Request{
		Lookup:    lookup,
		MaxVideos: maxVideos,
		Refresh:   checked(c.Query("refresh")),
	}, nil
}

func checked(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
