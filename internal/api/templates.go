package api

import (
	"embed"
	"encoding/json"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yt-insights/dashboard/internal/dashboard"
	"github.com/yt-insights/dashboard/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"comma":    comma,
	"truncate": truncate,
	"dataURI": func(t dashboard.Thumbnail) template.URL {
		// produced by ThumbnailFetcher from a decoded image, never user input
		return template.URL(t.DataURI)
	},
	"date": func(t time.Time) string {
		return t.UTC().Format("2006-01-02")
	},
	"inc": func(i int) int { return i + 1 },
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")
}

func comma(n uint64) string {
	return humanize.Comma(int64(n))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

type chartSeries struct {
	X []string `json:"x"`
	Y []uint64 `json:"y"`
}

// chartData encodes the daily series for the Plotly line chart.
func chartData(daily []models.DailyViews) (template.JS, error) {
	series := chartSeries{X: make([]string, 0, len(daily)), Y: make([]uint64, 0, len(daily))}
	for _, d := range daily {
		series.X = append(series.X, d.Day())
		series.Y = append(series.Y, d.Views)
	}
	b, err := json.Marshal(series)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
