package dashboard

import (
	"sort"
	"time"

	"github.com/yt-insights/dashboard/internal/models"
)

// Merge attaches each reference's thumbnail URL to the row with the same
// video ID. Rows without a matching reference keep an empty thumbnail.
func Merge(rows []models.VideoStatsRow, refs []models.VideoReference) []models.VideoStatsRow {
	thumbs := make(map[string]string, len(refs))
	for _, r := range refs {
		thumbs[r.VideoID] = r.ThumbnailURL
	}

	merged := make([]models.VideoStatsRow, len(rows))
	for i, row := range rows {
		row.ThumbnailURL = thumbs[row.VideoID]
		merged[i] = row
	}
	return merged
}

// Rank returns rows sorted by views, highest first. Rows with equal views
// keep their input order.
func Rank(rows []models.VideoStatsRow) []models.VideoStatsRow {
	ranked := append([]models.VideoStatsRow(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})
	return ranked
}

// ComputeKPIs summarizes ranked rows; the top video is the first row.
func ComputeKPIs(ranked []models.VideoStatsRow) models.KPIs {
	kpis := models.KPIs{SampleSize: len(ranked)}
	if len(ranked) == 0 {
		return kpis
	}

	for _, r := range ranked {
		kpis.TotalViews += r.Views
	}
	kpis.AverageViews = kpis.TotalViews / uint64(len(ranked))
	top := ranked[0]
	kpis.Top = &top
	return kpis
}

// DailyAggregate sums views per UTC publish date, oldest date first.
func DailyAggregate(rows []models.VideoStatsRow) []models.DailyViews {
	sums := make(map[time.Time]uint64)
	for _, r := range rows {
		t := r.PublishedAt.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		sums[day] += r.Views
	}

	daily := make([]models.DailyViews, 0, len(sums))
	for day, views := range sums {
		daily = append(daily, models.DailyViews{Date: day, Views: views})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})
	return daily
}
