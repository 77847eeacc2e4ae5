package dashboard

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/yt-insights/dashboard/internal/models"
)

// CSVFilename is the suggested name for the downloaded table.
const CSVFilename = "youtube_videos_stats.csv"

var csvHeader = []string{"videoId", "title", "publishedAt", "views", "likes", "comments", "duration", "thumbnail"}

// WriteCSV writes rows, in the given order, as a comma-separated table with a header row.
func WriteCSV(w io.Writer, rows []models.VideoStatsRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.VideoID,
			r.Title,
			r.PublishedAt.UTC().Format(time.RFC3339),
			strconv.FormatUint(r.Views, 10),
			strconv.FormatUint(r.Likes, 10),
			strconv.FormatUint(r.Comments, 10),
			r.Duration,
			r.ThumbnailURL,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
