package youtube

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/yt-insights/dashboard/internal/cache"
	"github.com/yt-insights/dashboard/internal/models"
	yt "google.golang.org/api/youtube/v3"
)

// Stats loads statistics for ids, one request per chunk of MaxBatchSize.
// Rows come back in chunk order; IDs the API does not return (deleted or
// private videos) are dropped.
func (f *Fetcher) Stats(ctx context.Context, ids []string) ([]models.VideoStatsRow, error) {
	if len(ids) == 0 {
		return []models.VideoStatsRow{}, nil
	}

	return cache.GetOrCompute(ctx, f.cache, OpStats, ids, f.ttl, func(ctx context.Context) ([]models.VideoStatsRow, error) {
		rows := make([]models.VideoStatsRow, 0, len(ids))
		for _, batch := range Chunk(ids, MaxBatchSize) {
			resp, err := f.api.ListVideos(ctx, batch)
			if err != nil {
				return nil, fmt.Errorf("error fetching video details: %w", err)
			}
			if resp == nil {
				continue
			}
			for _, item := range resp.Items {
				row, err := statsRow(item)
				if err != nil {
					return nil, err
				}
				if row != nil {
					rows = append(rows, *row)
				}
			}
		}

		if dropped := len(ids) - len(rows); dropped > 0 {
			log.Debug().Int("requested", len(ids)).Int("dropped", dropped).Msg("some videos returned no statistics")
		}
		return rows, nil
	})
}

// Chunk splits ids into consecutive slices of at most size elements.
// A size below 1 yields a single chunk holding every id.
func Chunk(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	if size < 1 {
		return [][]string{ids}
	}
	var chunks [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}

func statsRow(v *yt.Video) (*models.VideoStatsRow, error) {
	if v == nil || v.Id == "" {
		return nil, nil
	}
	row := &models.VideoStatsRow{VideoID: v.Id}
	if v.Snippet != nil {
		row.Title = v.Snippet.Title
		publishedAt, err := parsePublishedAt(v.Snippet.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("video %s: %w", v.Id, err)
		}
		row.PublishedAt = publishedAt
	}
	if v.Statistics != nil {
		row.Views = v.Statistics.ViewCount
		row.Likes = v.Statistics.LikeCount
		row.Comments = v.Statistics.CommentCount
	}
	if v.ContentDetails != nil {
		row.Duration = v.ContentDetails.Duration
	}
	return row, nil
}
