package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yt-insights/dashboard/internal/cache"
	"github.com/yt-insights/dashboard/internal/models"
)

// Videos lists the channel's most recent videos, newest first.
//
// Only the first result page is read, so at most MaxBatchSize references are
// returned no matter how many the channel has. maxCount is clamped to
// [1, MaxBatchSize] and trims that page.
func (f *Fetcher) Videos(ctx context.Context, channelID string, maxCount int) ([]models.VideoReference, error) {
	maxCount = clampBatch(maxCount)

	return cache.GetOrCompute(ctx, f.cache, OpVideos, videosArgs(channelID, maxCount), f.ttl, func(ctx context.Context) ([]models.VideoReference, error) {
		resp, err := f.api.SearchVideos(ctx, channelID, MaxBatchSize)
		if err != nil {
			return nil, fmt.Errorf("error fetching videos for channel %s: %w", channelID, err)
		}

		refs := make([]models.VideoReference, 0, MaxBatchSize)
		if resp == nil {
			return refs, nil
		}
		for _, item := range resp.Items {
			if item == nil || item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
				continue
			}
			publishedAt, err := parsePublishedAt(item.Snippet.PublishedAt)
			if err != nil {
				return nil, fmt.Errorf("video %s: %w", item.Id.VideoId, err)
			}

			ref := models.VideoReference{
				VideoID:     item.Id.VideoId,
				Title:       item.Snippet.Title,
				PublishedAt: publishedAt,
			}
			if th := item.Snippet.Thumbnails; th != nil && th.High != nil {
				ref.ThumbnailURL = th.High.Url
			}
			refs = append(refs, ref)
		}

		if resp.NextPageToken != "" {
			log.Debug().Str("channel_id", channelID).Msg("more videos available; only the first page is read")
		}
		if len(refs) > maxCount {
			refs = refs[:maxCount]
		}
		return refs, nil
	})
}

func parsePublishedAt(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid publishedAt %q: %w", s, err)
	}
	return t.UTC(), nil
}

func clampBatch(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxBatchSize {
		return MaxBatchSize
	}
	return n
}
