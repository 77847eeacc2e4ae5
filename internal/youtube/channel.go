package youtube

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/yt-insights/dashboard/internal/cache"
	"github.com/yt-insights/dashboard/internal/models"
	yt "google.golang.org/api/youtube/v3"
)

// Channel resolves lookup to a channel summary with a single API request.
// A nil summary with a nil error means the channel was not found.
func (f *Fetcher) Channel(ctx context.Context, lookup models.ChannelLookup) (*models.ChannelSummary, error) {
	if !lookup.Valid() {
		return nil, models.ErrEmptyIdentifier
	}
	return cache.GetOrCompute(ctx, f.cache, OpChannel, lookup.CacheArgs(), f.ttl, func(ctx context.Context) (*models.ChannelSummary, error) {
		log.Debug().Stringer("lookup", lookup).Msg("fetching channel from YouTube API")

		resp, err := f.api.ListChannels(ctx, lookup)
		if err != nil {
			return nil, fmt.Errorf("error fetching channel %s: %w", lookup, err)
		}
		if resp == nil || len(resp.Items) == 0 {
			log.Info().Stringer("lookup", lookup).Msg("channel not found")
			return nil, nil
		}
		return channelSummary(resp.Items[0]), nil
	})
}

func channelSummary(c *yt.Channel) *models.ChannelSummary {
	s := &models.ChannelSummary{}
	if c == nil {
		return s
	}
	s.ID = c.Id
	if c.Snippet != nil {
		s.Title = c.Snippet.Title
		s.Description = c.Snippet.Description
		s.Country = c.Snippet.Country
		if c.Snippet.Thumbnails != nil && c.Snippet.Thumbnails.Default != nil {
			s.LogoURL = c.Snippet.Thumbnails.Default.Url
		}
	}
	if c.Statistics != nil {
		s.Subscribers = c.Statistics.SubscriberCount
		s.Views = c.Statistics.ViewCount
		s.Videos = c.Statistics.VideoCount
	}
	if c.BrandingSettings != nil && c.BrandingSettings.Channel != nil {
		s.Keywords = c.BrandingSettings.Channel.Keywords
	}
	return s
}
