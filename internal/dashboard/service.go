// Package dashboard turns fetched channel and video data into the ranked
// table, KPIs and time series the dashboard page shows.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yt-insights/dashboard/internal/models"
)

// TopListSize is how many ranked videos the page lists with thumbnails.
const TopListSize = 10

// Status tells the caller which outcome a dashboard request had.
type Status string

const (
	StatusOK              Status = "ok"
	StatusChannelNotFound Status = "channel_not_found"
	StatusNoVideos        Status = "no_videos"
)

// Source is the cached data access the dashboard is built from.
type Source interface {
	Channel(ctx context.Context, lookup models.ChannelLookup) (*models.ChannelSummary, error)
	Videos(ctx context.Context, channelID string, maxCount int) ([]models.VideoReference, error)
	Stats(ctx context.Context, ids []string) ([]models.VideoStatsRow, error)

	ForgetChannel(ctx context.Context, lookup models.ChannelLookup) error
	ForgetVideos(ctx context.Context, channelID string, maxCount int) error
	ForgetStats(ctx context.Context, ids []string) error
}

// ImageSource loads thumbnails; see ThumbnailFetcher.
type ImageSource interface {
	Fetch(ctx context.Context, url string) (Thumbnail, error)
}

// Request describes one dashboard render.
type Request struct {
	Lookup    models.ChannelLookup
	MaxVideos int
	// Refresh bypasses cached results for this request.
	Refresh bool
	// Images downloads the logo and top-list thumbnails.
	Images bool
}

// Dashboard is everything the page renders.
type Dashboard struct {
	Status      Status                 `json:"status"`
	Lookup      models.ChannelLookup   `json:"lookup"`
	MaxVideos   int                    `json:"maxVideos"`
	Channel     *models.ChannelSummary `json:"channel,omitempty"`
	Rows        []models.VideoStatsRow `json:"videos"`
	KPIs        models.KPIs            `json:"kpis"`
	Daily       []models.DailyViews    `json:"dailyViews"`
	Logo        Thumbnail              `json:"-"`
	Thumbnails  map[string]Thumbnail   `json:"-"`
	GeneratedAt time.Time              `json:"generatedAt"`
}

// TopRows returns the first TopListSize ranked rows.
func (d *Dashboard) TopRows() []models.VideoStatsRow {
	if len(d.Rows) > TopListSize {
		return d.Rows[:TopListSize]
	}
	return d.Rows
}

// Thumbnail returns the downloaded thumbnail for a video, or Unavailable.
func (d *Dashboard) Thumbnail(videoID string) Thumbnail {
	if t, ok := d.Thumbnails[videoID]; ok {
		return t
	}
	return Unavailable
}

// Service runs the fetch chain and aggregates its results.
type Service struct {
	source Source
	images ImageSource
	now    func() time.Time
}

// NewService creates a dashboard service over source and images.
func NewService(source Source, images ImageSource) *Service {
	return &Service{source: source, images: images, now: time.Now}
}

// Build resolves the channel, lists its recent videos, loads their
// statistics and aggregates them. Not-found and empty results are reported
// through Dashboard.Status; API failures are returned as errors.
func (s *Service) Build(ctx context.Context, req Request) (*Dashboard, error) {
	d := &Dashboard{
		Lookup:      req.Lookup,
		MaxVideos:   req.MaxVideos,
		Rows:        []models.VideoStatsRow{},
		Daily:       []models.DailyViews{},
		Thumbnails:  map[string]Thumbnail{},
		GeneratedAt: s.now().UTC(),
	}
	logger := log.Ctx(ctx).With().Stringer("lookup", req.Lookup).Int("max_videos", req.MaxVideos).Logger()

	if req.Refresh {
		if err := s.source.ForgetChannel(ctx, req.Lookup); err != nil {
			logger.Warn().Err(err).Msg("failed to invalidate cached channel")
		}
	}
	channel, err := s.source.Channel(ctx, req.Lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel info: %w", err)
	}
	if channel == nil {
		d.Status = StatusChannelNotFound
		return d, nil
	}
	d.Channel = channel

	if req.Refresh {
		if err := s.source.ForgetVideos(ctx, channel.ID, req.MaxVideos); err != nil {
			logger.Warn().Err(err).Msg("failed to invalidate cached video list")
		}
	}
	refs, err := s.source.Videos(ctx, channel.ID, req.MaxVideos)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel videos: %w", err)
	}

	ids := videoIDs(refs, req.MaxVideos)
	if req.Refresh {
		if err := s.source.ForgetStats(ctx, ids); err != nil {
			logger.Warn().Err(err).Msg("failed to invalidate cached statistics")
		}
	}
	rows, err := s.source.Stats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get video statistics: %w", err)
	}

	if req.Images {
		if d.Logo, err = s.images.Fetch(ctx, channel.LogoURL); err != nil {
			return nil, err
		}
	}

	if len(rows) == 0 {
		d.Status = StatusNoVideos
		return d, nil
	}

	d.Rows = Rank(Merge(rows, refs))
	d.KPIs = ComputeKPIs(d.Rows)
	d.Daily = DailyAggregate(d.Rows)
	d.Status = StatusOK

	if req.Images {
		for _, row := range d.TopRows() {
			thumb, err := s.images.Fetch(ctx, row.ThumbnailURL)
			if err != nil {
				return nil, err
			}
			d.Thumbnails[row.VideoID] = thumb
		}
	}

	logger.Info().Str("channel_id", channel.ID).Int("videos", len(d.Rows)).Uint64("sample_views", d.KPIs.TotalViews).Msg("dashboard built")
	return d, nil
}

func videoIDs(refs []models.VideoReference, limit int) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.VideoID)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}
