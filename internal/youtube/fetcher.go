package youtube

import (
	"context"
	"strconv"
	"time"

	"github.com/yt-insights/dashboard/internal/cache"
	"github.com/yt-insights/dashboard/internal/models"
)

// Cache operation names; each is combined with the call's arguments.
const (
	OpChannel = "fetch_channel"
	OpVideos  = "fetch_videos"
	OpStats   = "fetch_stats"
)

// Fetcher resolves channels, lists videos and loads statistics,
// memoizing every result in the cache for ttl.
type Fetcher struct {
	api   API
	cache *cache.Cache
	ttl   time.Duration
}

// NewFetcher creates a fetcher that caches every API result in c for ttl.
func NewFetcher(api API, c *cache.Cache, ttl time.Duration) *Fetcher {
	return &Fetcher{api: api, cache: c, ttl: ttl}
}

// ForgetChannel drops the cached result of Channel(lookup).
func (f *Fetcher) ForgetChannel(ctx context.Context, lookup models.ChannelLookup) error {
	return f.cache.Invalidate(ctx, OpChannel, lookup.CacheArgs()...)
}

// ForgetVideos drops the cached result of Videos(channelID, maxCount).
func (f *Fetcher) ForgetVideos(ctx context.Context, channelID string, maxCount int) error {
	return f.cache.Invalidate(ctx, OpVideos, videosArgs(channelID, maxCount)...)
}

// ForgetStats drops the cached result of Stats(ids).
func (f *Fetcher) ForgetStats(ctx context.Context, ids []string) error {
	return f.cache.Invalidate(ctx, OpStats, ids...)
}

func videosArgs(channelID string, maxCount int) []string {
	return []string{channelID, strconv.Itoa(clampBatch(maxCount))}
}
