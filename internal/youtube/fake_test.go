package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yt-insights/dashboard/internal/cache"
	"github.com/yt-insights/dashboard/internal/models"
	yt "google.golang.org/api/youtube/v3"
)

// fakeAPI serves canned responses and records every call.
type fakeAPI struct {
	channels map[string]*yt.Channel // keyed by lookup.String()
	search   *yt.SearchListResponse
	videos   map[string]*yt.Video
	err      error

	channelCalls int
	searchCalls  []int64
	videoBatches [][]string
}

func (f *fakeAPI) ListChannels(_ context.Context, lookup models.ChannelLookup) (*yt.ChannelListResponse, error) {
	f.channelCalls++
	if f.err != nil {
		return nil, f.err
	}
	resp := &yt.ChannelListResponse{}
	if c, ok := f.channels[lookup.String()]; ok {
		resp.Items = append(resp.Items, c)
	}
	return resp, nil
}

func (f *fakeAPI) SearchVideos(_ context.Context, _ string, maxResults int64) (*yt.SearchListResponse, error) {
	f.searchCalls = append(f.searchCalls, maxResults)
	if f.err != nil {
		return nil, f.err
	}
	if f.search == nil {
		return &yt.SearchListResponse{}, nil
	}
	return f.search, nil
}

func (f *fakeAPI) ListVideos(_ context.Context, ids []string) (*yt.VideoListResponse, error) {
	f.videoBatches = append(f.videoBatches, append([]string(nil), ids...))
	if f.err != nil {
		return nil, f.err
	}
	resp := &yt.VideoListResponse{}
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			resp.Items = append(resp.Items, v)
		}
	}
	return resp, nil
}

func newTestFetcher(api API) *Fetcher {
	return NewFetcher(api, cache.New(cache.NewMemoryStore(0, 0), nil), time.Minute)
}

// decode unmarshals an API JSON payload the way the generated client does.
func decode[T any](t *testing.T, payload string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(payload), &v))
	return &v
}

func videoJSON(id string, views int) string {
	return fmt.Sprintf(`{
		"id": %q,
		"snippet": {"title": "Video %s", "publishedAt": "2024-03-01T10:00:00Z"},
		"statistics": {"viewCount": "%d", "likeCount": "3", "commentCount": "1"},
		"contentDetails": {"duration": "PT4M13S"}
	}`, id, id, views)
}
