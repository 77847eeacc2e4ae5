// Package youtube fetches channel and video data from the YouTube Data API v3.
package youtube

import (
	"context"
	"fmt"

	"github.com/yt-insights/dashboard/internal/models"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// MaxBatchSize is the most IDs or results the API accepts per request.
const MaxBatchSize = 50

// API is the subset of the YouTube Data API the dashboard reads.
type API interface {
	ListChannels(ctx context.Context, lookup models.ChannelLookup) (*yt.ChannelListResponse, error)
	SearchVideos(ctx context.Context, channelID string, maxResults int64) (*yt.SearchListResponse, error)
	ListVideos(ctx context.Context, ids []string) (*yt.VideoListResponse, error)
}

// Client is the API backed by the generated Google client.
type Client struct {
	service *yt.Service
}

// NewClient creates a client authenticated with a static API key.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// ListChannels runs channels.list by ID, legacy username or handle.
func (c *Client) ListChannels(ctx context.Context, lookup models.ChannelLookup) (*yt.ChannelListResponse, error) {
	call := c.service.Channels.List([]string{"snippet", "statistics", "brandingSettings"})
	var opts []googleapi.CallOption
	switch lookup.Mode() {
	case models.LookupByID:
		call = call.Id(lookup.Value())
	case models.LookupByUsername:
		call = call.ForUsername(lookup.Value())
	case models.LookupByHandle:
		opts = append(opts, googleapi.QueryParameter("forHandle", "@"+lookup.Value()))
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownMode, lookup.Mode())
	}
	return call.Context(ctx).Do(opts...)
}

// SearchVideos runs one search.list page of the channel's newest videos.
func (c *Client) SearchVideos(ctx context.Context, channelID string, maxResults int64) (*yt.SearchListResponse, error) {
	return c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		MaxResults(maxResults).
		Order("date").
		Type("video").
		Context(ctx).
		Do()
}

// ListVideos runs videos.list for up to MaxBatchSize IDs.
func (c *Client) ListVideos(ctx context.Context, ids []string) (*yt.VideoListResponse, error) {
	return c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
}
