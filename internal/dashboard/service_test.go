package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yt-insights/dashboard/internal/models"
)

type fakeSource struct {
	channel    *models.ChannelSummary
	refs       []models.VideoReference
	rows       []models.VideoStatsRow
	channelErr error
	videosErr  error
	statsErr   error

	videosChannelID string
	statsIDs        []string
	forgotten       []string
}

func (f *fakeSource) Channel(ctx context.Context, lookup models.ChannelLookup) (*models.ChannelSummary, error) {
	return f.channel, f.channelErr
}

func (f *fakeSource) Videos(ctx context.Context, channelID string, maxCount int) ([]models.VideoReference, error) {
	f.videosChannelID = channelID
	return f.refs, f.videosErr
}

func (f *fakeSource) Stats(ctx context.Context, ids []string) ([]models.VideoStatsRow, error) {
	f.statsIDs = ids
	return f.rows, f.statsErr
}

func (f *fakeSource) ForgetChannel(ctx context.Context, lookup models.ChannelLookup) error {
	f.forgotten = append(f.forgotten, "channel:"+lookup.String())
	return nil
}

func (f *fakeSource) ForgetVideos(ctx context.Context, channelID string, maxCount int) error {
	f.forgotten = append(f.forgotten, "videos:"+channelID)
	return nil
}

func (f *fakeSource) ForgetStats(ctx context.Context, ids []string) error {
	f.forgotten = append(f.forgotten, "stats")
	return errors.New("store offline")
}

type fakeImages struct {
	fetched []string
	err     error
}

func (f *fakeImages) Fetch(ctx context.Context, url string) (Thumbnail, error) {
	f.fetched = append(f.fetched, url)
	if f.err != nil {
		return Unavailable, f.err
	}
	if url == "" {
		return Unavailable, nil
	}
	return Thumbnail{DataURI: "data:image/png;base64,AA==", Width: 1, Height: 1}, nil
}

func newTestService(src *fakeSource, images *fakeImages) *Service {
	s := NewService(src, images)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func channelFixture() *models.ChannelSummary {
	return &models.ChannelSummary{ID: "UCgo", Title: "Go Channel", LogoURL: "https://img.example/logo.jpg"}
}

func TestBuild_OK(t *testing.T) {
	src := &fakeSource{
		channel: channelFixture(),
		refs: []models.VideoReference{
			{VideoID: "v1", ThumbnailURL: "https://img.example/v1.jpg"},
			{VideoID: "v2", ThumbnailURL: "https://img.example/v2.jpg"},
			{VideoID: "v3"},
		},
		rows: []models.VideoStatsRow{
			row("v1", 100, day0),
			row("v2", 300, day0.Add(24*time.Hour)),
			row("v3", 200, day0.Add(24*time.Hour)),
		},
	}
	svc := newTestService(src, &fakeImages{})

	d, err := svc.Build(context.Background(), Request{Lookup: models.ByUsername("gopher"), MaxVideos: 25})
	require.NoError(t, err)

	assert.Equal(t, StatusOK, d.Status)
	assert.Equal(t, "UCgo", src.videosChannelID, "videos are listed by resolved channel id")
	assert.Equal(t, []string{"v1", "v2", "v3"}, src.statsIDs)

	require.Len(t, d.Rows, 3)
	assert.Equal(t, "v2", d.Rows[0].VideoID)
	assert.Equal(t, "https://img.example/v2.jpg", d.Rows[0].ThumbnailURL)
	assert.Equal(t, uint64(600), d.KPIs.TotalViews)
	assert.Equal(t, uint64(200), d.KPIs.AverageViews)
	assert.Equal(t, "v2", d.KPIs.Top.VideoID)
	require.Len(t, d.Daily, 2)
	assert.Equal(t, uint64(500), d.Daily[1].Views)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), d.GeneratedAt)
	assert.Empty(t, d.Thumbnails, "images are not fetched unless requested")
}

func TestBuild_ChannelNotFound(t *testing.T) {
	src := &fakeSource{}
	svc := newTestService(src, &fakeImages{})

	d, err := svc.Build(context.Background(), Request{Lookup: models.ByID("UCnope"), MaxVideos: 25})
	require.NoError(t, err)
	assert.Equal(t, StatusChannelNotFound, d.Status)
	assert.Nil(t, d.Channel)
	assert.Empty(t, src.videosChannelID, "no video listing after a miss")
}

func TestBuild_NoVideos(t *testing.T) {
	src := &fakeSource{channel: channelFixture()}
	images := &fakeImages{}
	svc := newTestService(src, images)

	d, err := svc.Build(context.Background(), Request{Lookup: models.ByID("UCgo"), MaxVideos: 25, Images: true})
	require.NoError(t, err)
	assert.Equal(t, StatusNoVideos, d.Status)
	assert.Empty(t, d.Rows)
	assert.Empty(t, d.Daily)
	assert.True(t, d.Logo.Available(), "logo is still shown")
	assert.Equal(t, []string{"https://img.example/logo.jpg"}, images.fetched)
}

func TestBuild_LimitsStatsRequest(t *testing.T) {
	refs := make([]models.VideoReference, 30)
	for i := range refs {
		refs[i] = models.VideoReference{VideoID: string(rune('a' + i%26)) + string(rune('0'+i/26))}
	}
	src := &fakeSource{channel: channelFixture(), refs: refs}
	svc := newTestService(src, &fakeImages{})

	_, err := svc.Build(context.Background(), Request{Lookup: models.ByID("UCgo"), MaxVideos: 10})
	require.NoError(t, err)
	assert.Len(t, src.statsIDs, 10)
	assert.Equal(t, refs[0].VideoID, src.statsIDs[0])
}

func TestBuild_Images(t *testing.T) {
	src := &fakeSource{channel: channelFixture()}
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		src.refs = append(src.refs, models.VideoReference{VideoID: id, ThumbnailURL: "https://img.example/" + id})
		src.rows = append(src.rows, row(id, uint64(100-i), day0))
	}
	src.refs[0].ThumbnailURL = ""
	images := &fakeImages{}
	svc := newTestService(src, images)

	d, err := svc.Build(context.Background(), Request{Lookup: models.ByID("UCgo"), MaxVideos: 25, Images: true})
	require.NoError(t, err)

	assert.Len(t, images.fetched, 1+TopListSize, "logo plus the top list")
	assert.Len(t, d.TopRows(), TopListSize)
	assert.False(t, d.Thumbnail("a").Available(), "missing thumbnail url gives a placeholder")
	assert.True(t, d.Thumbnail("b").Available())
	assert.False(t, d.Thumbnail("l").Available(), "rows outside the top list have no image")
}

func TestBuild_ImageCancellation(t *testing.T) {
	src := &fakeSource{channel: channelFixture()}
	svc := newTestService(src, &fakeImages{err: context.Canceled})

	_, err := svc.Build(context.Background(), Request{Lookup: models.ByID("UCgo"), MaxVideos: 25, Images: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_RefreshForgetsEveryStep(t *testing.T) {
	src := &fakeSource{channel: channelFixture(), refs: []models.VideoReference{{VideoID: "v1"}}}
	svc := newTestService(src, &fakeImages{})

	_, err := svc.Build(context.Background(), Request{Lookup: models.ByID("UCgo"), MaxVideos: 25, Refresh: true})
	require.NoError(t, err, "invalidation failures are not fatal")
	assert.Equal(t, []string{"channel:id:UCgo", "videos:UCgo", "stats"}, src.forgotten)
}

func TestBuild_NoRefreshKeepsCache(t *testing.T) {
	src := &fakeSource{channel: channelFixture()}
	svc := newTestService(src, &fakeImages{})

	_, err := svc.Build(context.Background(), Request{Lookup: models.ByID("UCgo"), MaxVideos: 25})
	require.NoError(t, err)
	assert.Empty(t, src.forgotten)
}

func TestBuild_UpstreamErrors(t *testing.T) {
	boom := errors.New("quota exceeded")

	tests := []struct {
		name string
		src  *fakeSource
		msg  string
	}{
		{"channel", &fakeSource{channelErr: boom}, "failed to get channel info"},
		{"videos", &fakeSource{channel: channelFixture(), videosErr: boom}, "failed to get channel videos"},
		{"stats", &fakeSource{channel: channelFixture(), statsErr: boom}, "failed to get video statistics"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := newTestService(tc.src, &fakeImages{}).Build(context.Background(), Request{Lookup: models.ByID("UCgo"), MaxVideos: 25})
			assert.Nil(t, d)
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}
