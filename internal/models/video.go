package models

import "time"

// VideoReference is the lightweight listing record for a video
type VideoReference struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"publishedAt"`
	ThumbnailURL string    `json:"thumbnailUrl"`
}

// VideoStatsRow is a video enriched with engagement counts.
// Counts are zero, never absent, when the API omits them.
type VideoStatsRow struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"publishedAt"`
	Views        uint64    `json:"views"`
	Likes        uint64    `json:"likes"`
	Comments     uint64    `json:"comments"`
	Duration     string    `json:"duration"`
	ThumbnailURL string    `json:"thumbnailUrl"`
}

// WatchURL returns the public watch page for the video.
func (v VideoStatsRow) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.VideoID
}
