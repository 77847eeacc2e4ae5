package dashboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"
)

const maxThumbnailBytes = 4 << 20

// Thumbnail is a downloaded image ready to inline, or the blank placeholder.
type Thumbnail struct {
	DataURI string `json:"-"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// Unavailable is the blank slot shown when an image cannot be loaded.
var Unavailable = Thumbnail{}

// Available reports whether the thumbnail holds an image.
func (t Thumbnail) Available() bool { return t.DataURI != "" }

// ThumbnailFetcher downloads images with a short fixed timeout.
type ThumbnailFetcher struct {
	client *http.Client
}

// NewThumbnailFetcher creates a fetcher whose downloads give up after timeout.
func NewThumbnailFetcher(timeout time.Duration) *ThumbnailFetcher {
	return &ThumbnailFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads and decodes the image at url. Network errors, bad status
// codes and undecodable content all yield Unavailable with a nil error; only
// cancellation of ctx is reported.
func (f *ThumbnailFetcher) Fetch(ctx context.Context, url string) (Thumbnail, error) {
	if url == "" {
		return Unavailable, nil
	}
	thumb, err := f.download(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return Unavailable, ctx.Err()
		}
		return Unavailable, nil
	}
	return thumb, nil
}

func (f *ThumbnailFetcher) download(ctx context.Context, url string) (Thumbnail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Unavailable, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Unavailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unavailable, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxThumbnailBytes))
	if err != nil {
		return Unavailable, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Unavailable, err
	}

	bounds := img.Bounds()
	return Thumbnail{
		DataURI: "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data),
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	}, nil
}
