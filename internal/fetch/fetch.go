// Package fetch downloads a source flyer image from a URL so it can be
// staged without a manual upload.
package fetch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeout is the default timeout for image downloads.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxSize is the default maximum image size (10MB).
	DefaultMaxSize = 10 * 1024 * 1024
)

// Downloader fetches flyer images over HTTP.
type Downloader struct {
	client  *resty.Client
	maxSize int64
}

// NewDownloader creates a Downloader with default settings. The client is
// configured not to buffer response bodies so the size limit can be enforced
// while reading.
func NewDownloader() *Downloader {
	return &Downloader{
		client:  resty.New().SetTimeout(DefaultTimeout).SetDoNotParseResponse(true),
		maxSize: DefaultMaxSize,
	}
}

// WithTimeout sets a custom download timeout.
func (d *Downloader) WithTimeout(timeout time.Duration) *Downloader {
	d.client.SetTimeout(timeout)
	return d
}

// WithMaxSize sets a custom maximum file size.
func (d *Downloader) WithMaxSize(maxSize int64) *Downloader {
	d.maxSize = maxSize
	return d
}

// Fetch downloads the image at url and returns its bytes and mime type.
// Non-image content is rejected. Oversized payloads are rejected from the
// Content-Length header when the server declares one; the read itself is
// bounded either way, so at most maxSize+1 bytes ever reach memory.
func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := d.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.RawBody().Close()

	if resp.StatusCode() != 200 {
		return nil, "", fmt.Errorf("download failed: status %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if i := strings.Index(contentType, ";"); i != -1 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !strings.HasPrefix(contentType, "image/") && contentType != "application/pdf" {
		return nil, "", fmt.Errorf("invalid content type: expected image/*, got %s", contentType)
	}

	if cl := resp.RawResponse.ContentLength; cl > d.maxSize {
		return nil, "", fmt.Errorf("image too large: %d bytes (max %d)", cl, d.maxSize)
	}

	body, err := io.ReadAll(io.LimitReader(resp.RawBody(), d.maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(body)) > d.maxSize {
		return nil, "", fmt.Errorf("image too large: exceeds %d bytes", d.maxSize)
	}
	if len(body) == 0 {
		return nil, "", fmt.Errorf("empty response body")
	}

	log.Debug().Str("url", url).Int("bytes", len(body)).Str("contentType", contentType).Msg("downloaded source image")
	return body, contentType, nil
}
