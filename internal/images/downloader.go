// Package images downloads article promo images into the run output folder.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonesrussell/newsminer/internal/logger"
)

// maxImageBytes limits the size of a downloaded image.
const maxImageBytes = 20 * 1024 * 1024 // 20 MB

// Downloader fetches images over HTTP and stores them on disk.
type Downloader struct {
	client *http.Client
	dir    string
	log    logger.Interface
}

// NewDownloader creates a downloader writing into dir.
func NewDownloader(dir string, timeout time.Duration, log logger.Interface) *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: timeout},
		dir:    dir,
		log:    log,
	}
}

// Download fetches imgSrc and stores it as "<slug>.png", where slug is the
// last path segment of articleURL. Returns the stored filename.
func (d *Downloader) Download(ctx context.Context, articleURL, imgSrc string) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating image folder: %w", err)
	}

	filename := slug(articleURL) + ".png"
	path := filepath.Join(d.dir, filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgSrc, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("building image request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching image %s: %w", imgSrc, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching image %s: status %d", imgSrc, resp.StatusCode)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, io.LimitReader(resp.Body, maxImageBytes)); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}

	d.log.Debug("downloaded image", "file", filename, "src", imgSrc)
	return filename, nil
}

// slug derives a filesystem-safe name from the article URL's last segment.
func slug(articleURL string) string {
	trimmed := strings.TrimRight(articleURL, "/")
	segment := trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		segment = trimmed[idx+1:]
	}
	if segment == "" {
		return "article"
	}
	return segment
}
