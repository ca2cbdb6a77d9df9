package images_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsminer/internal/images"
	"github.com/jonesrussell/newsminer/internal/logger"
)

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	payload := []byte("png-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/promo.jpg":
			_, _ = w.Write(payload)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	ctx := context.Background()

	t.Run("stores the image under the article slug", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "imgs")
		d := images.NewDownloader(dir, 5*time.Second, logger.NewNoOp())

		filename, err := d.Download(ctx,
			"https://example.com/politics/some-article", server.URL+"/promo.jpg")

		require.NoError(t, err)
		assert.Equal(t, "some-article.png", filename)

		stored, err := os.ReadFile(filepath.Join(dir, filename))
		require.NoError(t, err)
		assert.Equal(t, payload, stored)
	})

	t.Run("trailing slash in article URL is ignored", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		d := images.NewDownloader(dir, 5*time.Second, logger.NewNoOp())

		filename, err := d.Download(ctx,
			"https://example.com/some-article/", server.URL+"/promo.jpg")

		require.NoError(t, err)
		assert.Equal(t, "some-article.png", filename)
	})

	t.Run("non-200 response is an error", func(t *testing.T) {
		t.Parallel()
		d := images.NewDownloader(t.TempDir(), 5*time.Second, logger.NewNoOp())

		_, err := d.Download(ctx, "https://example.com/a", server.URL+"/missing.jpg")

		require.Error(t, err)
		assert.ErrorContains(t, err, "status 404")
	})

	t.Run("unreachable host is an error", func(t *testing.T) {
		t.Parallel()
		d := images.NewDownloader(t.TempDir(), 100*time.Millisecond, logger.NewNoOp())

		_, err := d.Download(ctx, "https://example.com/a", "http://127.0.0.1:1/promo.jpg")

		require.Error(t, err)
	})
}
