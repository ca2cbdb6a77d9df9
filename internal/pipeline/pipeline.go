// Package pipeline wires one end-to-end extraction: scrape, post-process,
// export, persist. Both the one-shot and scheduled commands run through it.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/newsminer/internal/browser"
	"github.com/jonesrussell/newsminer/internal/config"
	"github.com/jonesrussell/newsminer/internal/export"
	"github.com/jonesrussell/newsminer/internal/images"
	"github.com/jonesrussell/newsminer/internal/logger"
	"github.com/jonesrussell/newsminer/internal/scraper"
	"github.com/jonesrussell/newsminer/internal/storage"
	"github.com/jonesrussell/newsminer/internal/textproc"
	"github.com/jonesrussell/newsminer/internal/timeparse"
)

// Summary reports what one run produced.
type Summary struct {
	RunID      string
	Keyword    string
	Results    []textproc.Result
	ExportPath string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Run executes one full extraction and returns its summary. A run that
// scrapes nothing skips post-processing, export, and persistence.
func Run(ctx context.Context, cfg config.Interface, log logger.Interface) (*Summary, error) {
	scraperCfg := cfg.GetScraperConfig()
	outputCfg := cfg.GetOutputConfig()

	imagesDir := filepath.Join(outputCfg.Dir, outputCfg.ImagesSubdir)
	downloader := images.NewDownloader(imagesDir, scraperCfg.Timeout, log)
	extractor := scraper.NewExtractor(downloader, timeparse.NewParser(log), log)
	driver := browser.NewChrome(cfg.GetBrowserConfig(), log)
	s := scraper.New(driver, extractor, scraperCfg, log)

	summary := &Summary{
		RunID:     uuid.NewString(),
		Keyword:   scraperCfg.Keyword,
		StartedAt: time.Now(),
	}

	articles, err := s.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("scraping: %w", err)
	}
	summary.FinishedAt = time.Now()

	if len(articles) == 0 {
		log.Warn("no articles scraped, skipping post-processing and export")
		return summary, nil
	}

	results, err := textproc.NewProcessor(log).Process(articles, scraperCfg.Keyword)
	if err != nil {
		return nil, fmt.Errorf("post-processing: %w", err)
	}
	summary.Results = results

	path, err := export.NewExporter(outputCfg.Dir, log).WriteCSV(results, summary.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("exporting: %w", err)
	}
	summary.ExportPath = path

	if storageCfg := cfg.GetStorageConfig(); storageCfg.Enabled() {
		// A failed save does not fail the run; the CSV already exists.
		if err := persist(ctx, storageCfg.Path, summary, scraperCfg.CategoryFilter, log); err != nil {
			log.Error("persisting run failed", "error", err)
		}
	}
	return summary, nil
}

// persist stores the run in the configured database.
func persist(ctx context.Context, path string, summary *Summary, category string, log logger.Interface) error {
	store, err := storage.Open(path, log)
	if err != nil {
		return err
	}
	defer store.Close()

	run := storage.Run{
		ID:           summary.RunID,
		Keyword:      summary.Keyword,
		Category:     category,
		StartedAt:    summary.StartedAt,
		FinishedAt:   summary.FinishedAt,
		ArticleCount: len(summary.Results),
	}
	return store.SaveRun(ctx, run, summary.Results)
}
