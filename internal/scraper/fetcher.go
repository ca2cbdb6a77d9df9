package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/newsminer/internal/browser"
	"github.com/jonesrussell/newsminer/internal/logger"
	"github.com/jonesrussell/newsminer/internal/news"
)

// Fetcher drives one page-load cycle: reload, dismiss overlays, wait for the
// results container, and extract every result card on the page.
type Fetcher struct {
	driver    browser.Driver
	extractor *Extractor
	timeout   time.Duration
	log       logger.Interface
}

// NewFetcher creates a page fetcher.
func NewFetcher(driver browser.Driver, extractor *Extractor, timeout time.Duration, log logger.Interface) *Fetcher {
	return &Fetcher{
		driver:    driver,
		extractor: extractor,
		timeout:   timeout,
		log:       log,
	}
}

// FetchPage returns the articles on the current results page in display
// order. An empty page is valid input to the stop condition, not an error.
// Container-visibility timeouts come back classified transient so the retry
// policy re-attempts the cycle.
func (f *Fetcher) FetchPage(ctx context.Context) ([]news.Article, error) {
	if err := f.driver.Refresh(ctx); err != nil {
		return nil, Transient(fmt.Errorf("refreshing results page: %w", err))
	}

	dismissOverlays(ctx, f.driver, f.log)

	if err := f.driver.WaitVisible(ctx, selectorResults, f.timeout); err != nil {
		if errors.Is(err, browser.ErrWaitTimeout) {
			return nil, Transient(err)
		}
		return nil, fmt.Errorf("waiting for results container: %w", err)
	}

	container, err := f.driver.Find(ctx, selectorResults)
	if err != nil {
		return nil, Transient(fmt.Errorf("locating results container: %w", err))
	}

	items, err := container.FindAll(ctx, selectorResultItem)
	if err != nil {
		return nil, Transient(fmt.Errorf("enumerating result cards: %w", err))
	}
	f.log.Info("fetched result cards", "count", len(items))

	batch := make([]news.Article, 0, len(items))
	for _, item := range items {
		batch = append(batch, f.extractor.Extract(ctx, item))
	}
	return batch, nil
}

// dismissOverlays closes the consent banner and any fancybox popup. Both are
// best-effort: their absence is the normal case.
func dismissOverlays(ctx context.Context, driver browser.Driver, log logger.Interface) {
	if err := driver.Click(ctx, selectorConsentButton); err != nil {
		log.Debug("no consent banner to dismiss", "error", err)
	}
	if err := driver.Click(ctx, selectorFancyboxClose); err != nil {
		log.Debug("no fancybox popup to dismiss", "error", err)
	}
}
