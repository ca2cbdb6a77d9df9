package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/newsminer/internal/browser"
	scraperconfig "github.com/jonesrussell/newsminer/internal/config/scraper"
	"github.com/jonesrussell/newsminer/internal/logger"
	"github.com/jonesrussell/newsminer/internal/news"
	"github.com/jonesrussell/newsminer/internal/retry"
)

// Interface defines the scrape run entry point.
type Interface interface {
	// Run executes one full scrape for the configured keyword and returns
	// every article collected before the stop condition fired.
	Run(ctx context.Context) ([]news.Article, error)
}

// Ensure Scraper implements Interface
var _ Interface = (*Scraper)(nil)

// Scraper orchestrates one scrape run: open the session, execute the
// search, apply the category filter best-effort, then fetch pages until the
// results age past the configured window.
type Scraper struct {
	driver  browser.Driver
	fetcher *Fetcher
	cfg     *scraperconfig.Config
	policy  retry.Policy
	log     logger.Interface
	now     func() time.Time
}

// New creates a scraper over the given driver and extractor.
func New(driver browser.Driver, extractor *Extractor, cfg *scraperconfig.Config, log logger.Interface) *Scraper {
	policy := retry.Policy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		MaxDelay:    cfg.RetryMaxDelay,
		RetryIf:     IsTransient,
	}
	return &Scraper{
		driver:  driver,
		fetcher: NewFetcher(driver, extractor, cfg.Timeout, log),
		cfg:     cfg,
		policy:  policy,
		log:     log,
		now:     time.Now,
	}
}

// Run executes the scrape. Session-open and search failures are fatal; a
// filter failure degrades to unfiltered results; a page failure ends the run
// early with whatever was collected.
func (s *Scraper) Run(ctx context.Context) ([]news.Article, error) {
	if err := s.openSession(ctx); err != nil {
		return nil, fmt.Errorf("opening browser session: %w", err)
	}
	defer func() {
		if closeErr := s.driver.Close(); closeErr != nil {
			s.log.Error("closing browser session", "error", closeErr)
		}
	}()

	s.log.Info("starting scrape run", "keyword", s.cfg.Keyword)
	if err := s.executeSearch(ctx); err != nil {
		return nil, fmt.Errorf("executing search: %w", err)
	}

	if s.cfg.CategoryFilter != "" {
		if err := s.applyFilter(ctx); err != nil {
			s.log.Warn("category filter failed, proceeding unfiltered",
				"category", s.cfg.CategoryFilter, "error", err)
		}
	}

	session := NewSession(s.log)
	for session.Continues() {
		s.fetchNext(ctx, session)
	}
	return session.Articles(), nil
}

// fetchNext runs one iteration of the pagination loop.
func (s *Scraper) fetchNext(ctx context.Context, session *Session) {
	page := session.Page()
	s.log.Info("processing results page", "page", page)

	batch, err := retry.Do(ctx, s.policy, func() ([]news.Article, error) {
		return s.fetcher.FetchPage(ctx)
	})
	if err != nil {
		s.log.Error("page fetch failed, ending run with partial results",
			"page", page, "error", err)
		session.Stop()
		return
	}
	session.Append(batch)

	if !ShouldContinue(batch, s.cfg.MonthsPeriod, s.now()) {
		s.log.Info("results aged past the configured window", "page", page)
		session.Stop()
		return
	}

	if err := s.nextPage(ctx); err != nil {
		s.log.Error("pagination failed, ending run with partial results",
			"page", page, "error", err)
		session.Stop()
		return
	}
	session.AdvancePage()
}

// openSession launches the browser on the base search URL. Retried; failure
// after exhaustion is fatal for the run.
func (s *Scraper) openSession(ctx context.Context) error {
	_, err := retry.Do(ctx, s.policy, func() (struct{}, error) {
		if openErr := s.driver.Open(ctx, s.cfg.BaseURL); openErr != nil {
			return struct{}{}, Transient(openErr)
		}
		return struct{}{}, nil
	})
	return err
}

// executeSearch opens the search overlay, submits the keyword, and sorts
// newest-first. Each failed attempt navigates back to the base URL before
// the retry so the overlay starts from a known state.
func (s *Scraper) executeSearch(ctx context.Context) error {
	_, err := retry.Do(ctx, s.policy, func() (struct{}, error) {
		if searchErr := s.trySearch(ctx); searchErr != nil {
			if navErr := s.driver.Navigate(ctx, s.cfg.BaseURL); navErr != nil {
				s.log.Warn("navigating back to base URL failed", "error", navErr)
			}
			return struct{}{}, Transient(searchErr)
		}
		return struct{}{}, nil
	})
	return err
}

// trySearch performs one search attempt.
func (s *Scraper) trySearch(ctx context.Context) error {
	dismissOverlays(ctx, s.driver, s.log)

	if err := s.driver.Click(ctx, selectorSearchButton); err != nil {
		return fmt.Errorf("opening search overlay: %w", err)
	}
	if err := s.driver.Input(ctx, selectorSearchInput, s.cfg.Keyword); err != nil {
		return fmt.Errorf("typing keyword: %w", err)
	}
	if err := s.driver.Click(ctx, selectorSearchSubmit); err != nil {
		return fmt.Errorf("submitting search: %w", err)
	}

	s.log.Info("sorting results by newest")
	if err := s.driver.SelectByText(ctx, selectorSortSelect, sortNewest); err != nil {
		return fmt.Errorf("selecting newest sort: %w", err)
	}
	return nil
}

// applyFilter opens the filter panel and checks every category whose label
// contains the configured name, case-insensitively. Best-effort: the caller
// degrades to unfiltered results when this fails after retries.
func (s *Scraper) applyFilter(ctx context.Context) error {
	s.log.Info("applying category filter", "category", s.cfg.CategoryFilter)
	_, err := retry.Do(ctx, s.policy, func() (struct{}, error) {
		if filterErr := s.tryFilter(ctx); filterErr != nil {
			return struct{}{}, Transient(filterErr)
		}
		return struct{}{}, nil
	})
	return err
}

// tryFilter performs one filter attempt.
func (s *Scraper) tryFilter(ctx context.Context) error {
	if err := s.driver.Refresh(ctx); err != nil {
		return fmt.Errorf("refreshing before filter: %w", err)
	}
	dismissOverlays(ctx, s.driver, s.log)

	if err := s.driver.Click(ctx, selectorFiltersOpen); err != nil {
		return fmt.Errorf("opening filter panel: %w", err)
	}
	if err := s.driver.Click(ctx, selectorFilterContent); err != nil {
		return fmt.Errorf("expanding filter content: %w", err)
	}

	labels, err := s.driver.FindAll(ctx, selectorCheckboxLabel)
	if err != nil {
		return fmt.Errorf("listing category checkboxes: %w", err)
	}

	wanted := strings.ToLower(s.cfg.CategoryFilter)
	for _, label := range labels {
		text, textErr := label.Text(ctx)
		if textErr != nil {
			continue
		}
		if strings.Contains(strings.ToLower(text), wanted) {
			if clickErr := label.Click(ctx); clickErr != nil {
				return fmt.Errorf("checking category %q: %w", text, clickErr)
			}
			s.log.Info("category checked", "category", strings.TrimSpace(text))
		}
	}

	if err := s.driver.Click(ctx, selectorFiltersApply); err != nil {
		return fmt.Errorf("applying filter: %w", err)
	}
	return nil
}

// nextPage clicks through to the next results page. A failed attempt
// refreshes the current page before the retry.
func (s *Scraper) nextPage(ctx context.Context) error {
	s.log.Info("navigating to the next results page")
	_, err := retry.Do(ctx, s.policy, func() (struct{}, error) {
		if clickErr := s.driver.Click(ctx, selectorNextPage); clickErr != nil {
			if refreshErr := s.driver.Refresh(ctx); refreshErr != nil {
				s.log.Warn("refresh after failed pagination failed", "error", refreshErr)
			}
			return struct{}{}, Transient(clickErr)
		}
		return struct{}{}, nil
	})
	return err
}
