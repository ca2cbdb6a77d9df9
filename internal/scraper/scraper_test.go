package scraper_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsminer/internal/browser"
	scraperconfig "github.com/jonesrussell/newsminer/internal/config/scraper"
	"github.com/jonesrussell/newsminer/internal/logger"
	"github.com/jonesrussell/newsminer/internal/scraper"
	"github.com/jonesrussell/newsminer/internal/timeparse"
)

// testNow is the fixed reference instant for controller tests.
var testNow = time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

func testConfig() *scraperconfig.Config {
	cfg := scraperconfig.New()
	cfg.Keyword = "climate"
	cfg.CategoryFilter = ""
	cfg.MonthsPeriod = 1
	cfg.Timeout = 50 * time.Millisecond
	cfg.RetryBaseDelay = time.Millisecond
	cfg.RetryMaxDelay = 5 * time.Millisecond
	return cfg
}

func newTestScraper(driver *fakeDriver, cfg *scraperconfig.Config) *scraper.Scraper {
	log := logger.NewNoOp()
	extractor := scraper.NewExtractor(&fakeImages{filename: "img.png"}, timeparse.NewParser(log), log)
	extractor.SetNow(func() time.Time { return testNow })
	s := scraper.New(driver, extractor, cfg, log)
	s.SetNow(func() time.Time { return testNow })
	return s
}

// pageOf builds a page of n cards whose last card carries the given
// timestamp texts.
func pageOf(n int, lastStampNow, lastStampStd string) []*fakeElement {
	cards := make([]*fakeElement, 0, n)
	for i := 0; i < n-1; i++ {
		cards = append(cards, newCard(cardSpec{
			url:      "https://example.com/article",
			title:    "Article",
			stampNow: "10 mins ago",
		}))
	}
	cards = append(cards, newCard(cardSpec{
		url:      "https://example.com/last",
		title:    "Last on page",
		stampNow: lastStampNow,
		stampStd: lastStampStd,
	}))
	return cards
}

func TestScraper_Run(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stops once results age past the window", func(t *testing.T) {
		t.Parallel()
		// Three pages: page one ends this month, page two ends two
		// months back, page three must never be fetched.
		driver := newFakeDriver(
			pageOf(3, "2 hours ago", ""),
			pageOf(2, "", "June 14"),
			pageOf(4, "", "January 2"),
		)
		s := newTestScraper(driver, testConfig())

		articles, err := s.Run(ctx)

		require.NoError(t, err)
		assert.Len(t, articles, 5, "pages one and two concatenated")
		assert.Equal(t, 1, driver.clickCount(".Pagination-nextPage"))
		assert.True(t, driver.closed, "browser released")
		assert.Equal(t, "climate", driver.inputs[".SearchOverlay-search-input"])
		assert.Contains(t, driver.selected, ".Select-input=Newest")
	})

	t.Run("period zero stops when results leave the current month", func(t *testing.T) {
		t.Parallel()
		driver := newFakeDriver(
			pageOf(2, "", "July 30"),
			pageOf(2, "", "July 1"),
		)
		cfg := testConfig()
		cfg.MonthsPeriod = 0
		s := newTestScraper(driver, cfg)

		articles, err := s.Run(ctx)

		require.NoError(t, err)
		assert.Len(t, articles, 2, "only the first page collected")
		assert.Zero(t, driver.clickCount(".Pagination-nextPage"))
	})

	t.Run("sentinel dates keep the run going", func(t *testing.T) {
		t.Parallel()
		// Page one's last card has no timestamp at all; the run cannot
		// decide and fetches page two.
		pageOne := pageOf(2, "", "")
		driver := newFakeDriver(pageOne, pageOf(2, "", "June 14"))
		s := newTestScraper(driver, testConfig())

		articles, err := s.Run(ctx)

		require.NoError(t, err)
		assert.Len(t, articles, 4)
	})

	t.Run("session open failure is fatal", func(t *testing.T) {
		t.Parallel()
		driver := newFakeDriver(pageOf(2, "2 hours ago", ""))
		driver.openErr = errors.New("chrome did not start")
		s := newTestScraper(driver, testConfig())

		articles, err := s.Run(ctx)

		require.Error(t, err)
		assert.ErrorContains(t, err, "opening browser session")
		assert.Nil(t, articles)
	})

	t.Run("search failure is fatal and navigates back to base", func(t *testing.T) {
		t.Parallel()
		driver := newFakeDriver(pageOf(2, "2 hours ago", ""))
		driver.clickErrs[".SearchOverlay-search-button"] = errors.New("overlay never opened")
		cfg := testConfig()
		s := newTestScraper(driver, cfg)

		_, err := s.Run(ctx)

		require.Error(t, err)
		assert.ErrorContains(t, err, "executing search")
		// Every failed attempt returns to the base URL: initial open plus
		// one navigation per attempt.
		assert.Equal(t, cfg.MaxAttempts+1, countOf(driver.navs, cfg.BaseURL))
		assert.True(t, driver.closed, "browser released on fatal failure")
	})

	t.Run("filter failure degrades to unfiltered results", func(t *testing.T) {
		t.Parallel()
		driver := newFakeDriver(pageOf(3, "", "July 30"))
		driver.clickErrs[".SearchResultsModule-filters-open"] = errors.New("no filter panel")
		cfg := testConfig()
		cfg.CategoryFilter = "technology"
		s := newTestScraper(driver, cfg)

		articles, err := s.Run(ctx)

		require.NoError(t, err)
		assert.Len(t, articles, 3)
	})

	t.Run("page failure returns partial results", func(t *testing.T) {
		t.Parallel()
		driver := newFakeDriver(
			pageOf(3, "2 hours ago", ""),
			pageOf(2, "2 hours ago", ""),
		)
		// Page two's results container never becomes visible.
		driver.onAdvance = func() {
			driver.waitErr = fmt.Errorf("%w: results container", browser.ErrWaitTimeout)
		}
		s := newTestScraper(driver, testConfig())

		articles, err := s.Run(ctx)

		require.NoError(t, err, "page failure ends the run, not the caller")
		assert.Len(t, articles, 3, "page one kept")
		assert.True(t, driver.closed)
	})
}

func countOf(values []string, want string) int {
	count := 0
	for _, v := range values {
		if v == want {
			count++
		}
	}
	return count
}
