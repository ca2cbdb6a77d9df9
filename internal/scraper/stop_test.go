package scraper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/newsminer/internal/news"
	"github.com/jonesrussell/newsminer/internal/scraper"
)

func TestShouldContinue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

	dated := func(t time.Time) news.Article {
		return news.Article{URL: "https://example.com/a", PublishedAt: t, DateStatus: news.DateOK}
	}
	undated := func(status news.DateStatus) news.Article {
		return news.Article{URL: "https://example.com/a", DateStatus: status}
	}

	thisMonth := time.Date(2026, time.August, 2, 9, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.July, 30, 9, 0, 0, 0, time.UTC)
	twoMonthsAgo := time.Date(2026, time.June, 14, 9, 0, 0, 0, time.UTC)
	lastYear := time.Date(2025, time.August, 26, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		batch        []news.Article
		monthsPeriod int
		want         bool
	}{
		{
			name:         "empty batch continues",
			batch:        nil,
			monthsPeriod: 0,
			want:         true,
		},
		{
			name:         "last date not found continues",
			batch:        []news.Article{dated(lastYear), undated(news.DateNotFound)},
			monthsPeriod: 0,
			want:         true,
		},
		{
			name:         "last date parse error continues",
			batch:        []news.Article{dated(lastYear), undated(news.DateParseError)},
			monthsPeriod: 0,
			want:         true,
		},
		{
			name:         "period zero same month continues",
			batch:        []news.Article{dated(thisMonth)},
			monthsPeriod: 0,
			want:         true,
		},
		{
			name:         "period zero previous month stops",
			batch:        []news.Article{dated(lastMonth)},
			monthsPeriod: 0,
			want:         false,
		},
		{
			name:         "period one same month continues",
			batch:        []news.Article{dated(thisMonth)},
			monthsPeriod: 1,
			want:         true,
		},
		{
			name:         "period one previous month stops",
			batch:        []news.Article{dated(lastMonth)},
			monthsPeriod: 1,
			want:         false,
		},
		{
			name:         "period three two months back continues",
			batch:        []news.Article{dated(twoMonthsAgo)},
			monthsPeriod: 3,
			want:         true,
		},
		{
			name:         "period two two months back stops",
			batch:        []news.Article{dated(twoMonthsAgo)},
			monthsPeriod: 2,
			want:         false,
		},
		{
			name:         "twelve month difference across years stops",
			batch:        []news.Article{dated(lastYear)},
			monthsPeriod: 12,
			want:         false,
		},
		{
			name:         "negative period never stops",
			batch:        []news.Article{dated(lastYear)},
			monthsPeriod: -1,
			want:         true,
		},
		{
			name: "only the last article decides",
			// An old article earlier in the page does not stop the run
			// while the last one is current.
			batch:        []news.Article{dated(lastYear), dated(thisMonth)},
			monthsPeriod: 1,
			want:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := scraper.ShouldContinue(tt.batch, tt.monthsPeriod, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
