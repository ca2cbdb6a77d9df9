package scraper

import (
	"time"

	"github.com/jonesrussell/newsminer/internal/news"
)

// ShouldContinue decides whether another page is worth fetching, given the
// batch just scraped. Results render newest-first, so the last article on
// the page is the oldest; the decision inspects only that one. When the
// batch is empty or the last article's date never parsed, no decision can be
// made and the answer is to continue.
//
// monthsPeriod semantics: 0 stops once results leave the current calendar
// month, N > 0 stops once the whole-month difference reaches N, and a
// negative value means no bound.
func ShouldContinue(batch []news.Article, monthsPeriod int, now time.Time) bool {
	if len(batch) == 0 {
		return true
	}

	last := batch[len(batch)-1]
	if !last.HasDate() {
		return true
	}

	oldest := last.PublishedAt
	diffMonths := (now.Year()-oldest.Year())*12 + int(now.Month()) - int(oldest.Month())

	switch {
	case monthsPeriod == 0 && diffMonths > 0:
		return false
	case monthsPeriod > 0 && diffMonths >= monthsPeriod:
		return false
	}
	return true
}
