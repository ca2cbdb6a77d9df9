package scraper

import (
	"sync"
	"time"

	"github.com/jonesrussell/newsminer/internal/logger"
	"github.com/jonesrussell/newsminer/internal/news"
)

// Session holds the mutable state of one scrape run: the current page
// number, the continue flag, and the accumulated articles. It lives for one
// browser session and is discarded afterwards.
type Session struct {
	mu        sync.RWMutex
	page      int
	continues bool
	articles  []news.Article
	startTime time.Time
	log       logger.Interface
}

// NewSession creates run state positioned at page one.
func NewSession(log logger.Interface) *Session {
	return &Session{
		page:      1,
		continues: true,
		startTime: time.Now(),
		log:       log,
	}
}

// Page returns the current page number.
func (s *Session) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// AdvancePage increments the page counter after a successful navigation.
func (s *Session) AdvancePage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page++
}

// Continues reports whether the run should fetch another page.
func (s *Session) Continues() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.continues
}

// Stop marks the run as finished and logs the totals.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.continues {
		return
	}
	s.continues = false
	s.log.Info("scrape run finished",
		"pages", s.page,
		"articles", len(s.articles),
		"duration", time.Since(s.startTime))
}

// Append adds a fetched batch to the accumulated articles, preserving page
// display order.
func (s *Session) Append(batch []news.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = append(s.articles, batch...)
}

// Articles returns a copy of the accumulated articles.
func (s *Session) Articles() []news.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]news.Article, len(s.articles))
	copy(out, s.articles)
	return out
}
