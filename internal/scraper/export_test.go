package scraper

import "time"

// SetNow overrides the stop-condition clock.
func (s *Scraper) SetNow(now func() time.Time) { s.now = now }

// SetNow overrides the extraction reference clock.
func (e *Extractor) SetNow(now func() time.Time) { e.now = now }
