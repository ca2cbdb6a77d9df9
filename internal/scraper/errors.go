// Package scraper implements the scrape run: search execution, category
// filtering, paginated result fetching, and the time-window stop condition.
package scraper

import (
	"errors"
	"fmt"
)

// ErrTransient classifies a browser interaction failure as worth retrying:
// element not visible yet, stale handle, page still loading. Anything not
// wrapped with it propagates through the retry policy immediately.
var ErrTransient = errors.New("transient scraping failure")

// Transient wraps err so the retry policy re-attempts the operation.
func Transient(err error) error {
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// IsTransient reports whether err is classified as transient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
