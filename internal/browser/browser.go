// Package browser abstracts browser automation behind small driver and
// element interfaces. The scraper core depends only on these; the chromedp
// implementation lives alongside and any compliant backend is substitutable.
package browser

import (
	"context"
	"errors"
	"time"
)

// ErrElementNotFound is returned when a selector matches nothing.
var ErrElementNotFound = errors.New("element not found")

// ErrWaitTimeout is returned when an element does not become visible in time.
var ErrWaitTimeout = errors.New("wait for element timed out")

// ErrAttributeMissing is returned when an element lacks a requested attribute.
var ErrAttributeMissing = errors.New("attribute missing")

// Element is an opaque handle to a DOM node on the current page. Handles go
// stale when the page reloads; callers re-enumerate after navigation.
type Element interface {
	// Find returns the first descendant matching the CSS selector.
	Find(ctx context.Context, selector string) (Element, error)
	// FindAll returns all descendants matching the CSS selector.
	FindAll(ctx context.Context, selector string) ([]Element, error)
	// Click clicks the element.
	Click(ctx context.Context) error
	// Text returns the element's rendered text content.
	Text(ctx context.Context) (string, error)
	// Attr returns the value of the named attribute.
	Attr(ctx context.Context, name string) (string, error)
}

// Driver drives a single exclusively-owned browser session.
type Driver interface {
	// Open launches the browser and loads the given URL.
	Open(ctx context.Context, url string) error
	// Navigate loads the given URL in the open session.
	Navigate(ctx context.Context, url string) error
	// Refresh reloads the current page.
	Refresh(ctx context.Context) error
	// Find returns the first element matching the CSS selector.
	Find(ctx context.Context, selector string) (Element, error)
	// FindAll returns all elements matching the CSS selector.
	FindAll(ctx context.Context, selector string) ([]Element, error)
	// Click clicks the first element matching the CSS selector.
	Click(ctx context.Context, selector string) error
	// Input types text into the first element matching the CSS selector.
	Input(ctx context.Context, selector, text string) error
	// SelectByText picks the option with the given visible label from the
	// select element matching the CSS selector.
	SelectByText(ctx context.Context, selector, label string) error
	// WaitVisible blocks until the selector is visible or the timeout
	// elapses, returning ErrWaitTimeout in the latter case.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	// Close shuts the browser down. Safe to call when Open failed.
	Close() error
}
