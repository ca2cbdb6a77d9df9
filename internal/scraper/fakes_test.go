package scraper_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/newsminer/internal/browser"
)

// fakeElement is a scripted DOM element.
type fakeElement struct {
	attrs    map[string]string
	text     string
	children map[string][]*fakeElement
	clickErr error
	clicked  int
}

var _ browser.Element = (*fakeElement)(nil)

func (e *fakeElement) Find(_ context.Context, selector string) (browser.Element, error) {
	if kids := e.children[selector]; len(kids) > 0 {
		return kids[0], nil
	}
	return nil, fmt.Errorf("%w: %s", browser.ErrElementNotFound, selector)
}

func (e *fakeElement) FindAll(_ context.Context, selector string) ([]browser.Element, error) {
	kids := e.children[selector]
	out := make([]browser.Element, 0, len(kids))
	for _, kid := range kids {
		out = append(out, kid)
	}
	return out, nil
}

func (e *fakeElement) Click(context.Context) error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicked++
	return nil
}

func (e *fakeElement) Text(context.Context) (string, error) {
	return e.text, nil
}

func (e *fakeElement) Attr(_ context.Context, name string) (string, error) {
	if value, ok := e.attrs[name]; ok {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s", browser.ErrAttributeMissing, name)
}

// card builds a scripted result element. Empty arguments omit the matching
// sub-element entirely.
type cardSpec struct {
	url       string
	title     string
	desc      string
	imgSrc    string
	stampNow  string // relative timestamp text, e.g. "2 hours ago"
	stampStd  string // absolute timestamp text, e.g. "June 14"
	brokenURL bool   // emit a link element without an href
}

func newCard(spec cardSpec) *fakeElement {
	el := &fakeElement{
		attrs:    map[string]string{},
		children: map[string][]*fakeElement{},
	}
	if spec.title != "" {
		el.attrs["data-gtm-region"] = spec.title
	}
	if spec.url != "" || spec.brokenURL {
		link := &fakeElement{attrs: map[string]string{}}
		if !spec.brokenURL {
			link.attrs["href"] = spec.url
		}
		el.children[".Link"] = []*fakeElement{link}
	}
	if spec.desc != "" {
		el.children[".PagePromo-description"] = []*fakeElement{{text: spec.desc}}
	}
	if spec.imgSrc != "" {
		el.children[".Image"] = []*fakeElement{{attrs: map[string]string{"src": spec.imgSrc}}}
	}
	if spec.stampNow != "" {
		el.children[".Timestamp-template-now"] = []*fakeElement{{text: spec.stampNow}}
	}
	if spec.stampStd != "" {
		el.children[".Timestamp-template"] = []*fakeElement{{text: spec.stampStd}}
	}
	return el
}

// fakeDriver is a scripted browser serving result pages in sequence. Clicking
// the pagination selector advances to the next page.
type fakeDriver struct {
	mu sync.Mutex

	pages   [][]*fakeElement
	pageIdx int

	openErr   error
	clickErrs map[string]error // per-selector scripted failures
	waitErr   error
	selectErr error
	onAdvance func() // called after pagination advances

	opened   bool
	closed   bool
	clicks   []string
	inputs   map[string]string
	navs     []string
	refreshs int
	selected []string
}

var _ browser.Driver = (*fakeDriver)(nil)

func newFakeDriver(pages ...[]*fakeElement) *fakeDriver {
	return &fakeDriver{
		pages:     pages,
		clickErrs: map[string]error{},
		inputs:    map[string]string{},
	}
}

func (d *fakeDriver) Open(_ context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.openErr != nil {
		return d.openErr
	}
	d.opened = true
	d.navs = append(d.navs, url)
	return nil
}

func (d *fakeDriver) Navigate(_ context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.navs = append(d.navs, url)
	return nil
}

func (d *fakeDriver) Refresh(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshs++
	return nil
}

func (d *fakeDriver) Find(_ context.Context, selector string) (browser.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if selector != ".SearchResultsModule-results" {
		return nil, fmt.Errorf("%w: %s", browser.ErrElementNotFound, selector)
	}
	if d.pageIdx >= len(d.pages) {
		return &fakeElement{children: map[string][]*fakeElement{}}, nil
	}
	return &fakeElement{
		children: map[string][]*fakeElement{".PagePromo": d.pages[d.pageIdx]},
	}, nil
}

func (d *fakeDriver) FindAll(_ context.Context, selector string) ([]browser.Element, error) {
	return nil, fmt.Errorf("%w: %s", browser.ErrElementNotFound, selector)
}

func (d *fakeDriver) Click(_ context.Context, selector string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clicks = append(d.clicks, selector)
	if err, ok := d.clickErrs[selector]; ok {
		return err
	}
	switch selector {
	case "#onetrust-accept-btn-handler", ".fancybox-item.fancybox-close":
		return fmt.Errorf("%w: %s", browser.ErrElementNotFound, selector)
	case ".Pagination-nextPage":
		if d.pageIdx+1 >= len(d.pages) {
			return fmt.Errorf("%w: %s", browser.ErrElementNotFound, selector)
		}
		d.pageIdx++
		if d.onAdvance != nil {
			d.onAdvance()
		}
	}
	return nil
}

func (d *fakeDriver) Input(_ context.Context, selector, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputs[selector] = text
	return nil
}

func (d *fakeDriver) SelectByText(_ context.Context, selector, label string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selectErr != nil {
		return d.selectErr
	}
	d.selected = append(d.selected, selector+"="+label)
	return nil
}

func (d *fakeDriver) WaitVisible(_ context.Context, _ string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.waitErr
}

func (d *fakeDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// clickCount counts recorded clicks on a selector.
func (d *fakeDriver) clickCount(selector string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, click := range d.clicks {
		if click == selector {
			count++
		}
	}
	return count
}

// fakeImages is a scripted ImageFetcher.
type fakeImages struct {
	filename string
	err      error
	calls    int
}

func (f *fakeImages) Download(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.filename, nil
}

// errImageDown simulates a failed image download.
var errImageDown = errors.New("image host unreachable")
