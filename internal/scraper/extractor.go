package scraper

import (
	"context"
	"time"

	"github.com/jonesrussell/newsminer/internal/browser"
	"github.com/jonesrussell/newsminer/internal/logger"
	"github.com/jonesrussell/newsminer/internal/news"
)

// ImageFetcher downloads a promo image and returns the stored filename.
type ImageFetcher interface {
	Download(ctx context.Context, articleURL, imgSrc string) (string, error)
}

// DateParser turns a rendered timestamp string into an instant.
type DateParser interface {
	Parse(raw string, ref time.Time) (time.Time, error)
}

// Extractor turns one result element into an Article. Extraction never fails
// as a whole: each field degrades to its sentinel independently, so one
// broken card cannot drop the batch.
type Extractor struct {
	images ImageFetcher
	dates  DateParser
	log    logger.Interface
	now    func() time.Time
}

// NewExtractor creates an article extractor.
func NewExtractor(images ImageFetcher, dates DateParser, log logger.Interface) *Extractor {
	return &Extractor{
		images: images,
		dates:  dates,
		log:    log,
		now:    time.Now,
	}
}

// Extract reads the article fields from a result element.
func (e *Extractor) Extract(ctx context.Context, el browser.Element) news.Article {
	article := news.Article{
		URL:   e.extractURL(ctx, el),
		Image: news.ImageNotAvailable,
	}

	// The human title lives in a tracking attribute, not a text node.
	if title, err := el.Attr(ctx, attrTitle); err == nil {
		article.Title = title
	}

	if desc, err := e.extractText(ctx, el, selectorDescription); err == nil {
		article.Description = desc
	}

	if filename, err := e.extractImage(ctx, el, article.URL); err == nil {
		article.Image = filename
	} else {
		e.log.Debug("promo image unavailable", "url", article.URL, "error", err)
	}

	article.PublishedAt, article.DateStatus = e.extractPublished(ctx, el)

	return article
}

// extractURL reads the anchor href. An empty URL marks the article unusable
// downstream but does not abort extraction.
func (e *Extractor) extractURL(ctx context.Context, el browser.Element) string {
	link, err := el.Find(ctx, selectorLink)
	if err != nil {
		e.log.Warn("result card has no link element", "error", err)
		return ""
	}
	href, err := link.Attr(ctx, "href")
	if err != nil {
		e.log.Warn("result card link has no href", "error", err)
		return ""
	}
	return href
}

// extractText reads the text of the first descendant matching selector.
func (e *Extractor) extractText(ctx context.Context, el browser.Element, selector string) (string, error) {
	child, err := el.Find(ctx, selector)
	if err != nil {
		return "", err
	}
	return child.Text(ctx)
}

// extractImage locates the promo image and downloads it.
func (e *Extractor) extractImage(ctx context.Context, el browser.Element, articleURL string) (string, error) {
	img, err := el.Find(ctx, selectorImage)
	if err != nil {
		return "", err
	}
	src, err := img.Attr(ctx, "src")
	if err != nil {
		return "", err
	}
	return e.images.Download(ctx, articleURL, src)
}

// extractPublished reads the timestamp, preferring the relative "now"
// template over the standard one, and parses whichever is present.
func (e *Extractor) extractPublished(ctx context.Context, el browser.Element) (time.Time, news.DateStatus) {
	raw, err := e.extractText(ctx, el, selectorTimestampNow)
	if err != nil {
		raw, err = e.extractText(ctx, el, selectorTimestamp)
	}
	if err != nil {
		return time.Time{}, news.DateNotFound
	}

	parsed, err := e.dates.Parse(raw, e.now())
	if err != nil {
		return time.Time{}, news.DateParseError
	}
	return parsed, news.DateOK
}
