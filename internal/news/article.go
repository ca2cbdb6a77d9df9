// Package news provides the domain model for scraped news content.
package news

import "time"

// ImageNotAvailable is the sentinel stored in Article.Image when the promo
// image could not be located or downloaded.
const ImageNotAvailable = "Image Not Available"

// DateStatus describes the outcome of publish-date extraction for an article.
type DateStatus string

const (
	// DateOK means PublishedAt holds a parsed instant.
	DateOK DateStatus = "ok"
	// DateNotFound means the result element carried no timestamp at all.
	DateNotFound DateStatus = "not_found"
	// DateParseError means a timestamp was present but could not be parsed.
	DateParseError DateStatus = "parse_error"
)

// Article represents one scraped search result.
type Article struct {
	// URL of the article page. The only required field: an article with an
	// empty URL is unusable downstream.
	URL string `json:"url" db:"url"`
	// Title of the article.
	Title string `json:"title" db:"title"`
	// Description shown below the title. Empty when the result has none.
	Description string `json:"description,omitempty" db:"description"`
	// Image is the filename of the downloaded promo image, or the
	// ImageNotAvailable sentinel.
	Image string `json:"image" db:"image"`
	// PublishedAt is the publish instant at minute precision. Only
	// meaningful when DateStatus is DateOK.
	PublishedAt time.Time `json:"published_at" db:"published_at"`
	// DateStatus records whether PublishedAt was extracted and parsed.
	DateStatus DateStatus `json:"date_status" db:"date_status"`
}

// HasDate reports whether the article carries a usable publish instant.
func (a *Article) HasDate() bool {
	return a.DateStatus == DateOK
}
