// Package textproc post-processes scraped articles for reporting: keyword
// occurrence counts and money-mention detection over title and description.
package textproc

import (
	"fmt"
	"regexp"

	"github.com/jonesrussell/newsminer/internal/logger"
	"github.com/jonesrussell/newsminer/internal/news"
)

// moneyRe matches "$12,345.67", "10 dollars", and "10 USD" style mentions.
var moneyRe = regexp.MustCompile(`(?i)(\$[0-9]+,?[0-9]*\.?[0-9]*)|([0-9]+ dollars)|([0-9]+ USD)`)

// Result is an article enriched with post-processing fields.
type Result struct {
	news.Article
	// KeywordMatches counts whole-word occurrences of the search keyword
	// in the title and description.
	KeywordMatches int `json:"keyword_matches" db:"keyword_matches"`
	// ContainsMoney reports whether the title or description mentions an
	// amount of money.
	ContainsMoney bool `json:"contains_money" db:"contains_money"`
}

// Processor enriches scraped articles.
type Processor struct {
	log logger.Interface
}

// NewProcessor creates a post-processor.
func NewProcessor(log logger.Interface) *Processor {
	return &Processor{log: log}
}

// Process enriches every article with keyword and money fields.
func (p *Processor) Process(articles []news.Article, keyword string) ([]Result, error) {
	keywordRe, err := regexp.Compile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(keyword)))
	if err != nil {
		return nil, fmt.Errorf("compiling keyword pattern: %w", err)
	}

	results := make([]Result, 0, len(articles))
	for _, article := range articles {
		combined := article.Title + " " + article.Description
		results = append(results, Result{
			Article:        article,
			KeywordMatches: len(keywordRe.FindAllString(combined, -1)),
			ContainsMoney:  moneyRe.MatchString(combined),
		})
	}

	p.log.Info("post-processed articles", "count", len(results), "keyword", keyword)
	return results, nil
}
