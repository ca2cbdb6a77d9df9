// Package timeparse converts the timestamp strings a news site renders into
// instants. The site mixes relative forms ("22 mins ago", "2 hours ago",
// "yesterday") with absolute ones ("March 4" or "March 4, 2024"), so relative
// forms are checked first; feeding relative text to the absolute-format parser
// would fail silently otherwise.
package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/newsminer/internal/logger"
)

// ErrUnparsable is returned when a timestamp string matches none of the
// supported forms.
var ErrUnparsable = errors.New("unparsable timestamp")

// absoluteLayout is the site's long-form date layout, e.g. "March 4, 2024".
const absoluteLayout = "January 2, 2006"

var (
	digitsRe = regexp.MustCompile(`\d+`)
	yearRe   = regexp.MustCompile(`\b\d{4}\b`)
)

// Parser parses rendered timestamps relative to a reference instant.
type Parser struct {
	log logger.Interface
}

// NewParser creates a new timestamp parser.
func NewParser(log logger.Interface) *Parser {
	return &Parser{log: log}
}

// Parse converts raw into an instant at minute precision, interpreting
// relative forms against ref. It never panics; unsupported input yields
// ErrUnparsable with a logged warning.
func (p *Parser) Parse(raw string, ref time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	lowered := strings.ToLower(trimmed)

	switch {
	case strings.Contains(lowered, "min ago") || strings.Contains(lowered, "mins ago"):
		minutes, err := firstNumber(trimmed)
		if err != nil {
			return p.fail(trimmed, err)
		}
		return ref.Add(-time.Duration(minutes) * time.Minute).Truncate(time.Minute), nil

	case strings.Contains(lowered, "hour ago") || strings.Contains(lowered, "hours ago"):
		hours, err := firstNumber(trimmed)
		if err != nil {
			return p.fail(trimmed, err)
		}
		return ref.Add(-time.Duration(hours) * time.Hour).Truncate(time.Minute), nil

	case strings.Contains(lowered, "yesterday"):
		return ref.AddDate(0, 0, -1).Truncate(time.Minute), nil
	}

	// Absolute date. The site omits the year for current-year articles.
	if trimmed != "" && !yearRe.MatchString(trimmed) {
		trimmed = fmt.Sprintf("%s, %d", trimmed, ref.Year())
	}

	parsed, err := time.ParseInLocation(absoluteLayout, trimmed, ref.Location())
	if err != nil {
		return p.fail(trimmed, err)
	}
	return parsed.Truncate(time.Minute), nil
}

// fail logs a warning and returns ErrUnparsable for the given input.
func (p *Parser) fail(raw string, cause error) (time.Time, error) {
	p.log.Warn("failed to parse timestamp", "timestamp", raw, "error", cause)
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsable, raw)
}

// firstNumber extracts the first run of digits from s.
func firstNumber(s string) (int, error) {
	match := digitsRe.FindString(s)
	if match == "" {
		return 0, fmt.Errorf("no number in %q", s)
	}
	return strconv.Atoi(match)
}
