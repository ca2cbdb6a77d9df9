// Package export writes scrape results to run artifacts.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonesrussell/newsminer/internal/logger"
	"github.com/jonesrussell/newsminer/internal/news"
	"github.com/jonesrussell/newsminer/internal/textproc"
)

// timestampLayout names export files after the run start,
// e.g. Execution_20260826-153000.csv.
const timestampLayout = "20060102-150405"

// Exporter writes run artifacts into a folder.
type Exporter struct {
	dir string
	log logger.Interface
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir string, log logger.Interface) *Exporter {
	return &Exporter{dir: dir, log: log}
}

// WriteCSV writes the results to Execution_<timestamp>.csv and returns the
// file path.
func (e *Exporter) WriteCSV(results []textproc.Result, now time.Time) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output folder: %w", err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("Execution_%s.csv", now.Format(timestampLayout)))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{
		"URL", "Title", "Description", "Image",
		"PublishedAt", "DateStatus", "KeywordMatches", "ContainsMoney",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing export header: %w", err)
	}

	for i := range results {
		if err := w.Write(record(&results[i])); err != nil {
			return "", fmt.Errorf("writing export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing export file: %w", err)
	}

	e.log.Info("exported results", "path", path, "rows", len(results))
	return path, nil
}

// record formats one result as a CSV row.
func record(r *textproc.Result) []string {
	published := ""
	if r.DateStatus == news.DateOK {
		published = r.PublishedAt.Format(time.RFC3339)
	}
	return []string{
		r.URL,
		r.Title,
		r.Description,
		r.Image,
		published,
		string(r.DateStatus),
		strconv.Itoa(r.KeywordMatches),
		strconv.FormatBool(r.ContainsMoney),
	}
}
