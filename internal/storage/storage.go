// Package storage persists scrape runs and their articles to SQLite.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	// SQLite driver registration.
	_ "github.com/mattn/go-sqlite3"

	"github.com/jonesrussell/newsminer/internal/logger"
	"github.com/jonesrussell/newsminer/internal/news"
	"github.com/jonesrussell/newsminer/internal/textproc"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	keyword       TEXT NOT NULL,
	category      TEXT NOT NULL DEFAULT '',
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP NOT NULL,
	article_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS articles (
	run_id          TEXT NOT NULL REFERENCES runs(id),
	position        INTEGER NOT NULL,
	url             TEXT NOT NULL,
	title           TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	image           TEXT NOT NULL DEFAULT '',
	published_at    TIMESTAMP,
	date_status     TEXT NOT NULL,
	keyword_matches INTEGER NOT NULL DEFAULT 0,
	contains_money  BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (run_id, position)
);
`

// Run describes one completed scrape run.
type Run struct {
	ID           string    `db:"id"`
	Keyword      string    `db:"keyword"`
	Category     string    `db:"category"`
	StartedAt    time.Time `db:"started_at"`
	FinishedAt   time.Time `db:"finished_at"`
	ArticleCount int       `db:"article_count"`
}

// Store persists runs to a SQLite database.
type Store struct {
	db  *sqlx.DB
	log logger.Interface
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string, log logger.Interface) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the run and its articles in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, results []textproc.Result) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const insertRun = `
		INSERT INTO runs (id, keyword, category, started_at, finished_at, article_count)
		VALUES (:id, :keyword, :category, :started_at, :finished_at, :article_count)`
	if _, err := tx.NamedExecContext(ctx, insertRun, run); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	const insertArticle = `
		INSERT INTO articles (run_id, position, url, title, description, image,
			published_at, date_status, keyword_matches, contains_money)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range results {
		r := &results[i]
		var published any
		if r.DateStatus == news.DateOK {
			published = r.PublishedAt
		}
		if _, err := tx.ExecContext(ctx, insertArticle,
			run.ID, i, r.URL, r.Title, r.Description, r.Image,
			published, string(r.DateStatus), r.KeywordMatches, r.ContainsMoney); err != nil {
			return fmt.Errorf("inserting article %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	s.log.Info("run persisted", "run_id", run.ID, "articles", len(results))
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	const query = `SELECT * FROM runs ORDER BY started_at DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}
