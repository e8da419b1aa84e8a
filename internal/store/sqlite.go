package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arachnid-dev/arachne/internal/model"
)

// SQLite is a ContentStore backed by a SQLite database file.
// It keeps one row per URL; re-crawling a URL replaces the stored page.
//
// Design decision: We use a single database file per data directory
// rather than one per run. That keeps history queries and backups simple,
// and the UNIQUE(url) upsert makes repeated runs idempotent.
type SQLite struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SQLite behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// OpenSQLite opens or creates the page database in dbDir.
func OpenSQLite(dbDir string, opts Options) (*SQLite, error) {
	dbPath := filepath.Join(dbDir, "arachne.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; readers still benefit from WAL.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLite{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Path returns the path of the database file.
func (s *SQLite) Path() string {
	return s.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (s *SQLite) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		discovered_from TEXT,
		depth INTEGER NOT NULL,
		status_code INTEGER,
		content_type TEXT,
		title TEXT,
		description TEXT,
		links TEXT,
		html BLOB,
		hash TEXT,
		fetched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_fetched_at ON pages(fetched_at);
	CREATE INDEX IF NOT EXISTS idx_pages_hash ON pages(hash);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Put inserts or replaces the stored page for the result's URL.
func (s *SQLite) Put(ctx context.Context, result *model.CrawlResult) error {
	linksJSON, err := json.Marshal(result.Links)
	if err != nil {
		return fmt.Errorf("failed to serialize links: %w", err)
	}

	query := `
	INSERT INTO pages (url, discovered_from, depth, status_code, content_type, title, description, links, html, hash, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		discovered_from = excluded.discovered_from,
		depth = excluded.depth,
		status_code = excluded.status_code,
		content_type = excluded.content_type,
		title = excluded.title,
		description = excluded.description,
		links = excluded.links,
		html = excluded.html,
		hash = excluded.hash,
		fetched_at = excluded.fetched_at
	`

	_, err = s.db.ExecContext(ctx, query,
		result.URL,
		result.DiscoveredFrom,
		result.Depth,
		result.StatusCode,
		result.ContentType,
		result.Title,
		result.Description,
		string(linksJSON),
		result.HTML,
		result.Hash,
		result.FetchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store page: %w", err)
	}
	return nil
}

// Page loads the stored page for a URL. Returns sql.ErrNoRows wrapped if
// the URL has never been stored.
func (s *SQLite) Page(ctx context.Context, url string) (*model.CrawlResult, error) {
	query := `
	SELECT url, discovered_from, depth, status_code, content_type, title, description, links, html, hash, fetched_at
	FROM pages WHERE url = ?
	`

	var result model.CrawlResult
	var linksJSON string
	err := s.db.QueryRowContext(ctx, query, url).Scan(
		&result.URL,
		&result.DiscoveredFrom,
		&result.Depth,
		&result.StatusCode,
		&result.ContentType,
		&result.Title,
		&result.Description,
		&linksJSON,
		&result.HTML,
		&result.Hash,
		&result.FetchedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load page %s: %w", url, err)
	}

	if linksJSON != "" {
		if err := json.Unmarshal([]byte(linksJSON), &result.Links); err != nil {
			return nil, fmt.Errorf("failed to deserialize links: %w", err)
		}
	}
	return &result, nil
}

// Count returns the number of stored pages.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}
