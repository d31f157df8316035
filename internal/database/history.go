package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/textcrawl/textcrawl/internal/model"
)

// HistoryDB provides SQLite-based storage for crawl run history. It
// records what each run did (seed, corpus path, page list, failures) so
// past runs can be inspected later; it never feeds state back into a
// crawl.
//
// Design decision: one database file for all runs rather than a file per
// run. Runs are small metadata rows, and a single file makes listing and
// backup trivial.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "textcrawl.db")

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

	// Build connection string.
	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per finished crawl run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed_url TEXT NOT NULL,
		output_path TEXT NOT NULL,
		max_pages INTEGER NOT NULL,
		pages_scraped INTEGER NOT NULL,
		reason TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed_url);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Pages successfully scraped during a run, in page-number order
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		page_number INTEGER NOT NULL,
		url TEXT NOT NULL,
		UNIQUE(run_id, page_number)
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run ON pages(run_id);

	-- URLs that failed to fetch during a run
	CREATE TABLE IF NOT EXISTS page_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		kind TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_page_errors_run ON page_errors(run_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists a finished run with its page list and failures in one
// transaction. On success the summary's ID is set to the new row id.
func (hdb *HistoryDB) SaveRun(ctx context.Context, summary *model.RunSummary) error {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (seed_url, output_path, max_pages, pages_scraped, reason, started_at, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		summary.SeedURL,
		summary.OutputPath,
		summary.MaxPages,
		summary.PagesScraped,
		summary.Reason.String(),
		summary.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		summary.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}

	for _, page := range summary.Pages {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (run_id, page_number, url) VALUES (?, ?, ?)
		`, runID, page.Number, page.URL); err != nil {
			return fmt.Errorf("failed to insert page #%d: %w", page.Number, err)
		}
	}

	for _, failure := range summary.Failures {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO page_errors (run_id, url, kind) VALUES (?, ?, ?)
		`, runID, failure.URL, failure.Kind.String()); err != nil {
			return fmt.Errorf("failed to insert page error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	summary.ID = runID
	return nil
}

// ListRuns returns run metadata, most recent first, without page lists.
// A limit of 0 returns all runs.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	query := `
	SELECT id, seed_url, output_path, max_pages, pages_scraped, reason, started_at, duration_ms
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []model.RunSummary
	for rows.Next() {
		summary, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *summary)
	}

	return results, rows.Err()
}

// GetRun retrieves one run with its full page list and failures.
// It returns nil without error when the id is unknown.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*model.RunSummary, error) {
	row := hdb.db.QueryRowContext(ctx, `
	SELECT id, seed_url, output_path, max_pages, pages_scraped, reason, started_at, duration_ms
	FROM runs
	WHERE id = ?
	`, id)

	summary, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pageRows, err := hdb.db.QueryContext(ctx, `
	SELECT page_number, url FROM pages WHERE run_id = ? ORDER BY page_number
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}
	defer pageRows.Close()

	for pageRows.Next() {
		var ref model.PageRef
		if err := pageRows.Scan(&ref.Number, &ref.URL); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		summary.Pages = append(summary.Pages, ref)
	}
	if err := pageRows.Err(); err != nil {
		return nil, err
	}

	errRows, err := hdb.db.QueryContext(ctx, `
	SELECT url, kind FROM page_errors WHERE run_id = ? ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get page errors: %w", err)
	}
	defer errRows.Close()

	for errRows.Next() {
		var url, kind string
		if err := errRows.Scan(&url, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan page error: %w", err)
		}
		summary.AddFailure(url, model.ParseErrorKind(kind))
	}
	if err := errRows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one runs row into a RunSummary.
func scanRun(row rowScanner) (*model.RunSummary, error) {
	var (
		summary    model.RunSummary
		reason     string
		startedAt  string
		durationMS int64
	)

	err := row.Scan(
		&summary.ID,
		&summary.SeedURL,
		&summary.OutputPath,
		&summary.MaxPages,
		&summary.PagesScraped,
		&reason,
		&startedAt,
		&durationMS,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	summary.Reason = model.ParseReason(reason)
	summary.ReasonName = summary.Reason.String()
	summary.StartedAt = parseTimestamp(startedAt)
	summary.Duration = time.Duration(durationMS) * time.Millisecond

	return &summary, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
