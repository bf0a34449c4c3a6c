package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kwameosei/ghanajobs/internal/model"
)

// Ensure SQLiteCache implements model.ResultCache.
var _ model.ResultCache = (*SQLiteCache)(nil)

// SQLiteCache stores analysis results in a SQLite database so cached verdicts
// survive process restarts. Expired rows are never returned as valid; they are
// physically removed by PurgeExpired (see Janitor).
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens (or creates) a SQLite database at dbPath and ensures
// the job_cache table exists.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Serialize writers; modernc sqlite does not support concurrent writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS job_cache (
		url_hash   TEXT PRIMARY KEY,
		url        TEXT NOT NULL,
		verdict    TEXT NOT NULL,
		reason     TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_job_cache_expires_at ON job_cache(expires_at)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating job_cache table: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

// Get returns the entry for key if present and not yet expired.
func (c *SQLiteCache) Get(ctx context.Context, key string) (model.CacheEntry, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT url, verdict, reason, created_at, expires_at
		 FROM job_cache WHERE url_hash = ? AND expires_at > ?`,
		key, time.Now().UTC(),
	)

	var (
		entry   model.CacheEntry
		verdict string
	)
	err := row.Scan(&entry.URL, &verdict, &entry.Reason, &entry.CreatedAt, &entry.ExpiresAt)
	if err == sql.ErrNoRows {
		return model.CacheEntry{}, false, nil
	}
	if err != nil {
		return model.CacheEntry{}, false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}

	entry.Key = key
	entry.Verdict = model.ParseVerdict(verdict)
	return entry, true, nil
}

// Put inserts or fully replaces the entry for key. Last writer wins.
func (c *SQLiteCache) Put(ctx context.Context, key, url string, verdict model.Verdict, reason string, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO job_cache (url_hash, url, verdict, reason, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		key, url, verdict.String(), reason, now, now.Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}

// ClearAll removes every entry unconditionally and returns the count removed.
func (c *SQLiteCache) ClearAll(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM job_cache")
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared entries: %w", err)
	}
	return int(n), nil
}

// PurgeExpired deletes entries whose TTL has lapsed.
func (c *SQLiteCache) PurgeExpired(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM job_cache WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purging expired entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged entries: %w", err)
	}
	return int(n), nil
}

// Stats reports total/active/expired counts plus the active verdict breakdown.
func (c *SQLiteCache) Stats(ctx context.Context) (model.CacheStats, error) {
	stats := model.CacheStats{Verdicts: make(map[string]int)}
	now := time.Now().UTC()

	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM job_cache").Scan(&stats.Total); err != nil {
		return model.CacheStats{}, fmt.Errorf("counting cache entries: %w", err)
	}

	rows, err := c.db.QueryContext(ctx,
		"SELECT verdict, COUNT(*) FROM job_cache WHERE expires_at > ? GROUP BY verdict", now)
	if err != nil {
		return model.CacheStats{}, fmt.Errorf("counting verdicts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			verdict string
			count   int
		)
		if err := rows.Scan(&verdict, &count); err != nil {
			return model.CacheStats{}, fmt.Errorf("scanning verdict count: %w", err)
		}
		stats.Verdicts[verdict] = count
		stats.Active += count
	}
	if err := rows.Err(); err != nil {
		return model.CacheStats{}, fmt.Errorf("iterating verdict counts: %w", err)
	}

	stats.Expired = stats.Total - stats.Active
	return stats, nil
}

// Close closes the underlying database connection.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
