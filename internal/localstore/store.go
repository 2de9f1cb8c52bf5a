// Package localstore persists the console's client-side state in SQLite:
// the session triple (a small key/value table) and a locally cached scan
// side-list used purely for presentation.
package localstore

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/model"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// cacheLimit caps the scan side-list; older entries are pruned on insert.
const cacheLimit = 50

// Store is a small synchronous wrapper over the local SQLite database.
// Reads do not suspend; session restoration depends on that.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if needed) the console database at path and runs
// the schema.
func Open(path string, logger logging.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}
	if strings.Contains(path, ":memory:") {
		// A second pooled connection would see a fresh empty database.
		db.SetMaxOpenConns(1)
	}
	return NewStore(db, logger)
}

// NewStore wraps an already-open database and runs the schema. Tests use
// this with an in-memory database.
func NewStore(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Get returns the value for key. The second return is false when the key
// is absent.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores key=value, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (s *Store) Delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete %q: %w", key, err)
		}
	}
	return nil
}

// CacheScan appends one completed scan to the local side-list and prunes
// entries beyond the cache limit.
func (s *Store) CacheScan(rec model.ScanRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("scan record has no id")
	}
	createdAt := rec.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO scan_cache (id, scan_type, input_preview, risk_score, severity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ScanType, rec.InputPreview, rec.RiskScore, rec.Severity, createdAt)
	if err != nil {
		return fmt.Errorf("cache scan %q: %w", rec.ID, err)
	}

	_, err = s.db.Exec(
		`DELETE FROM scan_cache WHERE id NOT IN (
		     SELECT id FROM scan_cache ORDER BY created_at DESC LIMIT ?)`,
		cacheLimit)
	if err != nil {
		return fmt.Errorf("prune scan cache: %w", err)
	}
	return nil
}

// CachedScans returns up to limit recent scans from the local side-list,
// newest first.
func (s *Store) CachedScans(limit int) ([]model.ScanRecord, error) {
	if limit <= 0 || limit > cacheLimit {
		limit = cacheLimit
	}
	rows, err := s.db.Query(
		`SELECT id, scan_type, input_preview, risk_score, severity, created_at
		 FROM scan_cache ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list cached scans: %w", err)
	}
	defer rows.Close()

	var out []model.ScanRecord
	for rows.Next() {
		var rec model.ScanRecord
		if err := rows.Scan(&rec.ID, &rec.ScanType, &rec.InputPreview, &rec.RiskScore, &rec.Severity, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cached row: %w", err)
		}
		rec.Timestamp = rec.CreatedAt
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
