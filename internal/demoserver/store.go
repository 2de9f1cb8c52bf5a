package demoserver

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/model"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrScanNotFound = errors.New("scan not found")
)

// userRecord is a stored account, password hash included. Never serialized
// to the wire directly.
type userRecord struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    string
}

// storedScan is one persisted analysis result.
type storedScan struct {
	ID           string
	UserID       string
	ScanType     string
	InputPreview string
	RiskScore    float64
	Severity     string
	Status       string
	Explanation  *model.Explanation
	Breakdown    []model.ModelScore
	CreatedAt    time.Time
}

// Store persists users and scans in SQLite.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// OpenStore opens the demo database at path and runs the schema.
func OpenStore(path string, logger logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening demo database: %w", err)
	}
	if strings.Contains(path, ":memory:") {
		// A second pooled connection would see a fresh empty database.
		db.SetMaxOpenConns(1)
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

// CreateUser inserts a new account and returns it.
func (s *Store) CreateUser(ctx context.Context, email, username, passwordHash string) (*userRecord, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists > 0 {
		return nil, ErrEmailTaken
	}

	u := &userRecord{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         "analyst",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, password_hash, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.Role, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

// UserByEmail looks an account up for login.
func (s *Store) UserByEmail(ctx context.Context, email string) (*userRecord, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, role, created_at FROM users WHERE email = ?`, email))
}

// UserByID looks an account up for an authenticated request.
func (s *Store) UserByID(ctx context.Context, id string) (*userRecord, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, role, created_at FROM users WHERE id = ?`, id))
}

func (s *Store) scanUser(row *sql.Row) (*userRecord, error) {
	var u userRecord
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user row: %w", err)
	}
	return &u, nil
}

// SaveScan persists a completed analysis.
func (s *Store) SaveScan(ctx context.Context, scan *storedScan) error {
	explanation, err := json.Marshal(scan.Explanation)
	if err != nil {
		return fmt.Errorf("encoding explanation: %w", err)
	}
	breakdown, err := json.Marshal(scan.Breakdown)
	if err != nil {
		return fmt.Errorf("encoding breakdown: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scans (id, user_id, scan_type, input_preview, risk_score, severity, status, explanation, breakdown, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scan.ID, scan.UserID, scan.ScanType, scan.InputPreview, scan.RiskScore,
		scan.Severity, scan.Status, string(explanation), string(breakdown),
		scan.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting scan: %w", err)
	}
	return nil
}

// ScanByID returns one scan owned by userID.
func (s *Store) ScanByID(ctx context.Context, userID, scanID string) (*storedScan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, scan_type, input_preview, risk_score, severity, status, explanation, breakdown, created_at
		 FROM scans WHERE user_id = ? AND id = ?`, userID, scanID)
	if err != nil {
		return nil, fmt.Errorf("querying scan: %w", err)
	}
	defer rows.Close()

	scans, err := collectScans(rows)
	if err != nil {
		return nil, err
	}
	if len(scans) == 0 {
		return nil, ErrScanNotFound
	}
	return scans[0], nil
}

// History returns one page of a user's scans plus the total count for the
// filter. An out-of-range page is clamped to the last page.
func (s *Store) History(ctx context.Context, userID string, page, perPage int, scanType string) ([]*storedScan, int, int, error) {
	where := `WHERE user_id = ?`
	args := []any{userID}
	if scanType != "" && scanType != "all" {
		where += ` AND scan_type = ?`
		args = append(args, scanType)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM scans `+where, args...).Scan(&total); err != nil {
		return nil, 0, 0, fmt.Errorf("counting scans: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	query := `SELECT id, user_id, scan_type, input_preview, risk_score, severity, status, explanation, breakdown, created_at
		 FROM scans ` + where + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, perPage, (page-1)*perPage)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	scans, err := collectScans(rows)
	if err != nil {
		return nil, 0, 0, err
	}
	return scans, total, page, nil
}

// AllScans returns every scan of a user, newest first. Used for the stats
// aggregation; demo data volumes make this fine.
func (s *Store) AllScans(ctx context.Context, userID string) ([]*storedScan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, scan_type, input_preview, risk_score, severity, status, explanation, breakdown, created_at
		 FROM scans WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()
	return collectScans(rows)
}

// CountScans returns a user's total scan count, for the profile view.
func (s *Store) CountScans(ctx context.Context, userID string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM scans WHERE user_id = ?`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting scans: %w", err)
	}
	return total, nil
}

func collectScans(rows *sql.Rows) ([]*storedScan, error) {
	var out []*storedScan
	for rows.Next() {
		var (
			scan        storedScan
			explanation sql.NullString
			breakdown   sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&scan.ID, &scan.UserID, &scan.ScanType, &scan.InputPreview,
			&scan.RiskScore, &scan.Severity, &scan.Status, &explanation, &breakdown, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning scan row: %w", err)
		}
		if explanation.Valid && explanation.String != "null" {
			var exp model.Explanation
			if err := json.Unmarshal([]byte(explanation.String), &exp); err == nil {
				scan.Explanation = &exp
			}
		}
		if breakdown.Valid && breakdown.String != "null" {
			_ = json.Unmarshal([]byte(breakdown.String), &scan.Breakdown)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			scan.CreatedAt = t
		}
		out = append(out, &scan)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
