// Package sqlite provides a SQLite implementation of the Journal interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Repository implements ports.Journal using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository opens the journal database at path, creating its directory
// if needed.
func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// Conversions run one at a time; a single connection also keeps an
	// in-memory database alive across calls.
	db.SetMaxOpenConns(1)

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Audit log (one row per conversion)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		source TEXT,
		target TEXT,
		status TEXT NOT NULL,
		details TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);

	-- Word-count progress (one row per project and day)
	CREATE TABLE IF NOT EXISTS progress (
		id TEXT PRIMARY KEY,
		project TEXT NOT NULL,
		date TEXT NOT NULL,
		count INTEGER NOT NULL,
		with_unused INTEGER NOT NULL,
		recorded_at TEXT NOT NULL,
		UNIQUE(project, date)
	);
	CREATE INDEX IF NOT EXISTS idx_progress_project ON progress(project);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = timeNow()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// LogAction records a conversion.
func (r *Repository) LogAction(ctx context.Context, entry entities.AuditEntry) error {
	var detailsJSON sql.NullString
	if entry.Details != nil {
		data, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `INSERT INTO audit_log (action, source, target, status, details, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		entry.Action,
		sql.NullString{String: entry.Source, Valid: entry.Source != ""},
		sql.NullString{String: entry.Target, Valid: entry.Target != ""},
		entry.Status,
		detailsJSON,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog returns the most recent entries, newest first. A limit of
// zero or less returns all entries.
func (r *Repository) FindAuditLog(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, action, source, target, status, details, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var source, target, details sql.NullString
		var createdAt string

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&source,
			&target,
			&entry.Status,
			&details,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.Source = source.String
		entry.Target = target.String
		if entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing audit time: %w", err)
		}

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SaveProgress records a word-count snapshot, replacing the snapshot of the
// same project and date.
func (r *Repository) SaveProgress(ctx context.Context, entry entities.ProgressEntry) error {
	if entry.ID == "" {
		entry.ID = generateUUID()
	}
	query := `
		INSERT INTO progress (id, project, date, count, with_unused, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(project, date) DO UPDATE SET
			count = excluded.count,
			with_unused = excluded.with_unused,
			recorded_at = excluded.recorded_at
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.Project,
		entry.Date,
		entry.Count,
		entry.WithUnused,
		formatTime(entry.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// FindProgress returns the snapshots of a project by date.
func (r *Repository) FindProgress(ctx context.Context, project string) ([]entities.ProgressEntry, error) {
	query := `
		SELECT id, project, date, count, with_unused, recorded_at
		FROM progress
		WHERE project = ?
		ORDER BY date
	`
	rows, err := r.db.QueryContext(ctx, query, project)
	if err != nil {
		return nil, fmt.Errorf("querying progress: %w", err)
	}
	defer rows.Close()

	var entries []entities.ProgressEntry
	for rows.Next() {
		var entry entities.ProgressEntry
		var recordedAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.Project,
			&entry.Date,
			&entry.Count,
			&entry.WithUnused,
			&recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning progress: %w", err)
		}
		if entry.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("parsing progress time: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
