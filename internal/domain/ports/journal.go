package ports

import (
	"context"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

// Journal keeps a persistent record of conversions and word-count progress.
type Journal interface {
	// EnsureSchema creates the storage schema if it does not exist.
	EnsureSchema(ctx context.Context) error

	// Close releases the journal.
	Close() error

	// LogAction records a conversion.
	LogAction(ctx context.Context, entry entities.AuditEntry) error

	// FindAuditLog returns the most recent entries, newest first.
	FindAuditLog(ctx context.Context, limit int) ([]entities.AuditEntry, error)

	// SaveProgress records a word-count snapshot. A snapshot for the same
	// project and date replaces the previous one.
	SaveProgress(ctx context.Context, entry entities.ProgressEntry) error

	// FindProgress returns the snapshots of a project by date.
	FindProgress(ctx context.Context, project string) ([]entities.ProgressEntry, error)
}
