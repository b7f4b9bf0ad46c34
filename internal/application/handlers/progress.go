package handlers

import (
	"context"
	"errors"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
)

// ErrNoJournal is returned when the journal is disabled.
var ErrNoJournal = errors.New("journal is disabled")

// ProgressHandler reads the conversion journal.
type ProgressHandler struct {
	journal ports.Journal
}

// NewProgressHandler creates a new progress handler. journal may be nil.
func NewProgressHandler(journal ports.Journal) *ProgressHandler {
	return &ProgressHandler{
		journal: journal,
	}
}

// HandleProgress returns the word-count snapshots of a project.
func (h *ProgressHandler) HandleProgress(ctx context.Context, projectPath string) ([]entities.ProgressEntry, error) {
	if h.journal == nil {
		return nil, ErrNoJournal
	}
	return h.journal.FindProgress(ctx, projectPath)
}

// HandleHistory returns the latest conversions, newest first.
func (h *ProgressHandler) HandleHistory(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	if h.journal == nil {
		return nil, ErrNoJournal
	}
	return h.journal.FindAuditLog(ctx, limit)
}
