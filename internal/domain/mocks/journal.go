package mocks

import (
	"context"
	"sort"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

// Journal is a mock implementation of ports.Journal.
type Journal struct {
	Entries  []entities.AuditEntry
	Progress map[string]map[string]entities.ProgressEntry
	Err      error
}

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return &Journal{Progress: make(map[string]map[string]entities.ProgressEntry)}
}

// EnsureSchema does nothing.
func (m *Journal) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close does nothing.
func (m *Journal) Close() error {
	return nil
}

// LogAction appends the entry.
func (m *Journal) LogAction(_ context.Context, entry entities.AuditEntry) error {
	if m.Err != nil {
		return m.Err
	}
	entry.ID = int64(len(m.Entries) + 1)
	m.Entries = append(m.Entries, entry)
	return nil
}

// FindAuditLog returns the latest entries first.
func (m *Journal) FindAuditLog(_ context.Context, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.AuditEntry
	for i := len(m.Entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, m.Entries[i])
	}
	return out, nil
}

// SaveProgress stores the snapshot by project and date.
func (m *Journal) SaveProgress(_ context.Context, entry entities.ProgressEntry) error {
	if m.Err != nil {
		return m.Err
	}
	if m.Progress[entry.Project] == nil {
		m.Progress[entry.Project] = make(map[string]entities.ProgressEntry)
	}
	m.Progress[entry.Project][entry.Date] = entry
	return nil
}

// FindProgress returns the snapshots of a project by date.
func (m *Journal) FindProgress(_ context.Context, project string) ([]entities.ProgressEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]entities.ProgressEntry, 0, len(m.Progress[project]))
	for _, e := range m.Progress[project] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
