package entities

import "time"

// AuditEntry is a logged conversion.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	Source    string         `json:"source,omitempty"`
	Target    string         `json:"target,omitempty"`
	Status    string         `json:"status"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Audit actions.
const (
	ActionExport = "export"
	ActionUpdate = "update"
	ActionCreate = "create"
	ActionSplit  = "split"
)

// ProgressEntry is one word-count snapshot of a project.
type ProgressEntry struct {
	ID         string    `json:"id"`
	Project    string    `json:"project"`
	Date       string    `json:"date"`
	Count      int       `json:"count"`
	WithUnused int       `json:"with_unused"`
	RecordedAt time.Time `json:"recorded_at"`
}
