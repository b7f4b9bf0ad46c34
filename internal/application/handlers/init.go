// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/config"
)

// InitHandler handles configuration initialization.
type InitHandler struct {
	journal ports.Journal
}

// NewInitHandler creates a new init handler. journal may be nil.
func NewInitHandler(journal ports.Journal) *InitHandler {
	return &InitHandler{
		journal: journal,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath  string
	JournalPath string
}

// Handle writes the default configuration and prepares the journal.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("novx already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	result := &InitResult{ConfigPath: config.FilePath(basePath)}
	if h.journal != nil && cfg.Journal.Enabled {
		if err := h.journal.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating journal: %w", err)
		}
		result.JournalPath = cfg.JournalPath(basePath)
	}
	return result, nil
}
