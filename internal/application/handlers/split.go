package handlers

import (
	"context"
	"log/slog"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
	"github.com/peter88213/novelibre-sub001/internal/domain/services"
)

// SplitHandler splits the sections of a project at their dividers.
type SplitHandler struct {
	registry ports.Registry
	locks    ports.LockChecker
	journal  ports.Journal
	splitter *services.Splitter
	logger   *slog.Logger
}

// NewSplitHandler creates a new split handler. journal may be nil.
func NewSplitHandler(registry ports.Registry, locks ports.LockChecker, journal ports.Journal, logger *slog.Logger) *SplitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SplitHandler{
		registry: registry,
		locks:    locks,
		journal:  journal,
		splitter: services.NewSplitter(logger),
		logger:   logger,
	}
}

// SplitResult contains the result of splitting a project.
type SplitResult struct {
	Split       bool
	NewChapters int
	NewSections int
}

// Handle splits the project's sections and saves the project if anything
// changed.
func (h *SplitHandler) Handle(ctx context.Context, projectPath string) (*SplitResult, error) {
	novel, err := loadProject(h.registry, projectPath)
	if err != nil {
		return nil, err
	}
	chapters, sections := len(novel.Chapters), len(novel.Sections)

	result := &SplitResult{Split: h.splitter.SplitSections(novel)}
	if !result.Split {
		return result, nil
	}
	result.NewChapters = len(novel.Chapters) - chapters
	result.NewSections = len(novel.Sections) - sections

	if err := saveProject(h.registry, h.locks, projectPath, novel); err != nil {
		return nil, err
	}

	if h.journal != nil {
		entry := entities.AuditEntry{
			Action: entities.ActionSplit,
			Source: projectPath,
			Target: projectPath,
			Status: "sections split",
			Details: map[string]any{
				"chapters": result.NewChapters,
				"sections": result.NewSections,
			},
		}
		if err := h.journal.LogAction(ctx, entry); err != nil {
			h.logger.Warn("cannot record split", "project", projectPath, "error", err)
		}
	}
	return result, nil
}
