package handlers

import (
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
	"github.com/peter88213/novelibre-sub001/internal/domain/services"
)

// CheckHandler checks the consistency of projects.
type CheckHandler struct {
	registry ports.Registry
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(registry ports.Registry) *CheckHandler {
	return &CheckHandler{
		registry: registry,
	}
}

// Handle returns the issues found in the project.
func (h *CheckHandler) Handle(projectPath string) ([]services.Issue, error) {
	novel, err := loadProject(h.registry, projectPath)
	if err != nil {
		return nil, err
	}
	return services.CheckIntegrity(novel), nil
}
