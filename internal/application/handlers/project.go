package handlers

import (
	"fmt"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
)

// loadProject reads the project at path.
func loadProject(registry ports.Registry, path string) (*entities.Novel, error) {
	if !registry.IsProject(path) {
		return nil, fmt.Errorf("%w: not a project file: %q", errs.ErrInvalidValue, path)
	}
	novel := entities.NewNovel()
	if err := registry.Project(path).Read(novel); err != nil {
		return nil, err
	}
	return novel, nil
}

// saveProject writes the project unless it is open in the editor.
func saveProject(registry ports.Registry, locks ports.LockChecker, path string, novel *entities.Novel) error {
	if locks.IsLocked(path) {
		return errs.Locked(path)
	}
	return registry.Project(path).Write(novel)
}
