package handlers

import (
	"fmt"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
	"github.com/peter88213/novelibre-sub001/internal/domain/services"
)

// ReferenceHandler assigns typed-in names to sections.
type ReferenceHandler struct {
	registry ports.Registry
	locks    ports.LockChecker
}

// NewReferenceHandler creates a new reference handler.
func NewReferenceHandler(registry ports.Registry, locks ports.LockChecker) *ReferenceHandler {
	return &ReferenceHandler{
		registry: registry,
		locks:    locks,
	}
}

// ReferenceResult contains the applied IDs and the rejected names.
type ReferenceResult struct {
	IDs []string
	// Message names the rejected tokens; empty if all were accepted.
	Message string
}

// HandlePlotLines sets the plot lines of a section from a ";"-separated list
// of short names. Unknown names are dropped and reported.
func (h *ReferenceHandler) HandlePlotLines(projectPath, sectionID, input string) (*ReferenceResult, error) {
	return h.apply(projectPath, sectionID, input, services.ResolvePlotLines,
		func(n *entities.Novel, ids []string) error {
			return n.SetSectionPlotLines(sectionID, ids)
		})
}

// HandleCharacters sets the characters of a section from a ";"-separated
// list of names. Unknown names are dropped and reported.
func (h *ReferenceHandler) HandleCharacters(projectPath, sectionID, input string) (*ReferenceResult, error) {
	return h.apply(projectPath, sectionID, input, services.ResolveCharacters,
		func(n *entities.Novel, ids []string) error {
			n.Sections[sectionID].SetCharacters(ids)
			return nil
		})
}

func (h *ReferenceHandler) apply(
	projectPath, sectionID, input string,
	resolve func(*entities.Novel, string) services.Resolution,
	set func(*entities.Novel, []string) error,
) (*ReferenceResult, error) {
	novel, err := loadProject(h.registry, projectPath)
	if err != nil {
		return nil, err
	}
	if novel.Sections[sectionID] == nil {
		return nil, fmt.Errorf("%w: section %q", errs.ErrNotFound, sectionID)
	}

	r := resolve(novel, input)
	if err := set(novel, r.IDs); err != nil {
		return nil, err
	}
	if err := saveProject(h.registry, h.locks, projectPath, novel); err != nil {
		return nil, err
	}
	return &ReferenceResult{IDs: r.IDs, Message: r.Message()}, nil
}
