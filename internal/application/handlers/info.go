package handlers

import (
	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
	"github.com/peter88213/novelibre-sub001/internal/domain/services"
)

// InfoHandler summarizes projects.
type InfoHandler struct {
	registry ports.Registry
}

// NewInfoHandler creates a new info handler.
func NewInfoHandler(registry ports.Registry) *InfoHandler {
	return &InfoHandler{
		registry: registry,
	}
}

// InfoResult summarizes a project.
type InfoResult struct {
	Title      string   `json:"title"`
	Author     string   `json:"author,omitempty"`
	Locale     string   `json:"locale,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Parts      int      `json:"parts"`
	Chapters   int      `json:"chapters"`
	Sections   int      `json:"sections"`
	Characters int      `json:"characters"`
	Locations  int      `json:"locations"`
	Items      int      `json:"items"`
	PlotLines  int      `json:"plot_lines"`
	Words      int      `json:"words"`
	WithUnused int      `json:"words_with_unused"`
	Issues     int      `json:"issues"`
}

// Handle reads the project and summarizes it.
func (h *InfoHandler) Handle(projectPath string) (*InfoResult, error) {
	novel, err := loadProject(h.registry, projectPath)
	if err != nil {
		return nil, err
	}

	result := &InfoResult{
		Title:      novel.Title(),
		Author:     novel.Author(),
		Locale:     novel.Locale(),
		Languages:  novel.Languages(),
		Sections:   len(novel.Sections),
		Characters: len(novel.Characters),
		Locations:  len(novel.Locations),
		Items:      len(novel.Items),
		PlotLines:  len(novel.PlotLines),
		Issues:     len(services.CheckIntegrity(novel)),
	}
	for _, ch := range novel.Chapters {
		if ch.Level() == entities.LevelPart {
			result.Parts++
		} else {
			result.Chapters++
		}
	}
	result.Words, result.WithUnused = novel.CountWords()
	return result, nil
}
