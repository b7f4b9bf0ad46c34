package mocks

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
)

// Document is a mock implementation of ports.Document. Read applies Fill,
// Write captures the novel it was given.
type Document struct {
	Fill    func(novel *entities.Novel) error
	Written *entities.Novel
	Reads   int
	Writes  int
	ReadErr error
	Err     error
}

// Read runs Fill on the novel.
func (m *Document) Read(novel *entities.Novel) error {
	m.Reads++
	if m.ReadErr != nil {
		return m.ReadErr
	}
	if m.Fill != nil {
		return m.Fill(novel)
	}
	return nil
}

// Write records the novel.
func (m *Document) Write(novel *entities.Novel) error {
	m.Writes++
	if m.Err != nil {
		return m.Err
	}
	m.Written = novel
	return nil
}

// Registry is a mock implementation of ports.Registry keyed by path.
type Registry struct {
	Projects  map[string]*Document
	Imports   map[string]ports.Import
	Exports   map[string]*Document
	WIPs      map[string]*Document
	ExportErr error
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Projects: make(map[string]*Document),
		Imports:  make(map[string]ports.Import),
		Exports:  make(map[string]*Document),
		WIPs:     make(map[string]*Document),
	}
}

// Project returns the project document registered for path, creating an
// empty one if needed.
func (m *Registry) Project(path string) ports.Document {
	doc, ok := m.Projects[path]
	if !ok {
		doc = &Document{}
		m.Projects[path] = doc
	}
	return doc
}

// Importer returns the import registered for source.
func (m *Registry) Importer(source string) (ports.Import, bool) {
	imp, ok := m.Imports[source]
	return imp, ok
}

// Exporter returns a document at "<stem><suffix>.odt".
func (m *Registry) Exporter(projectPath, suffix string) (ports.Document, string, error) {
	if m.ExportErr != nil {
		return nil, "", m.ExportErr
	}
	target := strings.TrimSuffix(projectPath, filepath.Ext(projectPath)) + suffix + ".odt"
	doc, ok := m.Exports[target]
	if !ok {
		doc = &Document{}
		m.Exports[target] = doc
	}
	return doc, target, nil
}

// WIP returns the document registered for source and "<stem>.novx".
func (m *Registry) WIP(source string) (ports.Document, string) {
	doc, ok := m.WIPs[source]
	if !ok {
		doc = &Document{ReadErr: errors.New("no such document")}
		m.WIPs[source] = doc
	}
	return doc, strings.TrimSuffix(source, filepath.Ext(source)) + ".novx"
}

// IsProject reports whether path ends in ".novx".
func (m *Registry) IsProject(path string) bool {
	return filepath.Ext(path) == ".novx"
}
