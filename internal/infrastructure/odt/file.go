// Package odt reads and writes OpenDocument text files holding a novel's
// manuscript, either untagged or with machine-readable chapter and section
// markers that allow edits to be imported back into the project.
package odt

import (
	"fmt"
	"log/slog"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
)

// Extension is the file name extension of text documents.
const Extension = ".odt"

// File is an ODT representation of a novel.
type File struct {
	Path   string
	Kind   Kind
	opts   odf.Options
	logger *slog.Logger
}

// NewFile returns a file of the given kind. A nil logger uses slog.Default().
func NewFile(path string, kind Kind, opts odf.Options, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{Path: path, Kind: kind, opts: opts, logger: logger}
}

// Read imports the document into novel. Plain documents build new chapters
// and sections; tagged documents overwrite the sections they name. The
// novel is not modified if the document cannot be read.
func (f *File) Read(novel *entities.Novel) error {
	var client Client
	switch f.Kind {
	case Manuscript:
		client = newManuscriptClient(f.Path, novel, f.logger)
	case Proof:
		client = newProofClient(f.Path, novel, f.logger)
	default:
		client = newWIPClient(novel, f.logger)
	}
	if err := NewParser(f.logger).Parse(f.Path, client); err != nil {
		return fmt.Errorf("reading %s document: %w", f.Kind, err)
	}
	return nil
}

// Write exports the novel's normal chapters and sections.
func (f *File) Write(novel *entities.Novel) error {
	pkg, err := render(novel, f.Kind)
	if err != nil {
		return fmt.Errorf("exporting %q: %w", f.Path, err)
	}
	if err := odf.Write(f.Path, pkg, f.opts); err != nil {
		return err
	}
	f.logger.Info("exported document", "path", f.Path, "kind", f.Kind.String())
	return nil
}
