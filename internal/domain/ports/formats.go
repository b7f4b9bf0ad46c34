package ports

import "github.com/peter88213/novelibre-sub001/internal/domain/entities"

// Document is a file representation of a novel.
type Document interface {
	Read(novel *entities.Novel) error
	Write(novel *entities.Novel) error
}

// Import describes a document that updates an existing project.
type Import struct {
	Document Document
	// Suffix identifies the document kind, e.g. "_proof".
	Suffix string
	// Project is the path of the project the document belongs to.
	Project string
	// Split is set for manuscript kinds whose content may carry section
	// dividers.
	Split bool
}

// Registry maps file names to document representations.
type Registry interface {
	// Project returns the project file at path.
	Project(path string) Document

	// Importer recognizes a tagged document or list by its file name.
	Importer(source string) (Import, bool)

	// Exporter returns the document of the given suffix for a project and
	// its path.
	Exporter(projectPath, suffix string) (Document, string, error)

	// WIP returns an untagged document and the path of the project that
	// would be created from it.
	WIP(source string) (Document, string)

	// IsProject reports whether path names a project file.
	IsProject(path string) bool
}
