// Package novx reads and writes the native novx project format, migrating
// documents written by older versions on the way in.
package novx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/fileutil"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

const (
	// MajorVersion is the file format major version; it must match exactly.
	MajorVersion = 1
	// MinorVersion is the newest file format minor version understood.
	MinorVersion = 8
	// RootTag is the document root element.
	RootTag = "novx"
	// Extension is the project file extension.
	Extension = ".novx"
)

// File is a novx project file.
type File struct {
	Path       string
	KeepBackup bool
	logger     *slog.Logger
}

// NewFile returns a File for path. A nil logger uses slog.Default().
func NewFile(path string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{Path: path, logger: logger}
}

// Read replaces the novel's content with the file's content.
func (f *File) Read(novel *entities.Novel) error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading %q: %w", f.Path, errs.ErrNotFound)
		}
		return fmt.Errorf("reading %q: %w", f.Path, err)
	}
	return Decode(bytes.NewReader(data), f.Path, novel, f.logger)
}

// Write stores the novel, replacing the file atomically.
func (f *File) Write(novel *entities.Novel) error {
	root := Encode(novel)
	err := fileutil.ReplaceFile(f.Path, root.Encode, f.KeepBackup)
	if err != nil {
		return fmt.Errorf("writing %q: %w", f.Path, err)
	}
	f.logger.Debug("wrote novx file", "path", f.Path, "sections", len(novel.Sections))
	return nil
}

// Decode parses a novx document from r into novel. path only qualifies
// error messages.
func Decode(r io.Reader, path string, novel *entities.Novel, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	root, err := xmldom.Parse(r)
	if err != nil {
		return errs.NewFormatError(path, "cannot process file", err)
	}
	if err := checkDocument(path, root, logger); err != nil {
		return err
	}
	d := &decoder{path: path, logger: logger, novel: novel}
	return d.decode(root)
}
