// Package ods writes element lists of a novel as OpenDocument spreadsheets
// and imports edited lists back into the project.
package ods

import (
	"fmt"
	"log/slog"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
)

// Extension is the file name extension of spreadsheets.
const Extension = ".ods"

// File is a spreadsheet representation of one element list.
type File struct {
	Path   string
	List   *List
	opts   odf.Options
	logger *slog.Logger
}

// NewFile returns a list file. A nil logger uses slog.Default().
func NewFile(path string, list *List, opts odf.Options, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{Path: path, List: list, opts: opts, logger: logger}
}

// Write exports the list.
func (f *File) Write(novel *entities.Novel) error {
	pkg, err := f.List.render(novel)
	if err != nil {
		return fmt.Errorf("exporting %q: %w", f.Path, err)
	}
	if err := odf.Write(f.Path, pkg, f.opts); err != nil {
		return err
	}
	f.logger.Info("exported list", "path", f.Path, "list", f.List.Title)
	return nil
}

// Read updates the listed elements from the spreadsheet. Rows naming
// unknown elements are skipped and rejected cell values leave the element
// unchanged; both are logged. The novel is not modified if the spreadsheet
// cannot be read.
func (f *File) Read(novel *entities.Novel) error {
	if !f.List.Writable() {
		return errs.NewFormatError(f.Path, fmt.Sprintf("%s cannot be imported", f.List.Title), nil)
	}
	rows, err := readTable(f.Path)
	if err != nil {
		return fmt.Errorf("reading list: %w", err)
	}
	if len(rows) == 0 {
		return errs.NewFormatError(f.Path, "empty table", nil)
	}

	header := make(map[string]int)
	for i, h := range rows[0] {
		if _, dup := header[h]; h != "" && !dup {
			header[h] = i
		}
	}
	idCol, ok := header[IDHeader]
	if !ok {
		return errs.NewFormatError(f.Path, "no ID column", nil)
	}

	type update struct {
		id     string
		values []string
	}
	var pending []update
	for _, row := range rows[1:] {
		if idCol >= len(row) || row[idCol] == "" {
			continue
		}
		id, ok := f.List.parseID(row[idCol])
		if !ok {
			return errs.NewFormatError(f.Path, fmt.Sprintf("malformed ID %q", row[idCol]), nil)
		}
		if !f.List.lookup(novel, id) {
			f.logger.Warn("skipping unknown element", "path", f.Path, "id", id)
			continue
		}
		pending = append(pending, update{id: id, values: row})
	}

	rejected := 0
	for _, u := range pending {
		for _, c := range f.List.Columns {
			i, ok := header[c.Header]
			if c.Set == nil || !ok {
				continue
			}
			v := ""
			if i < len(u.values) {
				v = u.values[i]
			}
			if v == c.Get(novel, u.id) {
				continue
			}
			if err := c.Set(novel, u.id, v); err != nil {
				rejected++
				f.logger.Warn("rejected cell value", "path", f.Path, "id", u.id, "column", c.Header, "error", err)
			}
		}
	}
	f.logger.Debug("imported list", "path", f.Path, "rows", len(pending), "rejected", rejected)
	return nil
}
