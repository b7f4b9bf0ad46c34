// Package formats maps file names to the novx, ODT and ODS representations
// of a novel.
package formats

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/novx"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/ods"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odt"
)

// Document suffixes.
const (
	PlainSuffix      = ""
	ManuscriptSuffix = "_manuscript"
	ProofSuffix      = "_proof"
)

var documentKinds = map[string]odt.Kind{
	PlainSuffix:      odt.Plain,
	ManuscriptSuffix: odt.Manuscript,
	ProofSuffix:      odt.Proof,
}

// Registry implements ports.Registry on the local file system.
type Registry struct {
	opts   odf.Options
	logger *slog.Logger
}

// New creates a registry. opts applies to every written file. A nil logger
// uses slog.Default().
func New(opts odf.Options, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{opts: opts, logger: logger}
}

// ExportSuffixes lists the suffixes accepted by Exporter.
func ExportSuffixes() []string {
	out := []string{PlainSuffix, ManuscriptSuffix, ProofSuffix}
	for _, l := range ods.Lists {
		out = append(out, l.Suffix)
	}
	return out
}

// Project returns the novx file at path.
func (r *Registry) Project(path string) ports.Document {
	f := novx.NewFile(path, r.logger)
	f.KeepBackup = r.opts.KeepBackup
	return f
}

// IsProject reports whether path has the project extension.
func (r *Registry) IsProject(path string) bool {
	return strings.EqualFold(filepath.Ext(path), novx.Extension)
}

// Importer recognizes tagged documents and writable lists.
func (r *Registry) Importer(source string) (ports.Import, bool) {
	ext := strings.ToLower(filepath.Ext(source))
	stem := strings.TrimSuffix(source, filepath.Ext(source))
	switch ext {
	case odt.Extension:
		for _, suffix := range []string{ManuscriptSuffix, ProofSuffix} {
			if project, ok := strings.CutSuffix(stem, suffix); ok {
				return ports.Import{
					Document: odt.NewFile(source, documentKinds[suffix], r.opts, r.logger),
					Suffix:   suffix,
					Project:  project + novx.Extension,
					Split:    true,
				}, true
			}
		}
	case ods.Extension:
		for _, l := range ods.Lists {
			if project, ok := strings.CutSuffix(stem, l.Suffix); ok && l.Writable() {
				return ports.Import{
					Document: ods.NewFile(source, l, r.opts, r.logger),
					Suffix:   l.Suffix,
					Project:  project + novx.Extension,
				}, true
			}
		}
	}
	return ports.Import{}, false
}

// Exporter returns the document of the given suffix next to the project.
func (r *Registry) Exporter(projectPath, suffix string) (ports.Document, string, error) {
	stem := strings.TrimSuffix(projectPath, filepath.Ext(projectPath))
	if kind, ok := documentKinds[suffix]; ok {
		target := stem + suffix + odt.Extension
		return odt.NewFile(target, kind, r.opts, r.logger), target, nil
	}
	i := slices.IndexFunc(ods.Lists, func(l *ods.List) bool { return l.Suffix == suffix })
	if i < 0 {
		return nil, "", fmt.Errorf("%w: export suffix %q", errs.ErrInvalidValue, suffix)
	}
	target := stem + suffix + ods.Extension
	return ods.NewFile(target, ods.Lists[i], r.opts, r.logger), target, nil
}

// WIP returns source read as a work in progress and the project path
// next to it.
func (r *Registry) WIP(source string) (ports.Document, string) {
	stem := strings.TrimSuffix(source, filepath.Ext(source))
	return odt.NewFile(source, odt.Plain, r.opts, r.logger), stem + novx.Extension
}
