package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
)

// DefaultBackupSuffix is appended to the stem of a document whose sections
// were split on import.
const DefaultBackupSuffix = "_bak"

// ConverterOptions controls conversions.
type ConverterOptions struct {
	// AllowLocked permits importing documents that are open in an office
	// application.
	AllowLocked bool
	// BackupSuffix renames split sources; empty uses DefaultBackupSuffix.
	BackupSuffix string
	// DefaultLocale is given to new projects whose document names no
	// language.
	DefaultLocale string
	// Now returns the current time; nil uses time.Now.
	Now func() time.Time
}

// Report is the outcome of a conversion.
type Report struct {
	Action string
	Source string
	Target string
	// Status is a single status line; see errs.Status for the prefixes.
	Status string
	// Split is set when sections were split and the source was renamed.
	Split bool
	Err   error
}

// Converter selects and runs a conversion for a source file: projects are
// exported, tagged documents and lists update their project, anything else
// becomes a new project.
type Converter struct {
	registry ports.Registry
	ui       ports.UI
	locks    ports.LockChecker
	files    ports.Files
	journal  ports.Journal
	splitter *Splitter
	opts     ConverterOptions
	logger   *slog.Logger
}

// NewConverter creates a converter. journal may be nil.
func NewConverter(
	registry ports.Registry,
	ui ports.UI,
	locks ports.LockChecker,
	files ports.Files,
	journal ports.Journal,
	opts ConverterOptions,
	logger *slog.Logger,
) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = DefaultBackupSuffix
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Converter{
		registry: registry,
		ui:       ui,
		locks:    locks,
		files:    files,
		journal:  journal,
		splitter: NewSplitter(logger),
		opts:     opts,
		logger:   logger,
	}
}

// Run converts source. suffix selects the export kind for projects and is
// ignored otherwise. The status line is also sent to the UI.
func (c *Converter) Run(ctx context.Context, source, suffix string) Report {
	r := Report{Source: source}
	err := c.run(ctx, source, suffix, &r)
	return c.finish(ctx, &r, err)
}

// Export writes an in-memory novel as the document of the given suffix
// next to projectPath.
func (c *Converter) Export(ctx context.Context, novel *entities.Novel, projectPath, suffix string) Report {
	r := Report{Action: entities.ActionExport, Source: projectPath}
	err := c.export(novel, projectPath, suffix, &r)
	return c.finish(ctx, &r, err)
}

func (c *Converter) run(ctx context.Context, source, suffix string, r *Report) error {
	if !c.files.Exists(source) {
		return fmt.Errorf("%w: %q", errs.ErrNotFound, source)
	}

	if c.registry.IsProject(source) {
		r.Action = entities.ActionExport
		novel := entities.NewNovel()
		if err := c.registry.Project(source).Read(novel); err != nil {
			return err
		}
		return c.export(novel, source, suffix, r)
	}
	if imp, ok := c.registry.Importer(source); ok {
		r.Action = entities.ActionUpdate
		return c.update(ctx, source, imp, r)
	}
	r.Action = entities.ActionCreate
	return c.create(ctx, source, r)
}

func (c *Converter) export(novel *entities.Novel, projectPath, suffix string, r *Report) error {
	doc, target, err := c.registry.Exporter(projectPath, suffix)
	if err != nil {
		return err
	}
	r.Target = target
	if c.locks.IsLocked(target) {
		return errs.Locked(target)
	}
	if c.files.Exists(target) && !c.ui.Ask(fmt.Sprintf("Overwrite existing file %q?", target)) {
		return errs.ErrCancelled
	}
	if err := doc.Write(novel); err != nil {
		return err
	}
	r.Status = fmt.Sprintf("File written: %q.", target)
	return nil
}

func (c *Converter) update(ctx context.Context, source string, imp ports.Import, r *Report) error {
	r.Target = imp.Project
	if !c.files.Exists(imp.Project) {
		return fmt.Errorf("%w: no project %q for %q", errs.ErrNotFound, imp.Project, source)
	}
	if c.locks.IsLocked(source) && !c.opts.AllowLocked {
		return errs.Locked(source)
	}
	if c.locks.IsLocked(imp.Project) {
		return errs.Locked(imp.Project)
	}
	if !c.ui.Ask(fmt.Sprintf("Update the project %q from %q?", imp.Project, source)) {
		return errs.ErrCancelled
	}

	project := c.registry.Project(imp.Project)
	novel := entities.NewNovel()
	if err := project.Read(novel); err != nil {
		return err
	}
	if err := imp.Document.Read(novel); err != nil {
		return err
	}
	split := imp.Split && c.splitter.SplitSections(novel)
	if err := c.writeProject(ctx, project, imp.Project, novel); err != nil {
		return err
	}
	r.Status = fmt.Sprintf("Project %q updated.", imp.Project)

	if split {
		backup := c.backupPath(source)
		if err := c.files.Rename(source, backup); err != nil {
			return fmt.Errorf("renaming split document %q: %w", source, err)
		}
		r.Split = true
		r.Status += fmt.Sprintf(" Sections were split; %q renamed to %q.", source, backup)
		c.logger.Info("renamed split document", "source", source, "backup", backup)
	}
	return nil
}

func (c *Converter) create(ctx context.Context, source string, r *Report) error {
	doc, target := c.registry.WIP(source)
	r.Target = target
	if c.files.Exists(target) {
		return fmt.Errorf("%w: %q", errs.ErrExists, target)
	}
	if c.locks.IsLocked(source) && !c.opts.AllowLocked {
		return errs.Locked(source)
	}
	novel := entities.NewNovel()
	if err := doc.Read(novel); err != nil {
		return err
	}
	if novel.Locale() == "" && c.opts.DefaultLocale != "" {
		if err := novel.SetLocale(c.opts.DefaultLocale); err != nil {
			c.logger.Warn("ignoring default locale", "locale", c.opts.DefaultLocale, "error", err)
		}
	}
	if err := c.writeProject(ctx, c.registry.Project(target), target, novel); err != nil {
		return err
	}
	r.Status = fmt.Sprintf("File written: %q.", target)
	return nil
}

// writeProject saves the novel, logging the word count first when the
// project asks for it.
func (c *Converter) writeProject(ctx context.Context, project ports.Document, path string, novel *entities.Novel) error {
	now := c.opts.Now()
	date := now.Format(entities.DateLayout)
	count, withUnused := novel.CountWords()
	if novel.SaveWordCount() {
		if err := novel.LogWordCount(date, entities.WordCountEntry{Count: count, WithUnused: withUnused}); err != nil {
			return fmt.Errorf("logging word count: %w", err)
		}
	}
	if err := project.Write(novel); err != nil {
		return err
	}
	if c.journal != nil {
		entry := entities.ProgressEntry{
			Project:    path,
			Date:       date,
			Count:      count,
			WithUnused: withUnused,
			RecordedAt: now,
		}
		if err := c.journal.SaveProgress(ctx, entry); err != nil {
			c.logger.Warn("cannot record progress", "project", path, "error", err)
		}
	}
	return nil
}

func (c *Converter) backupPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + c.opts.BackupSuffix + ext
}

// finish turns err into the report status, notifies the UI and records the
// conversion.
func (c *Converter) finish(ctx context.Context, r *Report, err error) Report {
	if err != nil {
		r.Err = err
		r.Status = errs.Status(err)
	}
	c.ui.SetStatus(r.Status)

	switch {
	case err == nil:
		c.logger.Info("conversion finished", "action", r.Action, "source", r.Source, "target", r.Target)
	case errs.IsNotification(r.Status):
		c.logger.Info("conversion canceled", "action", r.Action, "source", r.Source)
	default:
		c.logger.Error("conversion failed", "action", r.Action, "source", r.Source, "error", err)
	}

	if c.journal != nil {
		entry := entities.AuditEntry{
			Action:    r.Action,
			Source:    r.Source,
			Target:    r.Target,
			Status:    r.Status,
			CreatedAt: c.opts.Now(),
		}
		if r.Split {
			entry.Details = map[string]any{"split": true}
		}
		if err := c.journal.LogAction(ctx, entry); err != nil {
			c.logger.Warn("cannot record conversion", "source", r.Source, "error", err)
		}
	}
	return *r
}
