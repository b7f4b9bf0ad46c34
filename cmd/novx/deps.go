package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/peter88213/novelibre-sub001/internal/application/handlers"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
	"github.com/peter88213/novelibre-sub001/internal/domain/services"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/config"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/filelock"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/fileutil"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/formats"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/journal/sqlite"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - registries and the journal are internal.
type Deps struct {
	Config           *config.Config
	ConvertHandler   *handlers.ConvertHandler
	SplitHandler     *handlers.SplitHandler
	InfoHandler      *handlers.InfoHandler
	CheckHandler     *handlers.CheckHandler
	ReferenceHandler *handlers.ReferenceHandler
	ProgressHandler  *handlers.ProgressHandler
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	journal, closeJournal, err := openJournal(ctx, cfg, cwd)
	if err != nil {
		return err
	}
	defer closeJournal()

	logger := slog.Default()
	registry := formats.New(odf.Options{
		TempDir:    cfg.TempDir,
		KeepBackup: cfg.Export.KeepBackup,
	}, logger)
	locks := filelock.New()
	ui := newTerminalUI(os.Stdin, os.Stdout, globalYes)

	converter := services.NewConverter(registry, ui, locks, fileutil.FS{}, journal, services.ConverterOptions{
		AllowLocked:   cfg.Import.AllowLocked,
		BackupSuffix:  cfg.Import.BackupSuffix,
		DefaultLocale: cfg.Locale,
	}, logger)

	deps := &Deps{
		Config:           cfg,
		ConvertHandler:   handlers.NewConvertHandler(converter),
		SplitHandler:     handlers.NewSplitHandler(registry, locks, journal, logger),
		InfoHandler:      handlers.NewInfoHandler(registry),
		CheckHandler:     handlers.NewCheckHandler(registry),
		ReferenceHandler: handlers.NewReferenceHandler(registry, locks),
		ProgressHandler:  handlers.NewProgressHandler(journal),
	}
	return fn(deps)
}

// openJournal opens the SQLite journal if it is enabled. The returned
// journal is nil otherwise.
func openJournal(ctx context.Context, cfg *config.Config, basePath string) (ports.Journal, func(), error) {
	if !cfg.Journal.Enabled {
		return nil, func() {}, nil
	}
	repo, err := sqlite.NewRepository(cfg.JournalPath(basePath))
	if err != nil {
		return nil, nil, fmt.Errorf("creating sqlite journal: %w", err)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("ensuring journal schema: %w", err)
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			slog.Warn("closing journal", "error", err)
		}
	}, nil
}
