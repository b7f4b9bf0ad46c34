// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

const (
	// DefaultConfigDir is the directory name for novx configuration.
	DefaultConfigDir = ".novx"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultJournalFile is the journal database file name.
	DefaultJournalFile = "journal.db"
	// EnvPrefix prefixes environment overrides, e.g. NOVX_IMPORT_ALLOW_LOCKED.
	EnvPrefix = "NOVX_"
)

// Config holds the converter settings.
type Config struct {
	// Locale is used for new projects whose document names no language.
	Locale string `yaml:"locale,omitempty" env:"LOCALE"`
	// TempDir is where ODF containers are assembled; empty uses the
	// system temp directory.
	TempDir string        `yaml:"temp_dir,omitempty" env:"TEMP_DIR"`
	Import  ImportConfig  `yaml:"import" envPrefix:"IMPORT_"`
	Export  ExportConfig  `yaml:"export" envPrefix:"EXPORT_"`
	Journal JournalConfig `yaml:"journal" envPrefix:"JOURNAL_"`
}

// ImportConfig controls updating projects from documents.
type ImportConfig struct {
	// AllowLocked imports documents that are open in an office application.
	AllowLocked bool `yaml:"allow_locked" env:"ALLOW_LOCKED"`
	// BackupSuffix renames documents whose sections were split.
	BackupSuffix string `yaml:"backup_suffix,omitempty" env:"BACKUP_SUFFIX"`
}

// ExportConfig controls written files.
type ExportConfig struct {
	// KeepBackup keeps the previous version of a replaced file as ".bak".
	KeepBackup bool `yaml:"keep_backup" env:"KEEP_BACKUP"`
}

// JournalConfig holds configuration for the SQLite conversion journal.
type JournalConfig struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// Path is the database file; empty uses .novx/journal.db.
	Path string `yaml:"path,omitempty" env:"PATH"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			BackupSuffix: "_bak",
		},
		Journal: JournalConfig{
			Enabled: true,
		},
	}
}

// Load loads configuration from the .novx directory in the given path. A
// missing file yields the defaults. Environment variables override the file.
func Load(basePath string) (*Config, error) {
	configFile := FilePath(basePath)

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(configFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if c.Locale != "" {
		if _, _, err := entities.ParseLocale(c.Locale); err != nil {
			return fmt.Errorf("config locale: %w", err)
		}
	}
	return nil
}

// JournalPath returns the journal database path.
func (c *Config) JournalPath(basePath string) string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return filepath.Join(basePath, DefaultConfigDir, DefaultJournalFile)
}

// Dir returns the path to the .novx config directory.
func Dir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// FilePath returns the path to the config file.
func FilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a novx config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(FilePath(basePath))
	return err == nil
}
