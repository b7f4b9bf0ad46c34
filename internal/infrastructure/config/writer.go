package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# novx configuration

# locale: en-US (used for new projects without a document language)
# temp_dir: /tmp

import:
  allow_locked: false
  backup_suffix: _bak

export:
  keep_backup: false

journal:
  enabled: true
  # path: .novx/journal.db
`

// WriteDefault creates the .novx directory and writes a default config file.
func WriteDefault(basePath string) error {
	configFile := FilePath(basePath)

	if err := os.MkdirAll(Dir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("%w: %s", errs.ErrExists, configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	if err := os.MkdirAll(Dir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(FilePath(basePath), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
