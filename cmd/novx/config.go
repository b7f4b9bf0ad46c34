package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/peter88213/novelibre-sub001/internal/application/handlers"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/config"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/journal/sqlite"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the novx configuration",
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigShowCmd(),
	)

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long:  "Creates a .novx directory with default configuration and the conversion journal.",
		RunE:  runConfigInit,
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var journal ports.Journal
	if cfg.Journal.Enabled {
		repo, err := sqlite.NewRepository(cfg.JournalPath(cwd))
		if err != nil {
			return fmt.Errorf("creating sqlite journal: %w", err)
		}
		defer repo.Close()
		journal = repo
	}

	result, err := handlers.NewInitHandler(journal).Handle(cmd.Context(), cwd)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	if result.JournalPath != "" {
		fmt.Printf("Created journal: %s\n", result.JournalPath)
	}
	fmt.Println("novx initialized successfully!")
	return nil
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	}
}

func showConfig() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(cfg)
}
