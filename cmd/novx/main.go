// Package main provides the entry point for the novx CLI application.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalYes     bool
	globalVerbose bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "novx",
		Short:         "Convert novx projects to and from office documents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(globalVerbose))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&globalYes, "yes", "y", false, "Answer yes to all questions")
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(
		newConvertCmd(),
		newSplitCmd(),
		newInfoCmd(),
		newCheckCmd(),
		newPlotLinesCmd(),
		newCharactersCmd(),
		newProgressCmd(),
		newHistoryCmd(),
		newConfigCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
