package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/formats"
)

func newConvertCmd() *cobra.Command {
	var suffixes []string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a project or document",
		Long: fmt.Sprintf(`Converts a file depending on its name:

  book.novx               exports an office document for each --suffix
  book<suffix>.odt/.ods   updates book.novx from a document written earlier
  anything else .odt      creates a new project from a work in progress

Valid suffixes: %q`, formats.ExportSuffixes()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], suffixes)
		},
	}

	cmd.Flags().StringArrayVarP(&suffixes, "suffix", "s", nil, "Export suffix, repeatable (default: plain document)")

	return cmd
}

func runConvert(cmd *cobra.Command, source string, suffixes []string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		reports := d.ConvertHandler.Handle(cmd.Context(), source, suffixes)
		for _, r := range reports {
			if r.Err != nil && !errors.Is(r.Err, errs.ErrCancelled) {
				return fmt.Errorf("%s %s: %w", r.Action, r.Source, r.Err)
			}
		}
		return nil
	})
}
