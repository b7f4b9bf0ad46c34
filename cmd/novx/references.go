package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peter88213/novelibre-sub001/internal/application/handlers"
)

func newPlotLinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "plotlines <project.novx> <section-id> <short names>",
		Short:   "Set the plot lines of a section",
		Example: `  novx plotlines book.novx sc3 "A;B"`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.ReferenceHandler.HandlePlotLines(args[0], args[1], args[2])
				return reportReferences(args[1], result, err)
			})
		},
	}
}

func newCharactersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "characters <project.novx> <section-id> <names>",
		Short:   "Set the characters of a section",
		Example: `  novx characters book.novx sc3 "Alice;Bob"`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.ReferenceHandler.HandleCharacters(args[0], args[1], args[2])
				return reportReferences(args[1], result, err)
			})
		},
	}
}

func reportReferences(sectionID string, result *handlers.ReferenceResult, err error) error {
	if err != nil {
		return fmt.Errorf("updating %s: %w", sectionID, err)
	}
	if result.Message != "" {
		fmt.Println(result.Message)
	}
	fmt.Printf("%s: %v\n", sectionID, result.IDs)
	return nil
}
