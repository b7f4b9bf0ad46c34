package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peter88213/novelibre-sub001/internal/application/handlers"
)

func newInfoCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info <project.novx>",
		Short: "Show a project summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format %q, valid formats: [text json]", format)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				info, err := d.InfoHandler.Handle(args[0])
				if err != nil {
					return fmt.Errorf("reading %s: %w", args[0], err)
				}
				if format == "json" {
					return writeJSON(os.Stdout, info)
				}
				return displayInfo(os.Stdout, info)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")

	return cmd
}

func displayInfo(w io.Writer, info *handlers.InfoResult) error {
	lines := [][2]string{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Locale", info.Locale},
		{"Languages", strings.Join(slices.Sorted(slices.Values(info.Languages)), ", ")},
		{"Parts", fmt.Sprint(info.Parts)},
		{"Chapters", fmt.Sprint(info.Chapters)},
		{"Sections", fmt.Sprint(info.Sections)},
		{"Characters", fmt.Sprint(info.Characters)},
		{"Locations", fmt.Sprint(info.Locations)},
		{"Items", fmt.Sprint(info.Items)},
		{"Plot lines", fmt.Sprint(info.PlotLines)},
		{"Words", fmt.Sprintf("%d (%d with unused)", info.Words, info.WithUnused)},
		{"Issues", fmt.Sprint(info.Issues)},
	}
	for _, l := range lines {
		if l[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-11s %s\n", l[0]+":", l[1]); err != nil {
			return err
		}
	}
	return nil
}
