package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

func newProgressCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "progress <project.novx>",
		Short: "Show the word-count log recorded by conversions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, format) {
				return fmt.Errorf("invalid format %q, valid formats: %v", format, validFormats)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				entries, err := d.ProgressHandler.HandleProgress(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("reading progress: %w", err)
				}
				if len(entries) == 0 {
					fmt.Println("No progress recorded.")
					return nil
				}
				return formatProgress(os.Stdout, format, entries)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, csv, markdown)")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the latest conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				entries, err := d.ProgressHandler.HandleHistory(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("reading history: %w", err)
				}
				if len(entries) == 0 {
					fmt.Println("No conversions recorded.")
					return nil
				}
				return formatHistory(os.Stdout, entries)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultHistoryLimit, "Maximum number of entries to display")

	return cmd
}

func formatProgress(w io.Writer, format string, entries []entities.ProgressEntry) error {
	switch format {
	case "text":
		return formatProgressText(w, entries)
	case "json":
		return formatProgressJSON(w, entries)
	case "csv":
		return formatProgressCSV(w, entries)
	case "markdown":
		return formatProgressMarkdown(w, entries)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatProgressText(w io.Writer, entries []entities.ProgressEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s  %7d  %7d\n", e.Date, e.Count, e.WithUnused); err != nil {
			return err
		}
	}
	return nil
}

func formatProgressJSON(w io.Writer, entries []entities.ProgressEntry) error {
	type exportEntry struct {
		Date       string `json:"date"`
		Count      int    `json:"count"`
		WithUnused int    `json:"with_unused"`
	}

	out := make([]exportEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, exportEntry{Date: e.Date, Count: e.Count, WithUnused: e.WithUnused})
	}
	return writeJSON(w, out)
}

func formatProgressCSV(w io.Writer, entries []entities.ProgressEntry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"date", "count", "with_unused"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{e.Date, strconv.Itoa(e.Count), strconv.Itoa(e.WithUnused)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatProgressMarkdown(w io.Writer, entries []entities.ProgressEntry) error {
	if _, err := fmt.Fprint(w, "| Date | Words | With unused |\n|------|-------|-------------|\n"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "| %s | %d | %d |\n", e.Date, e.Count, e.WithUnused); err != nil {
			return err
		}
	}
	return nil
}

func formatHistory(w io.Writer, entries []entities.AuditEntry) error {
	for _, e := range entries {
		status := strings.ReplaceAll(e.Status, "\n", " ")
		if _, err := fmt.Fprintf(w, "%s  %-6s  %s -> %s\n  %s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Action, e.Source, e.Target, status); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
