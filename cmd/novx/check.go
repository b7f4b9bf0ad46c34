package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <project.novx>",
		Short: "Check a project for broken references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				issues, err := d.CheckHandler.Handle(args[0])
				if err != nil {
					return fmt.Errorf("reading %s: %w", args[0], err)
				}
				if len(issues) == 0 {
					fmt.Println("No issues found.")
					return nil
				}
				for _, issue := range issues {
					fmt.Println(issue)
				}
				return fmt.Errorf("%d issues found", len(issues))
			})
		},
	}
}
