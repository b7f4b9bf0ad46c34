package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSplitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split <project.novx>",
		Short: "Split sections at their dividers",
		Long: `Turns divider lines in section content into new parts, chapters and sections:

  # Title|Description      new part
  ## Title|Description     new chapter
  ### Title|Description    new section
  #### Title|Description   new section appended to the previous one`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.SplitHandler.Handle(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("splitting %s: %w", args[0], err)
				}
				if !result.Split {
					fmt.Println("Nothing to split.")
					return nil
				}
				fmt.Printf("Added %d chapters and %d sections.\n", result.NewChapters, result.NewSections)
				return nil
			})
		},
	}
}
