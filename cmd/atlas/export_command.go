package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atlas/internal/catalog"
	"atlas/internal/spreadsheet"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export a category to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryFlag(categoryFlag)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				records, err := store.List(cmd.Context(), category)
				if err != nil {
					return err
				}
				if err := spreadsheet.Export(args[0], records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s records to %s\n", len(records), category, args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Record category (required)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
