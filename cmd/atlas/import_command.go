package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atlas/internal/catalog"
	"atlas/internal/logging"
	"atlas/internal/spreadsheet"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import records from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryFlag(categoryFlag)
			if err != nil {
				return err
			}

			rows, err := spreadsheet.Import(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rowErrors := spreadsheet.Validate(rows, category)
			if len(rowErrors) > 0 {
				for _, rowErr := range rowErrors {
					fmt.Fprintf(out, "  %s\n", rowErr.Error())
				}
				return fmt.Errorf("%d rows failed validation; nothing imported", len(rowErrors))
			}

			if dryRun {
				fmt.Fprintf(out, "Dry run: %d %s rows would be imported from %s\n", len(rows), category, args[0])
				return nil
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lock := catalog.NewLock(cfg.LockPath())
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			logger := logging.NewComponentLogger(ctx.ensureLogger(), "import")
			imported := 0
			err = ctx.withStore(func(store *catalog.Store) error {
				for _, row := range rows {
					record := spreadsheet.ToRecord(row, category)
					created, err := store.Create(cmd.Context(), record)
					if err != nil {
						return fmt.Errorf("row %d: %w", row.RowNumber, err)
					}
					logger.Debug("record imported",
						logging.String(logging.FieldRecordID, created.ID),
						logging.String("title", created.Title))
					imported++
				}
				return nil
			})
			if err != nil {
				if notifier := ctx.notifier(); notifier != nil {
					_ = notifier.NotifyError(cmd.Context(), err, "import")
				}
				return err
			}

			logger.Info("import completed",
				logging.String(logging.FieldCategory, string(category)),
				logging.Int("imported", imported))
			if notifier := ctx.notifier(); notifier != nil {
				_ = notifier.NotifyImportCompleted(cmd.Context(), string(category), imported, 0)
			}
			fmt.Fprintf(out, "Imported %d %s records from %s\n", imported, category, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Record category (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the spreadsheet without writing records")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
