package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"atlas/internal/bulkimage"
	"atlas/internal/catalog"
	"atlas/internal/logging"
)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	imagesCmd := &cobra.Command{
		Use:   "images",
		Short: "Match and upload record images in bulk",
	}

	imagesCmd.AddCommand(newImagesMatchCommand(ctx))
	imagesCmd.AddCommand(newImagesApplyCommand(ctx))

	return imagesCmd
}

func newImagesMatchCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string
	var query string

	cmd := &cobra.Command{
		Use:   "match <dir>",
		Short: "Preview how image files pair with records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryFlag(categoryFlag)
			if err != nil {
				return err
			}
			files, err := collectImageFiles(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintf(out, "No image files found in %s\n", args[0])
				return nil
			}

			return ctx.withStore(func(store *catalog.Store) error {
				records, err := store.List(cmd.Context(), category)
				if err != nil {
					return err
				}

				session := bulkimage.NewSession(records)
				if err := session.SelectFiles(files); err != nil {
					return err
				}

				matches := session.Filter(query)
				rows := make([][]string, 0, len(matches))
				for _, m := range matches {
					title := "(unmatched)"
					id := ""
					if m.Record != nil {
						title = m.Record.Title
						id = m.Record.ID
					}
					rows = append(rows, []string{m.File.Name, title, id})
				}
				fmt.Fprintln(out, renderTable([]string{"File", "Record", "ID"}, rows))
				fmt.Fprintf(out, "%d of %d files matched\n", session.MatchedCount(), session.TotalCount())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Record category (required)")
	cmd.Flags().StringVar(&query, "query", "", "Only show files or titles containing this text")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newImagesApplyCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string
	var assignments []string

	cmd := &cobra.Command{
		Use:   "apply <dir>",
		Short: "Upload matched images and update their records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryFlag(categoryFlag)
			if err != nil {
				return err
			}
			overrides, err := parseAssignments(assignments)
			if err != nil {
				return err
			}
			files, err := collectImageFiles(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no image files found in %s", args[0])
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

			blobs, err := ctx.blobStore()
			if err != nil {
				return err
			}
			logger := logging.NewComponentLogger(ctx.ensureLogger(), "images")
			notifier := ctx.notifier()
			out := cmd.OutOrStdout()

			return ctx.withStore(func(store *catalog.Store) error {
				records, err := store.List(cmd.Context(), category)
				if err != nil {
					return err
				}

				session := bulkimage.NewSession(records)
				if err := session.SelectFiles(files); err != nil {
					return err
				}
				for _, filename := range sortedKeys(overrides) {
					if err := session.Assign(filename, overrides[filename]); err != nil {
						return err
					}
				}

				matched, err := session.Begin()
				if err != nil {
					return err
				}
				defer session.Finish()

				logger.Info("bulk image update started",
					logging.String(logging.FieldCategory, string(category)),
					logging.Int("files", session.TotalCount()),
					logging.Int("matched", len(matched)))
				if notifier != nil {
					_ = notifier.NotifyBulkImagesStarted(cmd.Context(), len(matched))
				}

				progress := newProgressPrinter(out)
				updater := bulkimage.NewUpdater(blobs, store, logger)
				summary := bulkimage.Run(cmd.Context(), matched, updater, progress.update)
				progress.finish()

				rows := make([][]string, 0, len(summary.Items))
				for _, item := range summary.Items {
					status := "updated"
					detail := item.ImageURL
					if item.Err != nil {
						status = "failed"
						detail = item.Err.Error()
					}
					rows = append(rows, []string{item.File.Name, item.Title, status, detail})
				}
				fmt.Fprintln(out, renderTable([]string{"File", "Record", "Status", "Detail"}, rows))
				fmt.Fprintf(out, "%d updated, %d failed in %s\n",
					summary.SuccessCount, summary.ErrorCount, summary.Duration.Round(time.Millisecond))

				logger.Info("bulk image update completed",
					logging.Int("succeeded", summary.SuccessCount),
					logging.Int("failed", summary.ErrorCount))
				if notifier != nil {
					_ = notifier.NotifyBulkImagesCompleted(cmd.Context(), summary.SuccessCount, summary.ErrorCount, summary.Duration)
				}
				if summary.ErrorCount > 0 {
					return fmt.Errorf("%d of %d image updates failed", summary.ErrorCount, len(summary.Items))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Record category (required)")
	cmd.Flags().StringArrayVar(&assignments, "assign", nil, "Manual pairing as file=record-id (repeatable)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func parseAssignments(values []string) (map[string]string, error) {
	overrides := make(map[string]string, len(values))
	for _, value := range values {
		filename, recordID, ok := strings.Cut(value, "=")
		filename = strings.TrimSpace(filename)
		recordID = strings.TrimSpace(recordID)
		if !ok || filename == "" || recordID == "" {
			return nil, fmt.Errorf("invalid --assign value %q (expected file=record-id)", value)
		}
		overrides[filename] = recordID
	}
	return overrides, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
