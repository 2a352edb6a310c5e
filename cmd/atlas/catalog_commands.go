package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"atlas/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage catalogue records",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogAddCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))
	catalogCmd.AddCommand(newCatalogClearCommand(ctx))
	catalogCmd.AddCommand(newCatalogStatsCommand(ctx))

	return catalogCmd
}

func parseCategoryFlag(value string) (catalog.Category, error) {
	category, ok := catalog.ParseCategory(value)
	if !ok {
		names := make([]string, 0, len(catalog.AllCategories()))
		for _, c := range catalog.AllCategories() {
			names = append(names, string(c))
		}
		return "", fmt.Errorf("unknown category %q (expected one of %s)", value, strings.Join(names, ", "))
	}
	return category, nil
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records in a category",
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
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintf(out, "No %s records found\n", category)
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						record.ID,
						record.Title,
						record.Location,
						yesNo(record.HasImage()),
						record.CreatedAt.Format("2006-01-02"),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Location", "Image", "Created"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Record category (required)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newCatalogAddCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string
	var description string
	var location string
	var price string
	var history string
	var fromFile string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a record to the catalogue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryFlag(categoryFlag)
			if err != nil {
				return err
			}
			var title string
			if len(args) > 0 {
				title = args[0]
			} else if fromFile != "" {
				title = catalog.DeriveTitle(fromFile)
			}
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("provide a title argument or --from-file to derive one")
			}
			return ctx.withStore(func(store *catalog.Store) error {
				record, err := store.Create(cmd.Context(), catalog.Record{
					Category:    category,
					Title:       title,
					Description: description,
					Location:    location,
					Price:       price,
					History:     history,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s record %s (%s)\n", category, record.Title, record.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Record category (required)")
	cmd.Flags().StringVar(&description, "description", "", "Record description")
	cmd.Flags().StringVar(&location, "location", "", "Record location")
	cmd.Flags().StringVar(&price, "price", "", "Price or admission details")
	cmd.Flags().StringVar(&history, "history", "", "Historical background")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "Derive the title from an image filename")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a record's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				record, err := store.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:          %s\n", record.ID)
				fmt.Fprintf(out, "Category:    %s\n", record.Category)
				fmt.Fprintf(out, "Title:       %s\n", record.Title)
				fmt.Fprintf(out, "Description: %s\n", record.Description)
				fmt.Fprintf(out, "Location:    %s\n", record.Location)
				if record.Price != "" {
					fmt.Fprintf(out, "Price:       %s\n", record.Price)
				}
				if record.History != "" {
					fmt.Fprintf(out, "History:     %s\n", record.History)
				}
				fmt.Fprintf(out, "Image URL:   %s\n", record.ImageURL)
				if record.ImageName != "" {
					fmt.Fprintf(out, "Image name:  %s\n", record.ImageName)
				}
				fmt.Fprintf(out, "Created:     %s\n", record.CreatedAt.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a record from the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				removed, err := store.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no record with id %s", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed record %s\n", args[0])
				return nil
			})
		},
	}
}

func newCatalogClearCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every record in a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategoryFlag(categoryFlag)
			if err != nil {
				return err
			}
			if !confirm {
				return fmt.Errorf("clearing %s records is destructive; re-run with --yes to confirm", category)
			}
			return ctx.withStore(func(store *catalog.Store) error {
				removed, err := store.Clear(cmd.Context(), category)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s records\n", removed, category)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Record category (required)")
	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the removal")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newCatalogStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				stats, err := store.CountStats(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(catalog.AllCategories()))
				for _, category := range catalog.AllCategories() {
					rows = append(rows, []string{
						string(category),
						fmt.Sprintf("%d", stats.PerCategory[category]),
					})
				}
				rows = append(rows, []string{"total", fmt.Sprintf("%d", stats.Total)})
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Category", "Records"}, rows, 2))
				return nil
			})
		},
	}
}
