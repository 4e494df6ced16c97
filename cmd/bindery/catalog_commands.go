package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the book catalog",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogMajorsCommand(ctx))
	catalogCmd.AddCommand(newCatalogTracksCommand(ctx))

	return catalogCmd
}

func loadCatalog(ctx *commandContext) (*catalog.Catalog, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var (
		track   string
		major   string
		keyword string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(ctx)
			if err != nil {
				return err
			}
			records := cat.Filter(track, major, keyword)
			if jsonOut {
				return writeJSON(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records match the given filters.")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Track,
					rec.Major,
					truncate(rec.Title, 44),
					truncate(rec.Author, 24),
					truncate(rec.Publisher, 20),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Track", "Major", "Title", "Author", "Publisher"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d record(s)\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "Filter by track")
	cmd.Flags().StringVar(&major, "major", "", "Filter by major")
	cmd.Flags().StringVarP(&keyword, "query", "q", "", "Keyword filter across record fields")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCatalogMajorsCommand(ctx *commandContext) *cobra.Command {
	var track string

	cmd := &cobra.Command{
		Use:   "majors",
		Short: "List majors, collated for Korean",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(ctx)
			if err != nil {
				return err
			}
			for _, major := range cat.Majors(track) {
				fmt.Fprintln(cmd.OutOrStdout(), major)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "Restrict to one track")
	return cmd
}

func newCatalogTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "List tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(ctx)
			if err != nil {
				return err
			}
			for _, track := range cat.Tracks() {
				fmt.Fprintln(cmd.OutOrStdout(), track)
			}
			return nil
		},
	}
}
