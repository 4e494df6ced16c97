package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bindery/internal/covers"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var (
		track   string
		major   string
		keyword string
		budget  int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve covers for catalog records",
		Long: "Runs one budget-bounded resolution sweep over the selected catalog records.\n" +
			"At most budget records are attempted per sweep; the rest are reported\n" +
			"not-attempted so repeat runs work through a large catalog incrementally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.newLogger(os.Stderr)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			eng, err := ctx.buildEngine(logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			if budget <= 0 {
				budget = eng.cfg.Covers.Budget
			}
			scheduler, err := covers.NewScheduler(eng.resolver, budget, logger, eng.metrics)
			if err != nil {
				return fmt.Errorf("build scheduler: %w", err)
			}

			records := eng.catalog.Filter(track, major, keyword)
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records match the given filters.")
				return nil
			}

			type result struct {
				Track       string `json:"track"`
				Major       string `json:"major"`
				Title       string `json:"title"`
				State       string `json:"state"`
				Image       string `json:"image,omitempty"`
				Fingerprint string `json:"fingerprint"`
			}
			results := make([]result, 0, len(records))
			err = scheduler.ResolveAll(cmd.Context(), records, func(u covers.Update) {
				res := result{
					Track:       u.Record.Track,
					Major:       u.Record.Major,
					Title:       u.Record.Title,
					State:       string(u.State),
					Fingerprint: u.Fingerprint,
				}
				if u.Cover != nil {
					res.Image = u.Cover.Image
				}
				results = append(results, res)
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, results)
			}

			rows := make([][]string, 0, len(results))
			var found, missing, skipped int
			for _, res := range results {
				switch res.State {
				case string(covers.StateFound):
					found++
				case string(covers.StateNotFound):
					missing++
				case string(covers.StateNotAttempted):
					skipped++
				}
				rows = append(rows, []string{
					res.Track,
					res.Major,
					truncate(res.Title, 40),
					res.State,
					truncate(res.Image, 48),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Track", "Major", "Title", "State", "Image"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d found, %d not found, %d not attempted (budget %d)\n",
				found, missing, skipped, budget)
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "Filter by track")
	cmd.Flags().StringVar(&major, "major", "", "Filter by major")
	cmd.Flags().StringVarP(&keyword, "query", "q", "", "Keyword filter across record fields")
	cmd.Flags().IntVar(&budget, "budget", 0, "Maximum records to resolve this sweep (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}
