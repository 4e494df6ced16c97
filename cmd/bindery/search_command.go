package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bindery/internal/covers"
	"bindery/internal/livesearch"
	"bindery/internal/naver"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		display     int
		interactive bool
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search books by keyword",
		Long: "Issues one keyword search against the book search API. With --interactive,\n" +
			"reads queries line by line and applies the live panel's debounce discipline.",
		Args: cobra.MaximumNArgs(1),
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

			if display <= 0 {
				display = eng.cfg.LiveSearch.Display
			}

			if interactive {
				return runInteractiveSearch(cmd, eng, display)
			}
			if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("a query argument is required unless --interactive is set")
			}

			resp, err := eng.searcher.Search(cmd.Context(), strings.TrimSpace(args[0]), display)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			if jsonOut {
				return writeJSON(cmd, resp.Items)
			}
			printSearchItems(cmd, resp.Items)
			return nil
		},
	}

	cmd.Flags().IntVar(&display, "display", 0, "Result count per query (default from config)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Read queries from stdin with live search debouncing")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func runInteractiveSearch(cmd *cobra.Command, eng *engine, display int) error {
	out := cmd.OutOrStdout()
	controller, err := livesearch.New(livesearch.Options{
		Searcher: eng.searcher,
		Deliver: func(r livesearch.Results) {
			if r.Query == "" {
				return
			}
			if r.Err != nil {
				fmt.Fprintf(out, "search %q failed: %v\n", r.Query, r.Err)
				return
			}
			fmt.Fprintf(out, "results for %q:\n", r.Query)
			printSearchItems(cmd, r.Items)
		},
		Delay:   eng.cfg.Debounce(),
		Display: display,
		Logger:  eng.logger,
	})
	if err != nil {
		return fmt.Errorf("build live search: %w", err)
	}
	defer controller.Close()

	fmt.Fprintln(out, "Type a query and press enter; an empty line clears, Ctrl-D exits.")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		controller.Input(scanner.Text())
		if err := cmd.Context().Err(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printSearchItems(cmd *cobra.Command, items []naver.Item) {
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No results.")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			truncate(covers.StripMarkup(item.Title), 44),
			truncate(covers.StripMarkup(item.Author), 20),
			truncate(covers.StripMarkup(item.Publisher), 16),
			strings.TrimSpace(item.ISBN),
			truncate(strings.TrimSpace(item.Image), 40),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Title", "Author", "Publisher", "ISBN", "Image"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
}
