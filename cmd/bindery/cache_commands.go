package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bindery/internal/cachedb"
	"bindery/internal/covers"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the durable cover cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func openCacheStore(ctx *commandContext) (*cachedb.DB, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, errors.New("cover cache is disabled in the configuration")
	}
	store, err := cachedb.Open(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("open cover cache: %w", err)
	}
	return store, nil
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached cover decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCacheStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			type listed struct {
				Key       string `json:"key"`
				Outcome   string `json:"outcome"`
				Image     string `json:"image,omitempty"`
				ExpiresAt string `json:"expires_at"`
				UpdatedAt string `json:"updated_at"`
			}
			now := time.Now()
			items := make([]listed, 0, len(entries))
			for _, entry := range entries {
				item := listed{Key: entry.Key, UpdatedAt: entry.UpdatedAt}
				cover, expiresAt, decodeErr := covers.DecodeEntry(entry.Payload)
				switch {
				case decodeErr != nil:
					item.Outcome = "malformed"
				case !expiresAt.After(now):
					item.Outcome = "expired"
					item.ExpiresAt = expiresAt.Format(time.RFC3339)
				case cover != nil:
					item.Outcome = "positive"
					item.Image = cover.Image
					item.ExpiresAt = expiresAt.Format(time.RFC3339)
				default:
					item.Outcome = "negative"
					item.ExpiresAt = expiresAt.Format(time.RFC3339)
				}
				items = append(items, item)
			}

			if jsonOut {
				return writeJSON(cmd, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty.")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					truncate(item.Key, 52),
					item.Outcome,
					truncate(item.Image, 40),
					item.ExpiresAt,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Key", "Outcome", "Image", "Expires"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d entries at %s\n", len(items), store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove one cached decision so the next sweep re-resolves it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCacheStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear the cache without --yes")
			}
			store, err := openCacheStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm clearing the cache")
	return cmd
}
