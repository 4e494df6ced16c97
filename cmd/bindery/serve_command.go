package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bindery/internal/daemon"
	"bindery/internal/logging"
	"bindery/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bindery HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger, err := ctx.newLogger(os.Stdout)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			eng, err := ctx.buildEngine(logger)
			if err != nil {
				return err
			}
			defer eng.Close()

			srv, err := server.New(server.Options{
				Catalog:  eng.catalog,
				Resolver: eng.resolver,
				Cache:    eng.cache,
				Searcher: eng.searcher,
				Budget:   eng.cfg.Covers.Budget,
				Display:  eng.cfg.LiveSearch.Display,
				Logger:   logger,
				Metrics:  eng.metrics,
			})
			if err != nil {
				return fmt.Errorf("build server: %w", err)
			}

			d, err := daemon.New(eng.cfg, srv.Handler(), logger)
			if err != nil {
				return fmt.Errorf("build daemon: %w", err)
			}
			if err := d.Start(signalCtx); err != nil {
				return err
			}
			defer d.Stop()

			logger.Info("serving catalog",
				logging.Int("records", eng.catalog.Len()),
				logging.String("address", d.Addr()))

			<-signalCtx.Done()
			return nil
		},
	}
}
