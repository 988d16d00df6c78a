package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/garden"
)

var serveFlags struct {
	addr  string
	watch bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live preview of the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(func(c *garden.SiteConfig) {
			if serveFlags.addr != "" {
				c.Addr = serveFlags.addr
			}
			if serveFlags.watch {
				c.Watch = true
			}
		})
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- app.Start() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errc
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVarP(&serveFlags.watch, "watch", "w", false, "re-ingest when content changes")
}
