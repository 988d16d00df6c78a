package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/eringen/garden"
)

var buildFlags struct {
	contentDir string
	outputDir  string
	workers    int
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Ingest the content folder and render the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(func(c *garden.SiteConfig) {
			if buildFlags.contentDir != "" {
				c.ContentDir = buildFlags.contentDir
			}
			if buildFlags.outputDir != "" {
				c.OutputDir = buildFlags.outputDir
			}
			if buildFlags.workers > 0 {
				c.Workers = buildFlags.workers
			}
		})
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		if _, err := app.Ingest(ctx); err != nil {
			return err
		}
		res, err := app.Build(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %s pages into %s in %s\n",
			humanize.Comma(int64(res.Pages)), app.Config.OutputDir, res.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildFlags.contentDir, "content", "", "content directory (overrides config)")
	buildCmd.Flags().StringVarP(&buildFlags.outputDir, "out", "o", "", "output directory (overrides config)")
	buildCmd.Flags().IntVar(&buildFlags.workers, "workers", 0, "render workers (overrides config)")
}
