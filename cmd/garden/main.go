package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eringen/garden"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "garden",
	Short: "garden - publish a folder of linked notes as a digital garden",
	Long: `garden turns a folder of markdown notes with wiki links into a static
site: breadcrumbs, backlinks, related notes and recent essays on every page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the garden version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "garden %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "garden.yaml", "site config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with GARDEN_* overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(versionCmd, buildCmd, serveCmd, newCmd)
}

// loadApp reads the config file and environment and applies flag overrides.
func loadApp(override func(*garden.SiteConfig)) (*garden.App, error) {
	cfg, err := garden.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(&cfg)
	}
	return garden.New(cfg, garden.WithLogger(slog.Default())), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
