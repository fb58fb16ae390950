package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/ports"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/shared"
	"github.com/Lee-Tyrer/grandexchange-go/internal/infrastructure/config"
)

type contextKey int

const appKey contextKey = iota

var errNoApp = errors.New("application not initialised")

// rootOptions are the global flags
type rootOptions struct {
	configPath string
	server     string
	logLevel   string
	verbose    bool
	metrics    bool

	// feed and clock replace the HTTP client and wall clock in tests
	feed  ports.PriceFeedClient
	clock shared.Clock
}

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gex",
		Short: "gex - Grand Exchange prices and profit calculators",
		Long: `gex looks up Old School RuneScape Grand Exchange prices from the wiki price feed
and works out the profit of common money making methods after tax.

Examples:
  gex prices "Abyssal whip" "Rune platebody"
  gex history "Abyssal whip" --timestep 1h --window 12
  gex flip "Abyssal whip" --volume 10
  gex best-flip --top 20
  gex decant "Prayer potion" --dose 4
  gex planks "Mahogany logs" "Mahogany plank" --method plank-make
  gex repair "Dharok's greataxe" --level 70
  gex repair-set "Dharok's" --level 70
  gex plot "Abyssal whip" --output whip.png
  gex watch "Abyssal whip" --metrics`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			app, err := NewApp(cfg, opts.feed, opts.clock)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(app.Context(ctx), appKey, app))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return nil
			}
			return app.Close()
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.server, "server", "",
		"Price feed server: default, deadman or fresh-start")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.metrics, "metrics", false,
		"Enable Prometheus metrics")

	// Price lookups
	rootCmd.AddCommand(newPricesCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newPlotCommand())
	rootCmd.AddCommand(newWatchCommand())

	// Profit calculators
	rootCmd.AddCommand(newFlipCommand())
	rootCmd.AddCommand(newBestFlipCommand())
	rootCmd.AddCommand(newDecantCommand())
	rootCmd.AddCommand(newAlchCommand())
	rootCmd.AddCommand(newCombineCommand())
	rootCmd.AddCommand(newHerbsCommand())
	rootCmd.AddCommand(newUnfinishedCommand())
	rootCmd.AddCommand(newCrushCommand())
	rootCmd.AddCommand(newPlanksCommand())
	rootCmd.AddCommand(newRepairCommand())
	rootCmd.AddCommand(newRepairSetCommand())

	return rootCmd
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.server != "" {
		cfg.API.Server = opts.server
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	if opts.metrics {
		cfg.Metrics.Enabled = true
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// appFrom returns the app built by the root command's pre-run hook
func appFrom(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appKey).(*App)
	if !ok || app == nil {
		return nil, errNoApp
	}
	return app, nil
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
