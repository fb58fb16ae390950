package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Lee-Tyrer/grandexchange-go/internal/adapters/metrics"
	priceQueries "github.com/Lee-Tyrer/grandexchange-go/internal/application/prices/queries"
	"github.com/Lee-Tyrer/grandexchange-go/internal/infrastructure/logging"
)

// newWatchCommand creates the watch command
func newWatchCommand() *cobra.Command {
	var (
		interval   time.Duration
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "watch <item>...",
		Short: "Poll item prices and publish them as metrics",
		Long: `Poll the latest prices of items on an interval, print them and publish
them as Prometheus gauges when metrics are enabled.

Examples:
  gex watch "Abyssal whip" "Rune platebody"
  gex watch "Abyssal whip" --interval 5m --metrics`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = app.Config.Calculator.WatchInterval
			}
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, cmd, app, args, interval, iterations)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Time between polls (default: calculator.watch_interval from config)")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "Stop after this many polls (0 runs until interrupted)")

	return cmd
}

// runWatch polls until ctx is done or the iterations run out, serving metrics alongside
func runWatch(ctx context.Context, cmd *cobra.Command, app *App, names []string, interval time.Duration, iterations int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	if app.Config.Metrics.Enabled {
		server := metrics.NewServer(app.Config.Metrics.Address(), app.Config.Metrics.Path)
		g.Go(func() error {
			return server.Run(ctx)
		})
	}

	g.Go(func() error {
		// the metrics server stops with the poller
		defer cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for i := 0; iterations == 0 || i < iterations; i++ {
			if i > 0 {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}

			if err := pollOnce(ctx, cmd, app, names); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				app.Logger.Warn("price poll failed", logging.Error(err))
			}
		}
		return nil
	})

	return g.Wait()
}

func pollOnce(ctx context.Context, cmd *cobra.Command, app *App, names []string) error {
	app.Prices.Invalidate()

	response, err := app.Send(ctx, &priceQueries.GetOffersQuery{Names: names})
	if err != nil {
		return fmt.Errorf("failed to get prices: %w", err)
	}

	result, ok := response.(*priceQueries.GetOffersResponse)
	if !ok {
		return fmt.Errorf("unexpected response type")
	}

	now := app.Clock.Now()
	for _, offer := range result.Offers {
		app.PriceMetrics.RecordOffer(offer, now.Unix())
	}
	app.Logger.Debug("prices polled", slog.Int("items", len(result.Offers)))

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", now.UTC().Format(time.RFC3339))
	printOffers(cmd.OutOrStdout(), result.Offers)
	return nil
}
