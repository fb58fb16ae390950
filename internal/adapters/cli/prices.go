package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	priceQueries "github.com/Lee-Tyrer/grandexchange-go/internal/application/prices/queries"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/analytics"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/pkg/utils"
)

// newPricesCommand creates the prices command
func newPricesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices <item>...",
		Short: "Show the latest prices of items",
		Long: `Show the latest instant-sell (lowest) and instant-buy (highest) prices of items.

Examples:
  gex prices "Abyssal whip"
  gex prices "Abyssal whip" "Rune platebody"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			response, err := app.Send(cmd.Context(), &priceQueries.GetOffersQuery{Names: args})
			if err != nil {
				return fmt.Errorf("failed to get prices: %w", err)
			}

			result, ok := response.(*priceQueries.GetOffersResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			printOffers(cmd.OutOrStdout(), result.Offers)
			return nil
		},
	}

	return cmd
}

// newHistoryCommand creates the history command
func newHistoryCommand() *cobra.Command {
	var (
		timestep string
		window   int
		rows     int
	)

	cmd := &cobra.Command{
		Use:   "history <item>",
		Short: "Show the price history of an item",
		Long: `Show summary statistics and the most recent buckets of an item's price history.

Examples:
  gex history "Abyssal whip"
  gex history "Abyssal whip" --timestep 1h --window 12 --rows 24`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			step, err := resolveTimestep(cmd, app, timestep)
			if err != nil {
				return err
			}

			response, err := app.Send(cmd.Context(), &priceQueries.GetTimeseriesQuery{
				Name:     args[0],
				Timestep: step,
				Window:   window,
			})
			if err != nil {
				return fmt.Errorf("failed to get price history: %w", err)
			}

			result, ok := response.(*priceQueries.GetTimeseriesResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			printHistory(cmd, result, window, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&timestep, "timestep", "", "Bucket size: 5m, 1h, 6h or 24h (default: calculator.timestep from config)")
	cmd.Flags().IntVar(&window, "window", 0, "Rolling average window in buckets (0 disables)")
	cmd.Flags().IntVar(&rows, "rows", 10, "Number of recent buckets to print")

	return cmd
}

func resolveTimestep(cmd *cobra.Command, app *App, timestep string) (items.Timestep, error) {
	if !cmd.Flags().Changed("timestep") {
		timestep = app.Config.Calculator.Timestep
	}
	return items.ParseTimestep(timestep)
}

func printHistory(cmd *cobra.Command, result *priceQueries.GetTimeseriesResponse, window, rows int) {
	out := cmd.OutOrStdout()
	ts := result.Timeseries

	fmt.Fprintf(out, "%s (%s, %d buckets, %s traded)\n\n",
		ts.Item().Name(), ts.Timestep(), ts.Len(), utils.FormatCoins(ts.TotalVolume()))

	w := newTable(out)
	fmt.Fprintln(w, "SERIES\tCOUNT\tMEAN\tSTDDEV\tMIN\tMAX")
	fmt.Fprintln(w, "------\t-----\t----\t------\t---\t---")
	for _, row := range []struct {
		name    string
		summary analytics.Summary
	}{
		{"lowest", result.LowestSummary},
		{"highest", result.HighestSummary},
		{"margin", result.MarginSummary},
	} {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			row.name,
			row.summary.Count,
			formatFloat(row.summary.Mean),
			formatFloat(row.summary.StdDev),
			formatFloat(row.summary.Min),
			formatFloat(row.summary.Max),
		)
	}
	w.Flush()
	fmt.Fprintln(out)

	start := ts.Len() - utils.Clamp(rows, 0, ts.Len())
	lowest := ts.Lowest()
	highest := ts.Highest()

	w = newTable(out)
	header := "TIME\tLOWEST\tHIGHEST\tSALE RATE"
	divider := "----\t------\t-------\t---------"
	if window > 0 {
		header += "\tROLLING LOW\tROLLING HIGH"
		divider += "\t-----------\t------------"
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, divider)
	for i := start; i < ts.Len(); i++ {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s",
			lowest[i].Time().UTC().Format("2006-01-02 15:04"),
			formatPrice(lowest[i]),
			formatPrice(highest[i]),
			formatFloat(at(result.SaleRate, i)),
		)
		if window > 0 {
			// rolling value j covers buckets j..j+window-1, so bucket i closes window i-window+1
			j := i - window + 1
			fmt.Fprintf(w, "\t%s\t%s", formatFloat(at(result.RollingLowest, j)), formatFloat(at(result.RollingHighest, j)))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func at(x []float64, i int) float64 {
	if i < 0 || i >= len(x) {
		return math.NaN()
	}
	return x[i]
}

// newSearchCommand creates the search command
func newSearchCommand() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Find catalog items with a similar name",
		Long: `Find catalog items whose name is similar to the given name, ignoring case.

Examples:
  gex search "abysal whip"
  gex search "dharok" --threshold 60`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("threshold") {
				threshold = app.Config.Catalog.SearchThreshold
			}

			response, err := app.Send(cmd.Context(), &priceQueries.SearchItemsQuery{
				Name:      args[0],
				Threshold: threshold,
			})
			if err != nil {
				return fmt.Errorf("failed to search items: %w", err)
			}

			result, ok := response.(*priceQueries.SearchItemsResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			out := cmd.OutOrStdout()
			if len(result.Items) == 0 {
				fmt.Fprintf(out, "No items match %s\n", quoteNames(args))
				return nil
			}

			w := newTable(out)
			fmt.Fprintln(w, "ID\tNAME\tSIMILARITY\tHIGH ALCH\tBUY LIMIT")
			fmt.Fprintln(w, "--\t----\t----------\t---------\t---------")
			for _, item := range result.Items {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
					item.ID(),
					item.Name(),
					items.Similarity(strings.ToLower(args[0]), strings.ToLower(item.Name())),
					optionalCoins(item.HighAlch()),
					optionalCoins(item.Limit()),
				)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 90, "Minimum similarity from 1 to 100 (default: catalog.search_threshold from config)")

	return cmd
}

func optionalCoins(v int, ok bool) string {
	return lo.Ternary(ok, utils.FormatCoins(v), "-")
}
