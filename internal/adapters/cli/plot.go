package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lee-Tyrer/grandexchange-go/internal/adapters/chart"
	priceQueries "github.com/Lee-Tyrer/grandexchange-go/internal/application/prices/queries"
)

// newPlotCommand creates the plot command
func newPlotCommand() *cobra.Command {
	var (
		timestep string
		output   string
		window   int
	)

	cmd := &cobra.Command{
		Use:   "plot <item>",
		Short: "Chart the price history of an item",
		Long: `Chart the highest and lowest prices of an item over time.
The file extension of --output picks the format (png, svg, pdf).

Examples:
  gex plot "Abyssal whip"
  gex plot "Abyssal whip" --timestep 6h --window 4 --output whip.svg`,
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

			response, err := app.Send(cmd.Context(), &priceQueries.GetTimeseriesQuery{Name: args[0], Timestep: step})
			if err != nil {
				return fmt.Errorf("failed to get price history: %w", err)
			}

			result, ok := response.(*priceQueries.GetTimeseriesResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			path := output
			if path == "" {
				path = chart.DefaultFilename(result.Timeseries)
			}

			opts := chart.DefaultOptions()
			opts.Window = window
			if err := chart.Save(path, result.Timeseries, opts); err != nil {
				return fmt.Errorf("failed to plot price history: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&timestep, "timestep", "", "Bucket size: 5m, 1h, 6h or 24h (default: calculator.timestep from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <item>_<timestep>.png)")
	cmd.Flags().IntVar(&window, "window", 0, "Rolling mean window in buckets (0 disables)")

	return cmd
}
