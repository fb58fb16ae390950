package cli

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	tradingQueries "github.com/Lee-Tyrer/grandexchange-go/internal/application/trading/queries"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// runTransactionQuery sends a query answered with a single transaction and prints it
func runTransactionQuery(cmd *cobra.Command, app *App, query mediator.Request, action string) error {
	response, err := app.Send(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	result, ok := response.(*tradingQueries.TransactionResponse)
	if !ok {
		return fmt.Errorf("unexpected response type")
	}

	printTransaction(cmd.OutOrStdout(), result.Transaction)
	return nil
}

// newFlipCommand creates the flip command
func newFlipCommand() *cobra.Command {
	var volume float64

	cmd := &cobra.Command{
		Use:   "flip <item>",
		Short: "Profit of buying at the lowest price and selling at the highest",
		Long: `Work out the profit of buying an item one coin above its lowest price
and selling it one coin below its highest price.

Examples:
  gex flip "Abyssal whip"
  gex flip "Abyssal whip" --volume 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			vol, err := resolveVolume(cmd, app, volume)
			if err != nil {
				return err
			}
			return runTransactionQuery(cmd, app, &tradingQueries.FlipQuery{Name: args[0], Volume: vol}, "flip item")
		},
	}

	addVolumeFlag(cmd, &volume)
	return cmd
}

// newBestFlipCommand creates the best-flip command
func newBestFlipCommand() *cobra.Command {
	var (
		volume float64
		top    int
	)

	cmd := &cobra.Command{
		Use:   "best-flip [item]...",
		Short: "Rank items by flip profit",
		Long: `Rank items by flip profit, most profitable first.
Without item names every traded item in the catalog is ranked.

Examples:
  gex best-flip --top 20
  gex best-flip "Abyssal whip" "Rune platebody" --volume 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			vol, err := resolveVolume(cmd, app, volume)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("top") {
				top = app.Config.Calculator.Top
			}

			response, err := app.Send(cmd.Context(), &tradingQueries.BestFlipQuery{
				Names:  args,
				Volume: vol,
				Top:    top,
			})
			if err != nil {
				return fmt.Errorf("failed to rank flips: %w", err)
			}

			result, ok := response.(*tradingQueries.TransactionsResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			printTransactions(cmd.OutOrStdout(), result.Transactions)
			return nil
		},
	}

	addVolumeFlag(cmd, &volume)
	cmd.Flags().IntVar(&top, "top", 10, "Number of flips to show, 0 for all (default: calculator.top from config)")
	return cmd
}

// newDecantCommand creates the decant command
func newDecantCommand() *cobra.Command {
	var (
		volume float64
		dose   int
	)

	cmd := &cobra.Command{
		Use:   "decant <potion>",
		Short: "Profit of decanting a potion into its other doses",
		Long: `Work out the profit of buying potions of one dose and decanting them
into each of the other doses.

Examples:
  gex decant "Prayer potion" --dose 4
  gex decant "Super restore(3)" --dose 3 --volume 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			vol, err := resolveVolume(cmd, app, volume)
			if err != nil {
				return err
			}

			response, err := app.Send(cmd.Context(), &tradingQueries.DecantQuery{
				Potion:       args[0],
				StartingDose: dose,
				Volume:       vol,
			})
			if err != nil {
				return fmt.Errorf("failed to decant potion: %w", err)
			}

			result, ok := response.(*tradingQueries.DecantResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			out := cmd.OutOrStdout()
			printTransactions(out, result.Transactions)
			fmt.Fprintln(out)

			w := newTable(out)
			fmt.Fprintln(w, "DOSE\tLOWEST PER DOSE\tHIGHEST PER DOSE")
			fmt.Fprintln(w, "----\t---------------\t----------------")
			doses := lo.Uniq(append(lo.Keys(result.LowestPerDoseValue), lo.Keys(result.HighestPerDoseValue)...))
			slices.Sort(doses)
			for _, d := range doses {
				fmt.Fprintf(w, "%d\t%s\t%s\n", d,
					formatPerDose(result.LowestPerDoseValue, d),
					formatPerDose(result.HighestPerDoseValue, d))
			}
			w.Flush()
			return nil
		},
	}

	addVolumeFlag(cmd, &volume)
	cmd.Flags().IntVar(&dose, "dose", 4, "Dose of the potions bought (1-4)")
	return cmd
}

func formatPerDose(values map[int]float64, dose int) string {
	v, ok := values[dose]
	if !ok {
		return "-"
	}
	return formatFloat(v)
}

// newAlchCommand creates the alch command
func newAlchCommand() *cobra.Command {
	var volume float64

	cmd := &cobra.Command{
		Use:   "alch <item>",
		Short: "Profit of casting High Level Alchemy on an item",
		Long: `Work out the profit of buying an item and a nature rune and casting
High Level Alchemy on it.

Examples:
  gex alch "Rune platebody"
  gex alch "Rune platebody" --volume 70`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			vol, err := resolveVolume(cmd, app, volume)
			if err != nil {
				return err
			}

			response, err := app.Send(cmd.Context(), &tradingQueries.HighAlchemyQuery{Name: args[0], Volume: vol})
			if err != nil {
				return fmt.Errorf("failed to price alchemy: %w", err)
			}

			result, ok := response.(*tradingQueries.HighAlchemyResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			highAlch := "-"
			if item := result.Alchable.Item(); item != nil {
				highAlch = optionalCoins(item.HighAlch())
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ITEM\tBUY\tNATURE RUNE\tHIGH ALCH\tVOLUME\tPROFIT")
			fmt.Fprintln(w, "----\t---\t-----------\t---------\t------\t------")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%s\n",
				result.Alchable.Name(),
				formatPrice(result.Alchable.Lowest()),
				formatPrice(result.NatureRune.Lowest()),
				highAlch,
				vol,
				formatProfit(result.Profit),
			)
			w.Flush()
			return nil
		},
	}

	addVolumeFlag(cmd, &volume)
	return cmd
}

// newCombineCommand creates the combine command
func newCombineCommand() *cobra.Command {
	var (
		volume float64
		parts  []string
	)

	cmd := &cobra.Command{
		Use:   "combine <product> --part <item> [--part <item>]...",
		Short: "Profit of combining parts into a product",
		Long: `Work out the profit of buying each part and selling the combined product.

Examples:
  gex combine "Dragon defender (t)" --part "Dragon defender" --part "Dragon defender ornament kit"
  gex combine "Toxic blowpipe (empty)" --part "Tanzanite fang"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			vol, err := resolveVolume(cmd, app, volume)
			if err != nil {
				return err
			}
			query := &tradingQueries.CombineQuery{Parts: parts, Product: args[0], Volume: vol}
			return runTransactionQuery(cmd, app, query, "combine items")
		},
	}

	addVolumeFlag(cmd, &volume)
	cmd.Flags().StringArrayVar(&parts, "part", nil, "Item consumed by the combination (repeatable)")
	_ = cmd.MarkFlagRequired("part")
	return cmd
}

// newTransformCommand builds a command that turns one material into one product
func newTransformCommand(kind tradingQueries.TransformKind, use, short, long string) *cobra.Command {
	var volume float64

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			vol, err := resolveVolume(cmd, app, volume)
			if err != nil {
				return err
			}
			query := &tradingQueries.TransformQuery{Kind: kind, Material: args[0], Product: args[1], Volume: vol}
			return runTransactionQuery(cmd, app, query, "price "+string(kind))
		},
	}

	addVolumeFlag(cmd, &volume)
	return cmd
}

// newHerbsCommand creates the herbs command
func newHerbsCommand() *cobra.Command {
	return newTransformCommand(tradingQueries.TransformCleanHerbs,
		"herbs <grimy herb> <clean herb>",
		"Profit of cleaning grimy herbs",
		`Work out the profit of buying grimy herbs and selling them cleaned.

Examples:
  gex herbs "Grimy ranarr weed" "Ranarr weed" --volume 1000`)
}

// newUnfinishedCommand creates the unfinished command
func newUnfinishedCommand() *cobra.Command {
	return newTransformCommand(tradingQueries.TransformUnfinished,
		"unfinished <clean herb> <unfinished potion>",
		"Profit of making unfinished potions",
		`Work out the profit of adding clean herbs to vials of water.

Examples:
  gex unfinished "Ranarr weed" "Ranarr potion (unf)" --volume 1000`)
}

// newCrushCommand creates the crush command
func newCrushCommand() *cobra.Command {
	return newTransformCommand(tradingQueries.TransformCrush,
		"crush <item> <crushed item>",
		"Profit of crushing an item with a pestle and mortar",
		`Work out the profit of crushing an item into its ground form.

Examples:
  gex crush "Bird nest" "Crushed nest" --volume 500`)
}

// newPlanksCommand creates the planks command
func newPlanksCommand() *cobra.Command {
	var (
		volume float64
		method string
	)

	cmd := &cobra.Command{
		Use:   "planks <log> <plank>",
		Short: "Profit of turning logs into planks",
		Long: `Work out the profit of turning logs into planks at the sawmill
or with the Plank Make spell.

Examples:
  gex planks "Mahogany logs" "Mahogany plank"
  gex planks "Teak logs" "Teak plank" --method plank-make --volume 1000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			vol, err := resolveVolume(cmd, app, volume)
			if err != nil {
				return err
			}
			query := &tradingQueries.TransformQuery{
				Kind:     tradingQueries.TransformPlanks,
				Material: args[0],
				Product:  args[1],
				Volume:   vol,
				Method:   tradingQueries.PlankMethod(method),
			}
			return runTransactionQuery(cmd, app, query, "price planks")
		},
	}

	addVolumeFlag(cmd, &volume)
	cmd.Flags().StringVar(&method, "method", string(tradingQueries.PlankMethodSawmill), "Plank method: sawmill or plank-make")
	return cmd
}

// newRepairCommand creates the repair command
func newRepairCommand() *cobra.Command {
	var (
		volume float64
		level  int
	)

	cmd := &cobra.Command{
		Use:   "repair <item>",
		Short: "Profit of repairing a degraded Barrows piece",
		Long: `Work out the profit of buying a fully degraded Barrows piece, repairing it
at a player-owned house armour stand and selling it.

Examples:
  gex repair "Dharok's greataxe"
  gex repair "Dharok's greataxe" --level 70`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			vol, err := resolveVolume(cmd, app, volume)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("level") {
				level = app.Config.Calculator.SmithingLevel
			}
			query := &tradingQueries.RepairQuery{Name: args[0], Level: level, Volume: vol}
			return runTransactionQuery(cmd, app, query, "price repair")
		},
	}

	addVolumeFlag(cmd, &volume)
	cmd.Flags().IntVar(&level, "level", 1, "Smithing level (default: calculator.smithing_level from config)")
	return cmd
}

// newRepairSetCommand creates the repair-set command
func newRepairSetCommand() *cobra.Command {
	var (
		volume float64
		level  int
	)

	cmd := &cobra.Command{
		Use:   "repair-set <set>",
		Short: "Profit of repairing a full Barrows set and selling it as a set",
		Long: fmt.Sprintf(`Work out the profit of buying the four degraded pieces of a Barrows set,
repairing them and selling the complete set.

Sets: %s

Examples:
  gex repair-set "Dharok's"
  gex repair-set "Verac's" --level 70`, quoteNames(items.BarrowsSetNames())),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			vol, err := resolveVolume(cmd, app, volume)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("level") {
				level = app.Config.Calculator.SmithingLevel
			}
			query := &tradingQueries.RepairSetQuery{Set: args[0], Level: level, Volume: vol}
			return runTransactionQuery(cmd, app, query, "price set repair")
		},
	}

	addVolumeFlag(cmd, &volume)
	cmd.Flags().IntVar(&level, "level", 1, "Smithing level (default: calculator.smithing_level from config)")
	return cmd
}
