package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
	"github.com/Lee-Tyrer/grandexchange-go/pkg/utils"
)

const volumeFlag = "volume"

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// addVolumeFlag registers --volume; the config default applies when it is not set
func addVolumeFlag(cmd *cobra.Command, volume *float64) {
	cmd.Flags().Float64Var(volume, volumeFlag, 1, "Number of units to trade (default: calculator.volume from config)")
}

func resolveVolume(cmd *cobra.Command, app *App, volume float64) (float64, error) {
	if !cmd.Flags().Changed(volumeFlag) {
		return app.Config.Calculator.Volume, nil
	}
	if volume < 0 || math.IsNaN(volume) {
		return 0, fmt.Errorf("volume must not be negative, got %g", volume)
	}
	return volume, nil
}

func formatPrice(p items.Price) string {
	v, ok := p.Value()
	if !ok {
		return "-"
	}
	return utils.FormatCoins(v)
}

func formatProfit(profit float64) string {
	rounded := int(math.Round(profit))
	return utils.FormatCoins(rounded)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func printOffers(out io.Writer, offers []items.Offer) {
	w := newTable(out)
	fmt.Fprintln(w, "ITEM\tLOWEST\tHIGHEST\tMARGIN\tUPDATED")
	fmt.Fprintln(w, "----\t------\t-------\t------\t-------")
	for _, offer := range offers {
		margin := "-"
		if m, ok := offer.Margin(); ok {
			margin = utils.FormatCoins(m)
		}
		updated := "-"
		if ts := offer.Highest().Timestamp(); ts > 0 {
			updated = offer.Highest().Time().UTC().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			offer.Name(),
			formatPrice(offer.Lowest()),
			formatPrice(offer.Highest()),
			margin,
			updated,
		)
	}
	w.Flush()
}

func printTransactions(out io.Writer, transactions []*trading.SaleTransaction) {
	w := newTable(out)
	fmt.Fprintln(w, "ITEM\tVOLUME\tBUY\tSELL EACH\tTAX\tPROFIT\tROI")
	fmt.Fprintln(w, "----\t------\t---\t---------\t---\t------\t---")
	for _, t := range transactions {
		fmt.Fprintf(w, "%s\t%g\t%s\t%s\t%s\t%s\t%.2f%%\n",
			transactionName(t),
			t.Volume(),
			utils.FormatCoins(t.FullBuyPrice()),
			utils.FormatCoins(t.IndividualSoldPrice()),
			utils.FormatCoins(t.Tax()),
			formatProfit(t.Profit()),
			t.ReturnOnInvestment()*100,
		)
	}
	w.Flush()
}

func printTransaction(out io.Writer, t *trading.SaleTransaction) {
	printTransactions(out, []*trading.SaleTransaction{t})
}

func transactionName(t *trading.SaleTransaction) string {
	if t.Item() == nil {
		return "<unknown>"
	}
	return t.Item().Name()
}

// quoteNames joins names for error messages
func quoteNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return strings.Join(quoted, ", ")
}
