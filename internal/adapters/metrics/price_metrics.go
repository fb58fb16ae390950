package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
)

// PriceMetricsCollector exports the latest observed prices of watched items
type PriceMetricsCollector struct {
	highestPrice *prometheus.GaugeVec
	lowestPrice  *prometheus.GaugeVec
	margin       *prometheus.GaugeVec
	flipProfit   *prometheus.GaugeVec
	priceAge     *prometheus.GaugeVec
}

// NewPriceMetricsCollector creates a new price metrics collector
func NewPriceMetricsCollector() *PriceMetricsCollector {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "market",
				Name:      name,
				Help:      help,
			},
			[]string{"item"},
		)
	}

	return &PriceMetricsCollector{
		highestPrice: gauge("highest_price_coins", "Latest instant-buy price"),
		lowestPrice:  gauge("lowest_price_coins", "Latest instant-sell price"),
		margin:       gauge("margin_coins", "Highest minus lowest price"),
		flipProfit:   gauge("flip_profit_coins", "Profit of flipping one unit after tax"),
		priceAge:     gauge("price_age_seconds", "Age of the older of the two latest trades"),
	}
}

// Register registers all price metrics with the Prometheus registry
func (c *PriceMetricsCollector) Register() error {
	return register(c.highestPrice, c.lowestPrice, c.margin, c.flipProfit, c.priceAge)
}

// RecordOffer updates every gauge of the offer's item. Unpriced sides leave their gauges untouched.
// nowUnix is the observation time used for the age gauge.
func (c *PriceMetricsCollector) RecordOffer(offer items.Offer, nowUnix int64) {
	name := offer.Name()

	if high, ok := offer.Highest().Value(); ok {
		c.highestPrice.WithLabelValues(name).Set(float64(high))
	}
	if low, ok := offer.Lowest().Value(); ok {
		c.lowestPrice.WithLabelValues(name).Set(float64(low))
	}
	if margin, ok := offer.Margin(); ok {
		c.margin.WithLabelValues(name).Set(float64(margin))
	}
	if tx, err := trading.Flip(offer, 1); err == nil {
		c.flipProfit.WithLabelValues(name).Set(tx.Profit())
	}

	oldest := min(offer.Highest().Timestamp(), offer.Lowest().Timestamp())
	if oldest > 0 {
		c.priceAge.WithLabelValues(name).Set(float64(nowUnix - oldest))
	}
}
