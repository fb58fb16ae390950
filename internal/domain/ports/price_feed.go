package ports

import (
	"context"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// ItemMappingData is one catalog entry as reported by the mapping endpoint
type ItemMappingData struct {
	ID       int
	Name     string
	Examine  string
	Members  bool
	Value    int
	HighAlch *int
	LowAlch  *int
	Limit    *int
	Icon     string
}

// LatestPriceData is the most recent instant-buy (high) and instant-sell (low) trade of an item.
// Times are epoch seconds; any field may be absent when no trade was recorded.
type LatestPriceData struct {
	High     *int
	HighTime *int64
	Low      *int
	LowTime  *int64
}

// TimeseriesPointData is one bucket of the timeseries endpoint
type TimeseriesPointData struct {
	Timestamp       int64
	AvgHighPrice    *int
	AvgLowPrice     *int
	HighPriceVolume *int
	LowPriceVolume  *int
}

// PriceFeedClient defines operations against the Grand Exchange price feed
type PriceFeedClient interface {
	// GetMapping returns every item the feed tracks
	GetMapping(ctx context.Context) ([]ItemMappingData, error)

	// GetLatest returns latest prices keyed by item id; no ids fetches every item
	GetLatest(ctx context.Context, ids ...int) (map[int]LatestPriceData, error)

	// GetTimeseries returns up to 365 buckets of history for one item
	GetTimeseries(ctx context.Context, id int, timestep items.Timestep) ([]TimeseriesPointData, error)
}
