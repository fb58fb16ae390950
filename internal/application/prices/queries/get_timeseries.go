package queries

import (
	"context"
	"fmt"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/analytics"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// GetTimeseriesQuery - Query for the price history of one item.
// Window > 0 also computes rolling averages of both sides over that many buckets.
type GetTimeseriesQuery struct {
	Name     string
	Timestep items.Timestep
	Window   int
}

// GetTimeseriesResponse - Response containing the history and derived statistics
type GetTimeseriesResponse struct {
	Timeseries     *items.Timeseries
	HighestSummary analytics.Summary
	LowestSummary  analytics.Summary
	MarginSummary  analytics.Summary
	RollingHighest []float64
	RollingLowest  []float64
	SaleRate       []float64
}

// GetTimeseriesHandler - Handles timeseries queries
type GetTimeseriesHandler struct {
	source PriceSource
}

// NewGetTimeseriesHandler creates a new timeseries query handler
func NewGetTimeseriesHandler(source PriceSource) *GetTimeseriesHandler {
	return &GetTimeseriesHandler{source: source}
}

// Handle executes the get timeseries query
func (h *GetTimeseriesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTimeseriesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	timestep := query.Timestep
	if timestep == "" {
		timestep = items.Timestep5m
	}

	ts, err := h.source.Timeseries(ctx, query.Name, timestep)
	if err != nil {
		return nil, err
	}

	response := &GetTimeseriesResponse{
		Timeseries:     ts,
		HighestSummary: analytics.Summarize(ts.HighestPrices()),
		LowestSummary:  analytics.Summarize(ts.LowestPrices()),
		MarginSummary:  analytics.Summarize(ts.Margins()),
		SaleRate:       analytics.SaleRate(ts),
	}

	if query.Window > 0 {
		if response.RollingHighest, err = analytics.RollingAverage(ts.HighestPrices(), query.Window); err != nil {
			return nil, err
		}
		if response.RollingLowest, err = analytics.RollingAverage(ts.LowestPrices(), query.Window); err != nil {
			return nil, err
		}
	}

	return response, nil
}
