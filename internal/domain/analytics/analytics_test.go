package analytics_test

import (
	"math"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/analytics"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/test/helpers"
)

func TestRollingAverage(t *testing.T) {
	out, err := analytics.RollingAverage([]float64{1, 2, 3, 4, 5}, 2)

	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5, 4.5}, out)
}

func TestRollingAverage_FullWindow(t *testing.T) {
	out, err := analytics.RollingAverage([]float64{2, 4, 6}, 3)

	require.NoError(t, err)
	assert.Equal(t, []float64{4}, out)
}

func TestRollingAverage_GapOnlyAffectsItsWindows(t *testing.T) {
	out, err := analytics.RollingAverage([]float64{1, math.NaN(), 3, 5, 7}, 2)

	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, []float64{4, 6}, out[2:])
}

func TestRollingAverage_WindowTooLarge(t *testing.T) {
	_, err := analytics.RollingAverage([]float64{1, 2}, 3)

	var windowErr *analytics.ErrWindowLargerThanArray
	require.ErrorAs(t, err, &windowErr)
	assert.Equal(t, 2, windowErr.N)
	assert.Equal(t, 3, windowErr.Window)

	_, err = analytics.RollingAverage([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestSaleRate(t *testing.T) {
	lowest := []items.Price{
		items.NewPrice(0, lo.ToPtr(10), lo.ToPtr(4)),
		items.NewPrice(300, lo.ToPtr(10), lo.ToPtr(10)),
		items.NewPrice(600, lo.ToPtr(10), lo.ToPtr(0)),
		items.NewPrice(1200, lo.ToPtr(10), nil),
		items.NewPrice(1500, lo.ToPtr(10), lo.ToPtr(3)),
	}
	highest := make([]items.Price, len(lowest))
	for i, p := range lowest {
		highest[i] = items.Unpriced(p.Timestamp())
	}
	ts, err := items.NewTimeseries(helpers.NewItem("Logs"), highest, lowest, items.Timestep5m)
	require.NoError(t, err)

	assert.Equal(t, []float64{30, 0, 0, 100}, analytics.SaleRate(ts))
}

func TestSummarize(t *testing.T) {
	summary := analytics.Summarize([]float64{2, math.NaN(), 4, 6})

	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 4.0, summary.Mean)
	assert.InDelta(t, 2.0, summary.StdDev, 1e-9)
	assert.Equal(t, 2.0, summary.Min)
	assert.Equal(t, 6.0, summary.Max)

	assert.Equal(t, analytics.Summary{}, analytics.Summarize([]float64{math.NaN()}))
}
