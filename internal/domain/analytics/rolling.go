package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// RollingAverage returns the mean of every full window over x.
// The result has len(x)-window+1 entries; result[i] averages x[i : i+window].
// A NaN inside a window makes that window's average NaN.
func RollingAverage(x []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	n := len(x)
	if window > n {
		return nil, &ErrWindowLargerThanArray{N: n, Window: window}
	}

	out := make([]float64, n-window+1)
	for i := range out {
		out[i] = floats.Sum(x[i:i+window]) / float64(window)
	}
	return out, nil
}

// SaleRate returns seconds elapsed per unit sold between consecutive instant-sell buckets.
// Buckets with no recorded volume yield a rate of 0.
func SaleRate(ts *items.Timeseries) []float64 {
	lowest := ts.Lowest()
	if len(lowest) < 2 {
		return []float64{}
	}

	rates := make([]float64, 0, len(lowest)-1)
	for i := 1; i < len(lowest); i++ {
		volume, ok := lowest[i].Volume()
		if !ok || volume == 0 {
			rates = append(rates, 0)
			continue
		}
		elapsed := lowest[i].Timestamp() - lowest[i-1].Timestamp()
		rates = append(rates, float64(elapsed)/float64(volume))
	}
	return rates
}
