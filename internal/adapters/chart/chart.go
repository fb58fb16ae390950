package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/analytics"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

var (
	highestColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	lowestColor  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	rollingColor = color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}
)

// Options controls the rendered chart
type Options struct {
	Width  vg.Length
	Height vg.Length
	// Window > 1 overlays a rolling average of the instant-sell price
	Window int
}

// DefaultOptions renders a 10x4 inch chart without overlays
func DefaultOptions() Options {
	return Options{Width: 10 * vg.Inch, Height: 4 * vg.Inch}
}

// PriceHistory builds a line chart of the instant-buy and instant-sell prices of a timeseries.
// Buckets without a trade are left out of their line.
func PriceHistory(ts *items.Timeseries, opts Options) (*plot.Plot, error) {
	if ts.Len() == 0 {
		return nil, items.ErrEmptyTimeseries
	}

	timestamps := ts.Timestamps()
	highest := points(timestamps, ts.HighestPrices())
	lowest := points(timestamps, ts.LowestPrices())
	if len(highest) == 0 && len(lowest) == 0 {
		return nil, fmt.Errorf("%s has no recorded trades to plot", ts.Item().Name())
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s)", ts.Item().Name(), ts.Timestep())
	p.X.Label.Text = "Time (UTC)"
	p.Y.Label.Text = "Price (coins)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02\n15:04"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if err := addLine(p, "Highest", highest, highestColor, false); err != nil {
		return nil, err
	}
	if err := addLine(p, "Lowest", lowest, lowestColor, false); err != nil {
		return nil, err
	}

	if opts.Window > 1 && opts.Window <= ts.Len() {
		rolling, err := analytics.RollingAverage(ts.LowestPrices(), opts.Window)
		if err != nil {
			return nil, err
		}
		// Each average is plotted at the last bucket of its window
		label := fmt.Sprintf("Lowest (%d-bucket mean)", opts.Window)
		if err := addLine(p, label, points(timestamps[opts.Window-1:], rolling), rollingColor, true); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// WritePNG renders the price history as a PNG into w
func WritePNG(w io.Writer, ts *items.Timeseries, opts Options) error {
	p, err := PriceHistory(ts, opts)
	if err != nil {
		return err
	}

	writer, err := p.WriterTo(size(opts.Width, 10*vg.Inch), size(opts.Height, 4*vg.Inch), "png")
	if err != nil {
		return err
	}
	_, err = writer.WriteTo(w)
	return err
}

// Save renders the price history to path; the extension picks the format (png, svg, pdf, ...)
func Save(path string, ts *items.Timeseries, opts Options) error {
	if filepath.Ext(path) == "" {
		return fmt.Errorf("output path %q needs a file extension such as .png", path)
	}

	p, err := PriceHistory(ts, opts)
	if err != nil {
		return err
	}
	return p.Save(size(opts.Width, 10*vg.Inch), size(opts.Height, 4*vg.Inch), path)
}

// DefaultFilename derives a file name from the item and timestep, e.g. "abyssal_whip_5m.png"
func DefaultFilename(ts *items.Timeseries) string {
	name := strings.ToLower(ts.Item().Name())
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	return fmt.Sprintf("%s_%s.png", name, ts.Timestep())
}

func addLine(p *plot.Plot, label string, xys plotter.XYs, c color.Color, dashed bool) error {
	if len(xys) == 0 {
		return nil
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("failed to plot %s: %w", label, err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	if dashed {
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}

	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

func points(timestamps []int64, values []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(timestamps[i]), Y: v})
	}
	return xys
}

func size(l, fallback vg.Length) vg.Length {
	if l <= 0 {
		return fallback
	}
	return l
}
