// Package charts renders PNG charts from stats outputs. Renderers are pure
// functions of their inputs; an empty view produces a placeholder chart
// rather than an error so the dashboard can always show something.
package charts

import (
	"bytes"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/claimloom/claimloom/internal/stats"
)

// Options sizes the rendered image. Zero values fall back to defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 900
	}
	if h <= 0 {
		h = 400
	}
	return w, h
}

// Timeline renders daily claim-amount totals over time, one line per
// series (typically one per policy type).
func Timeline(series []stats.Series, opts Options) ([]byte, error) {
	w, h := opts.size()
	var cs []chart.Series
	for i, s := range series {
		xs := make([]time.Time, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xs = append(xs, p.Date)
			ys = append(ys, p.Total)
		}
		// go-chart needs at least two X values per series.
		if len(xs) == 1 {
			xs = append(xs, xs[0].Add(24*time.Hour))
			ys = append(ys, ys[0])
		}
		if len(xs) == 0 {
			continue
		}
		cs = append(cs, chart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.GetDefaultColor(i)},
		})
	}
	if len(cs) == 0 {
		return empty("Claim Amount Over Time", opts)
	}
	graph := chart.Chart{
		Title:  "Claim Amount Over Time",
		Width:  w,
		Height: h,
		XAxis:  chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		Series: cs,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return render(func(buf *bytes.Buffer) error { return graph.Render(chart.PNG, buf) })
}

// CategoryBars renders total claim amount per category value.
func CategoryBars(title string, cats []stats.CategorySummary, opts Options) ([]byte, error) {
	bars := make([]chart.Value, 0, len(cats))
	for _, c := range cats {
		total, _ := c.Total.Float64()
		bars = append(bars, chart.Value{Label: c.Value, Value: total})
	}
	return barChart(title, bars, opts)
}

// StatusCounts renders the number of claims per status.
func StatusCounts(cats []stats.CategorySummary, opts Options) ([]byte, error) {
	bars := make([]chart.Value, 0, len(cats))
	for _, c := range cats {
		bars = append(bars, chart.Value{Label: c.Value, Value: float64(c.Count)})
	}
	return barChart("Claims Count by Status", bars, opts)
}

func barChart(title string, bars []chart.Value, opts Options) ([]byte, error) {
	if len(bars) == 0 {
		return empty(title, opts)
	}
	w, h := opts.size()
	graph := chart.BarChart{
		Title:    title,
		Width:    w,
		Height:   h,
		BarWidth: 48,
		Bars:     bars,
	}
	return render(func(buf *bytes.Buffer) error { return graph.Render(chart.PNG, buf) })
}

// empty renders a zero-valued placeholder so empty filter results still
// yield a valid image.
func empty(title string, opts Options) ([]byte, error) {
	w, h := opts.size()
	graph := chart.BarChart{
		Title:    title,
		Width:    w,
		Height:   h,
		BarWidth: 48,
		YAxis:    chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Bars:     []chart.Value{{Label: "no data", Value: 0}},
	}
	return render(func(buf *bytes.Buffer) error { return graph.Render(chart.PNG, buf) })
}

func render(fn func(*bytes.Buffer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
