// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchagg"
)

// barsWithErrors is a bar series with symmetric error bars.
type barsWithErrors struct {
	plotter.XYs
	plotter.YErrors
}

// meanBars adds one bar per group of g, at nominal positions,
// with standard-deviation error bars and a value label above each.
// It returns the largest bar top.
func meanBars(p *plot.Plot, g *benchagg.Groups, c color.Color, format string) (float64, error) {
	keys := g.Keys()
	if len(keys) == 0 {
		return 0, fmt.Errorf("%s: %w", g.Metric, benchagg.ErrEmptyInput)
	}
	vals := make(plotter.Values, len(keys))
	errs := barsWithErrors{
		XYs:     make(plotter.XYs, len(keys)),
		YErrors: make(plotter.YErrors, len(keys)),
	}
	var (
		tops   plotter.XYs
		labels []string
		top    float64
		names  []string
	)
	for i, k := range keys {
		s := g.Stats[k]
		vals[i] = s.Mean
		errs.XYs[i] = plotter.XY{X: float64(i), Y: s.Mean}
		errs.YErrors[i].Low = s.StdDev
		errs.YErrors[i].High = s.StdDev
		tops = append(tops, plotter.XY{X: float64(i), Y: s.Mean + s.StdDev})
		labels = append(labels, fmt.Sprintf(format, s.Mean))
		if s.Mean+s.StdDev > top {
			top = s.Mean + s.StdDev
		}
		names = append(names, k.String())
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(30))
	if err != nil {
		return 0, err
	}
	bars.Color = c
	bars.LineStyle.Width = 0
	eb, err := plotter.NewYErrorBars(errs)
	if err != nil {
		return 0, err
	}
	p.Add(bars, eb)
	if err := addLabels(p, tops, labels, vg.Points(8)); err != nil {
		return 0, err
	}
	p.NominalX(names...)
	return top, nil
}

// TPSByWorkers renders mean throughput per group of g, with
// standard-deviation error bars, and writes it to path.
func TPSByWorkers(g *benchagg.Groups, path string, o Options) error {
	p := newPlot("Throughput vs Concurrent Workers", "Number of Workers", "Throughput (TPS)")
	top, err := meanBars(p, g, blue, "%.1f")
	if err != nil {
		return fmt.Errorf("tps chart: %w", err)
	}
	p.Y.Min = 0
	if top > 0 {
		p.Y.Max = top * 1.1
	}
	return save(p, path, o)
}

// SuccessRateByWorkers renders the mean success rate per group of g
// on a fixed 0 to 105 percent axis and writes it to path.
func SuccessRateByWorkers(g *benchagg.Groups, path string, o Options) error {
	p := newPlot("Request Success Rate vs Concurrent Workers", "Number of Workers", "Success Rate (%)")
	if _, err := meanBars(p, g, green, "%.1f%%"); err != nil {
		return fmt.Errorf("success rate chart: %w", err)
	}
	p.Y.Min = 0
	p.Y.Max = 105
	return save(p, path, o)
}

// LatencyByWorkers renders grouped min, avg, and max latency bars
// per group and writes them to path. The three groupings must share
// the same keys.
func LatencyByWorkers(lo, avg, hi *benchagg.Groups, path string, o Options) error {
	p := newPlot("Latency Distribution by Concurrent Workers", "Number of Workers", "Latency (ms)")
	p.Legend.Top = true

	keys := avg.Keys()
	if len(keys) == 0 {
		return fmt.Errorf("latency chart: %w", benchagg.ErrEmptyInput)
	}
	w := vg.Points(18)
	series := []struct {
		name string
		g    *benchagg.Groups
		c    color.Color
	}{
		{"Min", lo, green},
		{"Avg", avg, navy},
		{"Max", hi, red},
	}
	for i, s := range series {
		vals := make(plotter.Values, len(keys))
		for j, k := range keys {
			st, ok := s.g.Stats[k]
			if !ok {
				return fmt.Errorf("latency chart: %s has no group %s", s.name, k)
			}
			vals[j] = st.Mean
		}
		bars, err := plotter.NewBarChart(vals, w)
		if err != nil {
			return fmt.Errorf("latency chart: %w", err)
		}
		bars.Color = s.c
		bars.LineStyle.Width = 0
		bars.Offset = w * vg.Length(i-1)
		p.Add(bars)
		p.Legend.Add(s.name, bars)
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	p.NominalX(names...)
	p.Y.Min = 0
	return save(p, path, o)
}

// Scalability renders mean throughput and mean latency against the
// same groups as two vertically aligned panels and writes them to
// path.
func Scalability(tps, lat *benchagg.Groups, path string, o Options) error {
	top, err := linePanel(tps, "Throughput (TPS)", blue, draw.CircleGlyph{})
	if err != nil {
		return fmt.Errorf("scalability chart: %w", err)
	}
	top.Title.Text = "System Scalability: Throughput vs Latency"
	top.Title.TextStyle.Font.Size = 14
	top.X.Label.Text = ""
	bottom, err := linePanel(lat, "Average Latency (ms)", red, draw.SquareGlyph{})
	if err != nil {
		return fmt.Errorf("scalability chart: %w", err)
	}
	bottom.X.Label.Text = "Number of Workers"

	o = o.withDefaults()
	can := o.canvas()
	plots := [][]*plot.Plot{{top}, {bottom}}
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Points(6)}
	cs := plot.Align(plots, tiles, draw.New(can))
	top.Draw(cs[0][0])
	bottom.Draw(cs[1][0])
	return writeCanvas(can, path)
}

func linePanel(g *benchagg.Groups, yLabel string, c color.Color, shape draw.GlyphDrawer) (*plot.Plot, error) {
	keys := g.Keys()
	if len(keys) == 0 {
		return nil, fmt.Errorf("%s: %w", g.Metric, benchagg.ErrEmptyInput)
	}
	xys := make(plotter.XYs, len(keys))
	names := make([]string, len(keys))
	for i, k := range keys {
		xys[i] = plotter.XY{X: float64(i), Y: g.Stats[k].Mean}
		names[i] = k.String()
	}
	p := newPlot("", "", yLabel)
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(2)
	points.Color = c
	points.Shape = shape
	points.Radius = vg.Points(4)
	p.Add(line, points)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Add(g.Metric, line, points)
	p.NominalX(names...)
	return p, nil
}
