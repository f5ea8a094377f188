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
	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

// MinSegmentLabel is the smallest segment value, in ms, that gets a
// value label inside its bar.
const MinSegmentLabel = 20

// Breakdown renders b as a stacked bar chart with one bar per
// configuration and one layer per step, and writes it to path.
// labels name the configurations, in b's order.
//
// Segments larger than MinSegmentLabel are labeled with their value
// and every bar is labeled with its total.
func Breakdown(b benchagg.Breakdown, labels []string, path string, o Options) error {
	if len(labels) != len(b) {
		return fmt.Errorf("breakdown chart: %d labels for %d configurations", len(labels), len(b))
	}
	p := newPlot("Latency Breakdown by Configuration", "Node Configuration (L1-L2)", "Latency (ms)")
	p.Legend.Top = true
	p.Legend.Left = true

	w := vg.Points(40)
	var below *plotter.BarChart
	bottoms := make([]float64, len(b))
	var segXYs plotter.XYs
	var segLabels []string
	for i, step := range benchrec.Steps {
		vals := b.Series(i)
		bars, err := plotter.NewBarChart(plotter.Values(vals), w)
		if err != nil {
			return fmt.Errorf("breakdown chart: %s: %w", step, err)
		}
		bars.Color = stepColors[i%len(stepColors)]
		bars.LineStyle.Color = color.Black
		bars.LineStyle.Width = vg.Points(0.8)
		if below != nil {
			bars.StackOn(below)
		}
		below = bars
		p.Add(bars)
		p.Legend.Add(string(step), bars)

		for j, v := range vals {
			if v > MinSegmentLabel {
				segXYs = append(segXYs, plotter.XY{X: float64(j), Y: bottoms[j] + v/2})
				segLabels = append(segLabels, fmt.Sprintf("%.0f", v))
			}
			bottoms[j] += v
		}
	}

	totals := b.Totals()
	top := 0.0
	var totXYs plotter.XYs
	var totLabels []string
	for j, t := range totals {
		totXYs = append(totXYs, plotter.XY{X: float64(j), Y: t})
		totLabels = append(totLabels, fmt.Sprintf("%.0f", t))
		if t > top {
			top = t
		}
	}
	if err := addLabels(p, segXYs, segLabels, 0); err != nil {
		return err
	}
	if err := addLabels(p, totXYs, totLabels, vg.Points(4)); err != nil {
		return err
	}

	p.NominalX(labels...)
	p.Y.Min = 0
	if top > 0 {
		p.Y.Max = top * 1.15
	}
	return save(p, path, o)
}

// addLabels adds centered text labels at xys, raised by dy.
func addLabels(p *plot.Plot, xys plotter.XYs, labels []string, dy vg.Length) error {
	if len(xys) == 0 {
		return nil
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
	}
	l.Offset = vg.Point{Y: dy}
	p.Add(l)
	return nil
}
