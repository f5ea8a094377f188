// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders aggregated benchmark results as PNG
// charts.
package benchchart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Options controls the size and resolution of rendered charts.
type Options struct {
	Width, Height vg.Length
	DPI           int
}

// DefaultOptions renders 10x6 inch charts at 150 DPI.
var DefaultOptions = Options{Width: 10 * vg.Inch, Height: 6 * vg.Inch, DPI: 150}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions.Height
	}
	if o.DPI <= 0 {
		o.DPI = DefaultOptions.DPI
	}
	return o
}

// canvas returns a white PNG canvas for o.
func (o Options) canvas() vgimg.PngCanvas {
	return vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(o.Width, o.Height),
		vgimg.UseDPI(o.DPI),
		vgimg.UseBackgroundColor(color.White))}
}

// newPlot returns a plot with the common title, axis labels, and a
// horizontal grid.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = 14
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.Gray{0xd0}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(grid)
	return p
}

// rotateX tilts the X tick labels so long category names don't collide.
func rotateX(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// save draws p onto a PNG canvas and writes it to path, creating the
// directory if needed.
func save(p *plot.Plot, path string, o Options) error {
	can := o.withDefaults().canvas()
	p.Draw(draw.New(can))
	return writeCanvas(can, path)
}

func writeCanvas(can vgimg.PngCanvas, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func rgb(hex uint32) color.Color {
	return color.RGBA{uint8(hex >> 16), uint8(hex >> 8), uint8(hex), 0xff}
}

// Colors for each workflow step, darkest first, with the commit in a
// contrasting red.
var stepColors = []color.Color{
	rgb(0x08519c),
	rgb(0x2171b5),
	rgb(0x4292c6),
	rgb(0x6baed6),
	rgb(0x9ecae1),
	rgb(0xfc9272),
}

var (
	blue   = rgb(0x2171b5)
	green  = rgb(0x2ca02c)
	red    = rgb(0xd62728)
	navy   = rgb(0x1f77b4)
	boxFil = rgb(0xc6dbef)
)
