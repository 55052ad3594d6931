// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// groupBars draws one series of a grouped bar chart: one bar per
// category, shifted sideways by Offset so several series can share
// the category positions laid down by plot.NominalX.
//
// Unlike plotter.BarChart it can draw on a log-scaled Y axis: with
// Floor set, bars rise from the bottom of the plotting area rather
// than from zero, and zero values draw no bar at all.
type groupBars struct {
	values plotter.Values

	// Width is the width of each bar.
	Width vg.Length

	// Offset shifts the bars sideways from the category tick.
	Offset vg.Length

	// Color fills the bars; LineStyle strokes their outline.
	Color     color.Color
	LineStyle draw.LineStyle

	// Floor indicates the Y axis is log-scaled: zero values are
	// skipped and the data range excludes zero.
	Floor bool
}

func newGroupBars(values []float64, w vg.Length) *groupBars {
	return &groupBars{
		values: plotter.Values(values),
		Width:  w,
		LineStyle: draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(0.25),
		},
	}
}

// Plot implements the plot.Plotter interface.
func (b *groupBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for i, v := range b.values {
		if b.Floor && v <= 0 {
			continue
		}
		x := trX(float64(i)) + b.Offset
		if !c.ContainsX(x) {
			continue
		}
		// On a log scale trY(0) panics, so floored bars rise
		// from the bottom of the plotting area instead.
		bottom := c.Min.Y
		if !b.Floor {
			bottom = trY(0)
		}
		top := trY(v)

		pts := []vg.Point{
			{X: x - b.Width/2, Y: bottom},
			{X: x - b.Width/2, Y: top},
			{X: x + b.Width/2, Y: top},
			{X: x + b.Width/2, Y: bottom},
		}
		if b.Color != nil {
			c.FillPolygon(b.Color, c.ClipPolygonY(pts))
		}
		pts = append(pts, pts[0])
		c.StrokeLines(b.LineStyle, c.ClipLinesY(pts)...)
	}
}

// DataRange implements the plot.DataRanger interface. The half-unit
// margin on X keeps edge bars inside the plotting area.
func (b *groupBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -0.5, float64(len(b.values))-0.5
	ymin, ymax = math.Inf(1), math.Inf(-1)
	if !b.Floor {
		ymin, ymax = 0, 0
	}
	for _, v := range b.values {
		if b.Floor && v <= 0 {
			continue
		}
		ymin = math.Min(ymin, v)
		ymax = math.Max(ymax, v)
	}
	return
}

// Thumbnail implements the plot.Thumbnailer interface for legends.
func (b *groupBars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	if b.Color != nil {
		c.FillPolygon(b.Color, pts)
	}
	pts = append(pts, pts[0])
	c.StrokeLines(b.LineStyle, pts)
}
