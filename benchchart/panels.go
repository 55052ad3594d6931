// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders benchmark comparison charts with
// gonum.org/v1/plot.
//
// Each panel builder returns a *plot.Plot for one fixed comparison
// view over a benchmetric.Collection: grouped execution times, local
// speedup, multi-VM overhead, parallel efficiency, and per-size
// iteration counts. Figure composes the panels into the combined
// report image.
package benchchart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Architbh007/vm/benchcsv"
	"github.com/Architbh007/vm/benchmetric"
)

// Options control chart rendering. The zero value selects the
// defaults used by the standard report.
type Options struct {
	// LinearTime disables the log scale on the execution time
	// panel.
	LinearTime bool

	// LinearOverhead disables the log scale on the multi-VM
	// overhead panel.
	LinearOverhead bool

	// DPI is the resolution of rendered PNG images.
	// 0 means 300.
	DPI int
}

func (o *Options) dpi() int {
	if o == nil || o.DPI == 0 {
		return 300
	}
	return o.DPI
}

func (o *Options) logTime() bool     { return o == nil || !o.LinearTime }
func (o *Options) logOverhead() bool { return o == nil || !o.LinearOverhead }

var barWidth = vg.Points(14)
var barGap = vg.Points(3)

// newPanel returns a plot with the shared panel styling: titled,
// horizontal grid only, nominal X axis over the graph sizes.
func newPanel(title, xLabel, yLabel string, sizes []string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	if len(sizes) > 0 {
		p.NominalX(sizes...)
	}
	p.Legend.Top = true
	return p
}

// addGroups adds one groupBars series per entry of ss, with values
// computed by value(series, size). Log selects floor-anchored bars
// for a log-scaled Y axis.
func addGroups(p *plot.Plot, c *benchmetric.Collection, ss []series, log bool, value func(s series, size int) float64) {
	groupWidth := (barWidth + barGap) * vg.Length(len(ss)-1)
	for i, s := range ss {
		var vals []float64
		for _, size := range c.Sizes() {
			vals = append(vals, value(s, size))
		}
		b := newGroupBars(vals, barWidth)
		b.Offset = (barWidth+barGap)*vg.Length(i) - groupWidth/2
		b.Color = seriesColor(i, s)
		b.Floor = log
		p.Add(b)
		p.Legend.Add(s.label(), b)
	}
}

// addRule draws a dashed horizontal reference line at y spanning all
// n categories and adds it to the legend under label.
func addRule(p *plot.Plot, n int, y float64, label string) error {
	l, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: y},
		{X: float64(n) - 0.5, Y: y},
	})
	if err != nil {
		return err
	}
	l.LineStyle.Color = color.Gray{0x80}
	l.LineStyle.Width = vg.Points(1)
	l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(l)
	p.Legend.Add(label, l)
	return nil
}

// logY puts the Y axis of p on a log scale.
func logY(p *plot.Plot) {
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
}

// anyPositive reports whether value is positive for any series and
// size. A log scale needs at least one positive value to anchor the
// axis range.
func anyPositive(c *benchmetric.Collection, ss []series, value func(s series, size int) float64) bool {
	for _, s := range ss {
		for _, size := range c.Sizes() {
			if value(s, size) > 0 {
				return true
			}
		}
	}
	return false
}

// TimeComparison builds the grouped execution time panel: one bar
// series per configuration across all graph sizes, log-scaled unless
// disabled.
func TimeComparison(c *benchmetric.Collection, opt *Options) (*plot.Plot, error) {
	p := newPanel("Execution Time: Local vs Multi-VM",
		"Graph Size (nodes)", "Execution Time (ms)", sizeLabels(c))
	ss := allSeries(c)
	value := func(s series, size int) float64 {
		ms, _ := c.Time(s.impl, size, s.procs)
		return ms
	}
	log := opt.logTime() && anyPositive(c, ss, value)
	if log {
		logY(p)
	}
	addGroups(p, c, ss, log, value)
	if log && p.Y.Min > 0 {
		// Leave the shortest bar some height above the axis floor.
		p.Y.Min *= 0.8
	}
	return p, nil
}

// LocalSpeedup builds the local speedup panel: speedup over the
// sequential baseline for each local process count, with a baseline
// rule at 1.
func LocalSpeedup(c *benchmetric.Collection, opt *Options) (*plot.Plot, error) {
	p := newPanel("Local Execution Speedup",
		"Graph Size", "Speedup Factor", sizeLabels(c))
	addGroups(p, c, distSeries(c, benchcsv.DistributedLocal), false, func(s series, size int) float64 {
		return c.Speedup(s.impl, size, s.procs)
	})
	if err := addRule(p, len(c.Sizes()), 1, "Baseline"); err != nil {
		return nil, err
	}
	return p, nil
}

// MultiVMOverhead builds the multi-VM overhead panel: slowdown
// relative to the sequential baseline for each multi-VM process
// count, log-scaled unless disabled, with a baseline rule at 1.
func MultiVMOverhead(c *benchmetric.Collection, opt *Options) (*plot.Plot, error) {
	p := newPanel("Multi-VM Communication Overhead",
		"Graph Size", "Slowdown Factor", sizeLabels(c))
	ss := distSeries(c, benchcsv.DistributedMultiVM)
	value := func(s series, size int) float64 {
		return c.Overhead(s.impl, size, s.procs)
	}
	log := opt.logOverhead() && anyPositive(c, ss, value)
	if log {
		logY(p)
	}
	addGroups(p, c, ss, log, value)
	if err := addRule(p, len(c.Sizes()), 1, "Sequential Baseline"); err != nil {
		return nil, err
	}
	if log && p.Y.Min > 0 {
		p.Y.Min *= 0.8
	}
	return p, nil
}

// Efficiency builds the parallel efficiency panel: speedup per
// process as a percentage for every distributed configuration, with a
// rule at 100%.
func Efficiency(c *benchmetric.Collection, opt *Options) (*plot.Plot, error) {
	p := newPanel("Parallel Efficiency Comparison",
		"Graph Size", "Efficiency (%)", sizeLabels(c))
	var ss []series
	for _, s := range allSeries(c) {
		if s.impl.Distributed() {
			ss = append(ss, s)
		}
	}
	addGroups(p, c, ss, false, func(s series, size int) float64 {
		return c.Efficiency(s.impl, size, s.procs)
	})
	if err := addRule(p, len(c.Sizes()), 100, "100% Efficient"); err != nil {
		return nil, err
	}
	return p, nil
}

// Iterations builds the iteration count panel for a single graph
// size: one bar per configuration with the count printed above it.
// Sequential runs do not track iterations and always show zero.
func Iterations(c *benchmetric.Collection, size int, opt *Options) (*plot.Plot, error) {
	ss := allSeries(c)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Nodes - Iterations", sizeLabel(size))
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Iterations"

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	var names []string
	var xys plotter.XYs
	var labels []string
	for i, s := range ss {
		names = append(names, s.shortLabel())
		iters := c.Iterations(benchcsv.Config{Impl: s.impl, GraphSize: size, Procs: s.procs})

		b := newGroupBars(oneBar(len(ss), i, float64(iters)), vg.Points(22))
		b.Color = seriesColor(i, s)
		p.Add(b)

		if iters > 0 {
			xys = append(xys, plotter.XY{X: float64(i), Y: float64(iters)})
			labels = append(labels, fmt.Sprintf("%d", iters))
		}
	}
	if len(names) > 0 {
		p.NominalX(names...)
	}

	if len(labels) > 0 {
		lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, err
		}
		for i := range lbls.TextStyle {
			lbls.TextStyle[i].XAlign = draw.XCenter
			lbls.TextStyle[i].YAlign = draw.YBottom
			lbls.TextStyle[i].Font.Size = vg.Points(9)
		}
		p.Add(lbls)
	}
	return p, nil
}

// oneBar returns an n-element value vector that is zero except at
// index i. The iteration panel places each configuration at its own
// category position, so each series contributes a single bar.
func oneBar(n, i int, v float64) []float64 {
	vals := make([]float64, n)
	vals[i] = v
	return vals
}
