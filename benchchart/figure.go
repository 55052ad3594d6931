// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/Architbh007/vm/benchmetric"
)

// FigureTitle is the super title of the combined report figure.
const FigureTitle = "Distributed Pathfinding: Performance Analysis\n(Local vs Multi-VM Comparison)"

const (
	figWidth  = 18 * vg.Inch
	figHeight = 12 * vg.Inch
	cellPad   = 4 * vg.Millimeter
)

// maxIterPanels caps the bottom row of the combined figure: one
// iteration panel per graph size, up to three.
const maxIterPanels = 3

// WriteFigure renders the combined report figure as a PNG to w: the
// full-width execution time panel on top, the speedup, overhead and
// efficiency panels in the middle row, and per-size iteration panels
// along the bottom.
func WriteFigure(w io.Writer, c *benchmetric.Collection, opt *Options) error {
	img := vgimg.NewWith(
		vgimg.UseWH(figWidth, figHeight),
		vgimg.UseDPI(opt.dpi()),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	// cell returns the sub-canvas covering the given fractions of
	// the full canvas, inset by the cell padding.
	cell := func(x0, y0, x1, y1 float64) draw.Canvas {
		sz := dc.Size()
		sub := draw.Canvas{
			Canvas: dc.Canvas,
			Rectangle: vg.Rectangle{
				Min: vg.Point{X: dc.Min.X + vg.Length(x0)*sz.X, Y: dc.Min.Y + vg.Length(y0)*sz.Y},
				Max: vg.Point{X: dc.Min.X + vg.Length(x1)*sz.X, Y: dc.Min.Y + vg.Length(y1)*sz.Y},
			},
		}
		return draw.Crop(sub, cellPad, -cellPad, cellPad, -cellPad)
	}

	title := plot.New()
	title.Title.Text = FigureTitle
	title.Title.TextStyle.Font.Size = vg.Points(20)
	title.HideAxes()
	title.Draw(cell(0, 0.93, 1, 1))

	timePanel, err := TimeComparison(c, opt)
	if err != nil {
		return err
	}
	timePanel.Draw(cell(0, 0.62, 1, 0.93))

	middle := []func(*benchmetric.Collection, *Options) (*plot.Plot, error){
		LocalSpeedup, MultiVMOverhead, Efficiency,
	}
	for i, build := range middle {
		p, err := build(c, opt)
		if err != nil {
			return err
		}
		p.Draw(cell(float64(i)/3, 0.31, float64(i+1)/3, 0.62))
	}

	sizes := iterSizes(c)
	for i, size := range sizes {
		p, err := Iterations(c, size, opt)
		if err != nil {
			return err
		}
		frac := 1.0 / float64(len(sizes))
		p.Draw(cell(float64(i)*frac, 0, float64(i+1)*frac, 0.31))
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(w)
	return err
}

// SaveFigure renders the combined report figure to the named PNG file.
func SaveFigure(path string, c *benchmetric.Collection, opt *Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteFigure(f, c, opt)
}

// iterSizes returns the graph sizes shown on the bottom row of the
// combined figure.
func iterSizes(c *benchmetric.Collection) []int {
	sizes := c.Sizes()
	if len(sizes) > maxIterPanels {
		sizes = sizes[:maxIterPanels]
	}
	return sizes
}

// RenderDirs writes each panel as an individual chart file into the
// given directories: PNGs into pngDir and SVGs into svgDir. An empty
// directory string skips that format. Directories are created as
// needed.
func RenderDirs(c *benchmetric.Collection, opt *Options, pngDir, svgDir string) error {
	for _, dir := range []string{pngDir, svgDir} {
		if dir != "" {
			if err := os.MkdirAll(dir, 0777); err != nil {
				return err
			}
		}
	}

	panels := []struct {
		name  string
		build func() (*plot.Plot, error)
		wide  bool
	}{
		{"time_comparison", func() (*plot.Plot, error) { return TimeComparison(c, opt) }, true},
		{"local_speedup", func() (*plot.Plot, error) { return LocalSpeedup(c, opt) }, false},
		{"multivm_overhead", func() (*plot.Plot, error) { return MultiVMOverhead(c, opt) }, false},
		{"parallel_efficiency", func() (*plot.Plot, error) { return Efficiency(c, opt) }, false},
	}
	for _, size := range iterSizes(c) {
		size := size
		panels = append(panels, struct {
			name  string
			build func() (*plot.Plot, error)
			wide  bool
		}{
			fmt.Sprintf("iterations_%s", strings.ToLower(sizeLabel(size))),
			func() (*plot.Plot, error) { return Iterations(c, size, opt) },
			false,
		})
	}

	for _, panel := range panels {
		p, err := panel.build()
		if err != nil {
			return err
		}
		width := 8 * vg.Inch
		if panel.wide {
			width = 14 * vg.Inch
		}
		height := 5 * vg.Inch

		if pngDir != "" {
			if err := savePanelPNG(filepath.Join(pngDir, panel.name+".png"), p, width, height, opt.dpi()); err != nil {
				return err
			}
		}
		if svgDir != "" {
			if err := p.Save(width, height, filepath.Join(svgDir, panel.name+".svg")); err != nil {
				return err
			}
		}
	}
	return nil
}

// savePanelPNG writes p as a PNG at the requested resolution.
// Plot.Save renders PNGs at the default 72 DPI, so report-quality
// panels go through an explicit canvas.
func savePanelPNG(path string, p *plot.Plot, w, h vg.Length, dpi int) (err error) {
	img := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(f)
	return err
}
