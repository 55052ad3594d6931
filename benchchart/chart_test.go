// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/Architbh007/vm/benchcsv"
	"github.com/Architbh007/vm/benchmetric"
)

func collect(t *testing.T) *benchmetric.Collection {
	t.Helper()
	rows := []benchcsv.Row{
		{Impl: benchcsv.Sequential, GraphSize: 10000, Procs: 1, TimeMS: 500},
		{Impl: benchcsv.Sequential, GraphSize: 20000, Procs: 1, TimeMS: 1200},
		{Impl: benchcsv.DistributedLocal, GraphSize: 10000, Procs: 2, TimeMS: 300, Iters: 4},
		{Impl: benchcsv.DistributedLocal, GraphSize: 20000, Procs: 2, TimeMS: 700, Iters: 5},
		{Impl: benchcsv.DistributedLocal, GraphSize: 10000, Procs: 4, TimeMS: 200, Iters: 4},
		{Impl: benchcsv.DistributedLocal, GraphSize: 20000, Procs: 4, TimeMS: 450, Iters: 6},
		{Impl: benchcsv.DistributedMultiVM, GraphSize: 10000, Procs: 6, TimeMS: 900, Iters: 7},
		{Impl: benchcsv.DistributedMultiVM, GraphSize: 20000, Procs: 6, TimeMS: 2100, Iters: 8},
	}
	c := new(benchmetric.Collection)
	for i := range rows {
		c.AddRow(&rows[i])
	}
	return c
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestPanels(t *testing.T) {
	c := collect(t)
	builds := map[string]func() error{
		"time":       func() error { _, err := TimeComparison(c, nil); return err },
		"speedup":    func() error { _, err := LocalSpeedup(c, nil); return err },
		"overhead":   func() error { _, err := MultiVMOverhead(c, nil); return err },
		"efficiency": func() error { _, err := Efficiency(c, nil); return err },
		"iterations": func() error { _, err := Iterations(c, 10000, nil); return err },
	}
	for name, build := range builds {
		if err := build(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestPanelsLinear(t *testing.T) {
	c := collect(t)
	opt := &Options{LinearTime: true, LinearOverhead: true}
	if _, err := TimeComparison(c, opt); err != nil {
		t.Errorf("time: %v", err)
	}
	if _, err := MultiVMOverhead(c, opt); err != nil {
		t.Errorf("overhead: %v", err)
	}
}

func TestPanelsEmpty(t *testing.T) {
	c := new(benchmetric.Collection)
	if _, err := TimeComparison(c, nil); err != nil {
		t.Errorf("time on empty collection: %v", err)
	}
	if _, err := Iterations(c, 10000, nil); err != nil {
		t.Errorf("iterations on empty collection: %v", err)
	}
}

func TestDrawLogPanels(t *testing.T) {
	// Draw, not just build: bars on a log-scaled axis must not
	// evaluate the zero coordinate, which log scales reject.
	c := collect(t)
	builds := map[string]func() (*plot.Plot, error){
		"time":     func() (*plot.Plot, error) { return TimeComparison(c, nil) },
		"overhead": func() (*plot.Plot, error) { return MultiVMOverhead(c, nil) },
	}
	for name, build := range builds {
		p, err := build()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		img := vgimg.New(vg.Points(400), vg.Points(300))
		p.Draw(draw.New(img))
	}
}

func TestWriteFigure(t *testing.T) {
	c := collect(t)
	var buf bytes.Buffer
	// Render at screen resolution to keep the test fast.
	if err := WriteFigure(&buf, c, &Options{DPI: 72}); err != nil {
		t.Fatalf("WriteFigure: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Errorf("output does not start with a PNG signature: % x", buf.Bytes()[:8])
	}
}

func TestSaveFigure(t *testing.T) {
	c := collect(t)
	path := filepath.Join(t.TempDir(), "performance_analysis.png")
	if err := SaveFigure(path, c, &Options{DPI: 72}); err != nil {
		t.Fatalf("SaveFigure: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Errorf("%s does not start with a PNG signature", path)
	}
}

func TestRenderDirs(t *testing.T) {
	c := collect(t)
	dir := t.TempDir()
	pngDir := filepath.Join(dir, "png")
	svgDir := filepath.Join(dir, "svg")
	if err := RenderDirs(c, &Options{DPI: 72}, pngDir, svgDir); err != nil {
		t.Fatalf("RenderDirs: %v", err)
	}
	want := []string{
		"time_comparison", "local_speedup", "multivm_overhead",
		"parallel_efficiency", "iterations_10k", "iterations_20k",
	}
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(pngDir, name+".png")); err != nil {
			t.Errorf("missing PNG panel: %v", err)
		}
		if _, err := os.Stat(filepath.Join(svgDir, name+".svg")); err != nil {
			t.Errorf("missing SVG panel: %v", err)
		}
	}
}

func TestSeriesLabels(t *testing.T) {
	tests := []struct {
		s          series
		label      string
		shortLabel string
	}{
		{series{impl: benchcsv.Sequential, procs: 1}, "Sequential", "Seq"},
		{series{impl: benchcsv.DistributedLocal, procs: 2}, "Local 2P", "L-2P"},
		{series{impl: benchcsv.DistributedMultiVM, procs: 6}, "Multi-VM 6P", "MV-6P"},
	}
	for _, test := range tests {
		if got := test.s.label(); got != test.label {
			t.Errorf("label(%+v) = %q, want %q", test.s, got, test.label)
		}
		if got := test.s.shortLabel(); got != test.shortLabel {
			t.Errorf("shortLabel(%+v) = %q, want %q", test.s, got, test.shortLabel)
		}
	}
}

func TestSizeLabel(t *testing.T) {
	if got := sizeLabel(10000); got != "10K" {
		t.Errorf("sizeLabel(10000) = %q, want %q", got, "10K")
	}
	if got := sizeLabel(500); got != "500" {
		t.Errorf("sizeLabel(500) = %q, want %q", got, "500")
	}
}
