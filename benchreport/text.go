// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchreport formats derived pathfinding metrics as
// fixed-width text and HTML reports.
package benchreport

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/Architbh007/vm/benchcsv"
	"github.com/Architbh007/vm/benchmetric"
)

// A table is a titled grid of cells. The first row holds the column
// headings.
type table struct {
	title string
	rows  []*textRow
}

// A textRow is a row of printed text columns.
type textRow struct {
	cols []string
}

func newTextRow(cols ...string) *textRow {
	return &textRow{cols: cols}
}

func (r *textRow) add(col string) {
	r.cols = append(r.cols, col)
}

func (r *textRow) trim() {
	for len(r.cols) > 0 && r.cols[len(r.cols)-1] == "" {
		r.cols = r.cols[:len(r.cols)-1]
	}
}

// A config pairs an implementation with a process count. Sequential
// comes first, then each distributed implementation with its process
// counts in ascending order.
type config struct {
	impl  benchcsv.Implementation
	procs int
}

func (cfg config) label() string {
	if !cfg.impl.Distributed() {
		return string(cfg.impl)
	}
	name := string(cfg.impl)
	switch cfg.impl {
	case benchcsv.DistributedLocal:
		name = "Local"
	case benchcsv.DistributedMultiVM:
		name = "Multi-VM"
	}
	return fmt.Sprintf("%s %dP", name, cfg.procs)
}

func configs(c *benchmetric.Collection) []config {
	var out []config
	for _, impl := range c.Implementations() {
		if !impl.Distributed() {
			out = append(out, config{impl, 1})
		}
	}
	for _, impl := range c.Implementations() {
		if !impl.Distributed() {
			continue
		}
		for _, p := range c.ProcCounts(impl) {
			out = append(out, config{impl, p})
		}
	}
	return out
}

func distConfigs(c *benchmetric.Collection) []config {
	var out []config
	for _, cfg := range configs(c) {
		if cfg.impl.Distributed() {
			out = append(out, cfg)
		}
	}
	return out
}

func sizeLabel(n int) string {
	if n >= 1000 && n%1000 == 0 {
		return fmt.Sprintf("%dK", n/1000)
	}
	return fmt.Sprintf("%d", n)
}

// tables builds the report tables: the measured data followed by the
// three derived ratio tables.
func tables(c *benchmetric.Collection) []*table {
	sizes := c.Sizes()

	data := &table{title: "Data Verification"}
	data.rows = append(data.rows, newTextRow("implementation", "graph size", "procs", "time (ms)", "iterations"))
	for _, cfg := range configs(c) {
		for _, size := range sizes {
			ms, ok := c.Time(cfg.impl, size, cfg.procs)
			if !ok {
				continue
			}
			iters := ""
			if cfg.impl.Distributed() {
				iters = fmt.Sprintf("%d", c.Iterations(benchcsv.Config{Impl: cfg.impl, GraphSize: size, Procs: cfg.procs}))
			}
			data.rows = append(data.rows, newTextRow(
				string(cfg.impl), sizeLabel(size), fmt.Sprintf("%d", cfg.procs),
				fmt.Sprintf("%.1f", ms), iters))
		}
	}

	ratio := func(title, unit string, f func(impl benchcsv.Implementation, size, procs int) float64) *table {
		t := &table{title: title}
		head := newTextRow("config \\ size")
		for _, size := range sizes {
			head.add(sizeLabel(size))
		}
		t.rows = append(t.rows, head)
		for _, cfg := range distConfigs(c) {
			row := newTextRow(cfg.label())
			for _, size := range sizes {
				row.add(fmt.Sprintf("%.2f%s", f(cfg.impl, size, cfg.procs), unit))
			}
			t.rows = append(t.rows, row)
		}
		return t
	}

	speedup := ratio("Speedup vs Sequential", "x", c.Speedup)
	speedup.rows[0].add("geomean")
	for i, cfg := range distConfigs(c) {
		if gm, ok := c.GeoMeanSpeedup(cfg.impl, cfg.procs); ok {
			speedup.rows[i+1].add(fmt.Sprintf("%.2fx", gm))
		} else {
			speedup.rows[i+1].add("?")
		}
	}

	overhead := ratio("Distribution Overhead", "x", c.Overhead)

	eff := &table{title: "Parallel Efficiency"}
	head := newTextRow("config \\ size")
	for _, size := range sizes {
		head.add(sizeLabel(size))
	}
	eff.rows = append(eff.rows, head)
	for _, cfg := range distConfigs(c) {
		row := newTextRow(cfg.label())
		for _, size := range sizes {
			row.add(fmt.Sprintf("%.1f%%", c.Efficiency(cfg.impl, size, cfg.procs)))
		}
		eff.rows = append(eff.rows, row)
	}

	out := []*table{data, speedup, overhead, eff}
	for _, t := range out {
		for _, r := range t.rows[1:] {
			r.trim()
		}
	}
	return out
}

// FormatText appends a fixed-width text formatting of the report
// tables to buf.
func FormatText(buf *bytes.Buffer, c *benchmetric.Collection) {
	for i, t := range tables(c) {
		if i > 0 {
			fmt.Fprintf(buf, "\n")
		}
		fmt.Fprintf(buf, "%s\n", t.title)

		var max []int
		for _, row := range t.rows {
			for len(max) < len(row.cols) {
				max = append(max, 0)
			}
			for i, s := range row.cols {
				n := utf8.RuneCountInString(s)
				if max[i] < n {
					max[i] = n
				}
			}
		}

		// headings
		for i, s := range t.rows[0].cols {
			switch i {
			case 0:
				fmt.Fprintf(buf, "%-*s", max[i], s)
			default:
				fmt.Fprintf(buf, "  %-*s", max[i], s)
			case len(t.rows[0].cols) - 1:
				fmt.Fprintf(buf, "  %s", s)
			}
		}
		fmt.Fprintf(buf, "\n")

		// data
		for _, row := range t.rows[1:] {
			for i, s := range row.cols {
				switch i {
				case 0:
					fmt.Fprintf(buf, "%-*s", max[i], s)
				default:
					fmt.Fprintf(buf, "  %*s", max[i], s)
				}
			}
			fmt.Fprintf(buf, "\n")
		}
	}
}
