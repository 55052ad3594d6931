// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"

	"github.com/Architbh007/vm/benchcsv"
	"github.com/Architbh007/vm/benchmetric"
)

// A series is one bar series of a grouped chart: one implementation
// at one process count, plotted across all graph sizes.
type series struct {
	impl  benchcsv.Implementation
	procs int
}

// label returns the display name of the series, e.g. "Local 2P".
func (s series) label() string {
	switch s.impl {
	case benchcsv.Sequential:
		return "Sequential"
	case benchcsv.DistributedLocal:
		return fmt.Sprintf("Local %dP", s.procs)
	case benchcsv.DistributedMultiVM:
		return fmt.Sprintf("Multi-VM %dP", s.procs)
	}
	return fmt.Sprintf("%s %dP", s.impl, s.procs)
}

// shortLabel returns the compact name used as a category tick on the
// iteration panels, e.g. "L-2P".
func (s series) shortLabel() string {
	switch s.impl {
	case benchcsv.Sequential:
		return "Seq"
	case benchcsv.DistributedLocal:
		return fmt.Sprintf("L-%dP", s.procs)
	case benchcsv.DistributedMultiVM:
		return fmt.Sprintf("MV-%dP", s.procs)
	}
	return fmt.Sprintf("%s-%dP", s.impl, s.procs)
}

// allSeries returns every series in the collection in display order:
// the sequential baseline first, then each distributed implementation
// with its process counts ascending.
func allSeries(c *benchmetric.Collection) []series {
	var out []series
	for _, impl := range c.Implementations() {
		if !impl.Distributed() {
			out = append(out, series{impl, 1})
		}
	}
	for _, impl := range c.Implementations() {
		if !impl.Distributed() {
			continue
		}
		for _, p := range c.ProcCounts(impl) {
			out = append(out, series{impl, p})
		}
	}
	return out
}

// distSeries returns the distributed series for one implementation.
func distSeries(c *benchmetric.Collection, impl benchcsv.Implementation) []series {
	var out []series
	for _, p := range c.ProcCounts(impl) {
		out = append(out, series{impl, p})
	}
	return out
}

// The fixed palette matches the established report colors for the
// five standard configurations. Other configurations cycle through
// the same palette.
var seriesColors = map[string]color.NRGBA{
	"Sequential":  {0x2E, 0x86, 0xAB, 0xFF},
	"Local 2P":    {0xA2, 0x3B, 0x72, 0xFF},
	"Local 4P":    {0xF1, 0x8F, 0x01, 0xFF},
	"Multi-VM 6P": {0x06, 0xA7, 0x7D, 0xFF},
	"Multi-VM 8P": {0xC7, 0x3E, 0x1D, 0xFF},
}

var fallbackColors = []color.NRGBA{
	{0x2E, 0x86, 0xAB, 0xFF},
	{0xA2, 0x3B, 0x72, 0xFF},
	{0xF1, 0x8F, 0x01, 0xFF},
	{0x06, 0xA7, 0x7D, 0xFF},
	{0xC7, 0x3E, 0x1D, 0xFF},
}

// seriesColor returns the bar color for s. i is the index of s within
// its chart, used to cycle the palette for non-standard series.
func seriesColor(i int, s series) color.Color {
	if clr, ok := seriesColors[s.label()]; ok {
		return clr
	}
	return fallbackColors[i%len(fallbackColors)]
}

// sizeLabel formats a graph size as a tick label, e.g. 10000 -> "10K".
func sizeLabel(n int) string {
	if n >= 1000 && n%1000 == 0 {
		return fmt.Sprintf("%dK", n/1000)
	}
	return fmt.Sprintf("%d", n)
}

// sizeLabels formats all of the collection's graph sizes.
func sizeLabels(c *benchmetric.Collection) []string {
	var out []string
	for _, s := range c.Sizes() {
		out = append(out, sizeLabel(s))
	}
	return out
}
