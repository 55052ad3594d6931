// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmetric computes statistics over benchmark result
// tables and the derived comparison ratios between implementations.
//
// A Collection groups rows by their configuration triple and
// aggregates repeated trials after removing outliers using the
// interquartile range rule. All derived ratios treat a missing or
// zero-time counterpart as 0 rather than an error, so a sparse table
// still renders.
//
// Analysis problems that should be presented to the user but do not
// prevent analysis, such as a graph size with no sequential baseline,
// are accumulated as warnings.
package benchmetric

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/Architbh007/vm/benchcsv"
)

// A Metrics holds the accumulated time measurements for a single
// benchmark configuration.
type Metrics struct {
	// Values are the measured execution times in milliseconds,
	// one per trial, in input order.
	Values []float64

	// RValues is Values with outliers removed.
	RValues []float64

	// Min, Mean, and Max are computed over RValues.
	Min, Mean, Max float64

	// Iters is the iteration count of the first trial. Repeated
	// trials of a deterministic configuration report the same
	// count, so the first one stands for all of them.
	Iters int

	dirty bool
}

// computeStats updates the derived statistics in m from the raw
// samples in m.Values, discarding outliers by the interquartile
// range rule.
func (m *Metrics) computeStats() {
	values := stats.Sample{Xs: m.Values}
	q1, q3 := values.Quantile(0.25), values.Quantile(0.75)
	lo, hi := q1-1.5*(q3-q1), q3+1.5*(q3-q1)
	m.RValues = m.RValues[:0]
	for _, value := range m.Values {
		if lo <= value && value <= hi {
			m.RValues = append(m.RValues, value)
		}
	}

	m.Min, m.Max = stats.Bounds(m.RValues)
	m.Mean = stats.Mean(m.RValues)
	m.dirty = false
}

// A Collection accumulates benchmark rows grouped by configuration.
//
// The zero value is a Collection ready for use.
type Collection struct {
	metrics map[benchcsv.Config]*Metrics

	// impls, sizes, and procs record observation order and the
	// observed keys along each table dimension.
	impls []benchcsv.Implementation
	sizes []int
	procs map[benchcsv.Implementation][]int

	warnings []error
	warnDone bool
}

// AddRow adds a single benchmark row to the collection.
func (c *Collection) AddRow(row *benchcsv.Row) {
	if c.metrics == nil {
		c.metrics = make(map[benchcsv.Config]*Metrics)
		c.procs = make(map[benchcsv.Implementation][]int)
	}
	key := row.Key()
	m := c.metrics[key]
	if m == nil {
		m = &Metrics{Iters: row.Iters}
		c.metrics[key] = m
		c.impls = addImpl(c.impls, key.Impl)
		c.sizes = addInt(c.sizes, key.GraphSize)
		c.procs[key.Impl] = addInt(c.procs[key.Impl], key.Procs)
	}
	m.Values = append(m.Values, row.TimeMS)
	m.dirty = true
	c.warnDone = false
}

func addImpl(impls []benchcsv.Implementation, impl benchcsv.Implementation) []benchcsv.Implementation {
	for _, i := range impls {
		if i == impl {
			return impls
		}
	}
	return append(impls, impl)
}

func addInt(xs []int, x int) []int {
	i := sort.SearchInts(xs, x)
	if i < len(xs) && xs[i] == x {
		return xs
	}
	xs = append(xs, 0)
	copy(xs[i+1:], xs[i:])
	xs[i] = x
	return xs
}

// Sizes returns the observed graph sizes in ascending order.
// The caller must not modify the returned slice.
func (c *Collection) Sizes() []int {
	return c.sizes
}

// Implementations returns the observed implementations in order of
// first appearance.
func (c *Collection) Implementations() []benchcsv.Implementation {
	return c.impls
}

// ProcCounts returns the observed process counts for impl in
// ascending order.
func (c *Collection) ProcCounts(impl benchcsv.Implementation) []int {
	return c.procs[impl]
}

// Get returns the metrics for the given configuration, or nil if the
// collection has no rows for it.
func (c *Collection) Get(key benchcsv.Config) *Metrics {
	m := c.metrics[key]
	if m != nil && m.dirty {
		m.computeStats()
	}
	return m
}

// Time returns the outlier-trimmed mean execution time in
// milliseconds for the given configuration. ok is false if the
// collection has no rows for it.
func (c *Collection) Time(impl benchcsv.Implementation, size, procs int) (ms float64, ok bool) {
	m := c.Get(benchcsv.Config{Impl: impl, GraphSize: size, Procs: procs})
	if m == nil {
		return 0, false
	}
	return m.Mean, true
}

// Iterations returns the iteration count for the given configuration,
// or 0 if the collection has no rows for it. Sequential
// configurations always report 0.
func (c *Collection) Iterations(key benchcsv.Config) int {
	if !key.Impl.Distributed() {
		return 0
	}
	m := c.metrics[key]
	if m == nil {
		return 0
	}
	return m.Iters
}

// baseline returns the sequential time for the given graph size.
// The sequential implementation normally runs with one process, but
// any recorded process count is accepted.
func (c *Collection) baseline(size int) (ms float64, ok bool) {
	if ms, ok = c.Time(benchcsv.Sequential, size, 1); ok {
		return ms, true
	}
	for _, p := range c.procs[benchcsv.Sequential] {
		if ms, ok = c.Time(benchcsv.Sequential, size, p); ok {
			return ms, true
		}
	}
	return 0, false
}

// Speedup returns the speedup of the given distributed configuration
// over the sequential baseline at the same graph size: seq/dist.
// It returns 0 if either time is missing or the distributed time is
// zero.
func (c *Collection) Speedup(impl benchcsv.Implementation, size, procs int) float64 {
	seq, ok := c.baseline(size)
	if !ok {
		return 0
	}
	dist, ok := c.Time(impl, size, procs)
	if !ok || dist == 0 {
		return 0
	}
	return seq / dist
}

// Overhead returns the slowdown of the given distributed
// configuration relative to the sequential baseline at the same graph
// size: dist/seq. Values above 1 mean the distributed run was slower
// than the baseline. It returns 0 if either time is missing or the
// baseline is zero.
func (c *Collection) Overhead(impl benchcsv.Implementation, size, procs int) float64 {
	seq, ok := c.baseline(size)
	if !ok || seq == 0 {
		return 0
	}
	dist, ok := c.Time(impl, size, procs)
	if !ok {
		return 0
	}
	return dist / seq
}

// Efficiency returns the parallel efficiency of the given
// configuration as a percentage: speedup divided by the process
// count. 100 means perfect linear scaling.
func (c *Collection) Efficiency(impl benchcsv.Implementation, size, procs int) float64 {
	if procs == 0 {
		return 0
	}
	return c.Speedup(impl, size, procs) / float64(procs) * 100
}

// GeoMeanSpeedup returns the geometric mean of the speedups of the
// given configuration across all graph sizes with both a baseline and
// a measurement. ok is false if there are none.
func (c *Collection) GeoMeanSpeedup(impl benchcsv.Implementation, procs int) (gm float64, ok bool) {
	var speedups []float64
	for _, size := range c.sizes {
		if s := c.Speedup(impl, size, procs); s > 0 {
			speedups = append(speedups, s)
		}
	}
	if len(speedups) == 0 {
		return 0, false
	}
	return stats.GeoMean(speedups), true
}

// Warnings returns a list of analysis problems that should be
// reported to the user alongside the results.
func (c *Collection) Warnings() []error {
	if !c.warnDone {
		c.warnings = c.warnings[:0]
		for _, size := range c.sizes {
			if _, ok := c.baseline(size); !ok {
				c.warnings = append(c.warnings,
					fmt.Errorf("graph size %d has no sequential baseline; ratios are reported as 0", size))
			}
		}
		c.warnDone = true
	}
	return c.warnings
}
