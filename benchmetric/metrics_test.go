// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmetric

import (
	"math"
	"reflect"
	"testing"

	"github.com/Architbh007/vm/benchcsv"
)

func addRows(c *Collection, rows ...benchcsv.Row) {
	for i := range rows {
		c.AddRow(&rows[i])
	}
}

// collect builds the standard three-implementation collection used by
// most tests: sequential at 500ms/1000ms, local-2P at 250ms/400ms,
// multi-VM 6P at 1000ms/4000ms.
func collect() *Collection {
	c := new(Collection)
	addRows(c,
		benchcsv.Row{Impl: benchcsv.Sequential, GraphSize: 10000, Procs: 1, TimeMS: 500},
		benchcsv.Row{Impl: benchcsv.Sequential, GraphSize: 20000, Procs: 1, TimeMS: 1000},
		benchcsv.Row{Impl: benchcsv.DistributedLocal, GraphSize: 10000, Procs: 2, TimeMS: 250, Iters: 14},
		benchcsv.Row{Impl: benchcsv.DistributedLocal, GraphSize: 20000, Procs: 2, TimeMS: 400, Iters: 17},
		benchcsv.Row{Impl: benchcsv.DistributedMultiVM, GraphSize: 10000, Procs: 6, TimeMS: 1000, Iters: 15},
		benchcsv.Row{Impl: benchcsv.DistributedMultiVM, GraphSize: 20000, Procs: 6, TimeMS: 4000, Iters: 18},
	)
	return c
}

func almost(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestCollectionDimensions(t *testing.T) {
	c := collect()
	if got, want := c.Sizes(), []int{10000, 20000}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sizes() = %v, want %v", got, want)
	}
	wantImpls := []benchcsv.Implementation{
		benchcsv.Sequential, benchcsv.DistributedLocal, benchcsv.DistributedMultiVM,
	}
	if got := c.Implementations(); !reflect.DeepEqual(got, wantImpls) {
		t.Errorf("Implementations() = %v, want %v", got, wantImpls)
	}
	if got, want := c.ProcCounts(benchcsv.DistributedMultiVM), []int{6}; !reflect.DeepEqual(got, want) {
		t.Errorf("ProcCounts(multi-vm) = %v, want %v", got, want)
	}
}

func TestRatios(t *testing.T) {
	c := collect()
	check := func(name string, got, want float64) {
		t.Helper()
		if !almost(got, want) {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}

	check("Speedup(local,10000,2)", c.Speedup(benchcsv.DistributedLocal, 10000, 2), 2)
	check("Speedup(local,20000,2)", c.Speedup(benchcsv.DistributedLocal, 20000, 2), 2.5)
	check("Overhead(multivm,10000,6)", c.Overhead(benchcsv.DistributedMultiVM, 10000, 6), 2)
	check("Overhead(multivm,20000,6)", c.Overhead(benchcsv.DistributedMultiVM, 20000, 6), 4)
	check("Efficiency(local,10000,2)", c.Efficiency(benchcsv.DistributedLocal, 10000, 2), 100)
	check("Efficiency(multivm,20000,6)", c.Efficiency(benchcsv.DistributedMultiVM, 20000, 6), 100.0/6/4)

	// Missing configurations and zero times report 0.
	check("Speedup(local,30000,2)", c.Speedup(benchcsv.DistributedLocal, 30000, 2), 0)
	check("Speedup(local,10000,8)", c.Speedup(benchcsv.DistributedLocal, 10000, 8), 0)
	c.AddRow(&benchcsv.Row{Impl: benchcsv.DistributedLocal, GraphSize: 10000, Procs: 4, TimeMS: 0})
	check("Speedup zero time", c.Speedup(benchcsv.DistributedLocal, 10000, 4), 0)
	check("Overhead zero time", c.Overhead(benchcsv.DistributedLocal, 10000, 4), 0)

	if gm, ok := c.GeoMeanSpeedup(benchcsv.DistributedLocal, 2); !ok || !almost(gm, math.Sqrt(2*2.5)) {
		t.Errorf("GeoMeanSpeedup(local,2) = %v, %v, want %v", gm, ok, math.Sqrt(2*2.5))
	}
	if _, ok := c.GeoMeanSpeedup(benchcsv.DistributedLocal, 8); ok {
		t.Errorf("GeoMeanSpeedup(local,8) reported ok for missing configuration")
	}
}

func TestOutlierTrimming(t *testing.T) {
	c := new(Collection)
	// Five repeated trials with one wild outlier.
	for _, ms := range []float64{100, 102, 98, 101, 5000} {
		c.AddRow(&benchcsv.Row{Impl: benchcsv.Sequential, GraphSize: 10000, Procs: 1, TimeMS: ms})
	}
	m := c.Get(benchcsv.Config{Impl: benchcsv.Sequential, GraphSize: 10000, Procs: 1})
	if m == nil {
		t.Fatal("Get returned nil")
	}
	if len(m.RValues) != 4 {
		t.Fatalf("RValues = %v, want the outlier removed", m.RValues)
	}
	if !almost(m.Mean, (100+102+98+101)/4.0) {
		t.Errorf("Mean = %v, want %v", m.Mean, (100+102+98+101)/4.0)
	}
	if m.Min != 98 || m.Max != 102 {
		t.Errorf("Min, Max = %v, %v, want 98, 102", m.Min, m.Max)
	}
}

func TestIterations(t *testing.T) {
	c := collect()
	if got := c.Iterations(benchcsv.Config{Impl: benchcsv.DistributedLocal, GraphSize: 20000, Procs: 2}); got != 17 {
		t.Errorf("Iterations(local,20000,2) = %d, want 17", got)
	}
	// Sequential runs do not track iterations.
	if got := c.Iterations(benchcsv.Config{Impl: benchcsv.Sequential, GraphSize: 10000, Procs: 1}); got != 0 {
		t.Errorf("Iterations(sequential) = %d, want 0", got)
	}
	// Missing configurations report 0.
	if got := c.Iterations(benchcsv.Config{Impl: benchcsv.DistributedMultiVM, GraphSize: 10000, Procs: 8}); got != 0 {
		t.Errorf("Iterations(missing) = %d, want 0", got)
	}
}

func TestMissingBaselineWarning(t *testing.T) {
	c := new(Collection)
	addRows(c,
		benchcsv.Row{Impl: benchcsv.Sequential, GraphSize: 10000, Procs: 1, TimeMS: 500},
		benchcsv.Row{Impl: benchcsv.DistributedLocal, GraphSize: 10000, Procs: 2, TimeMS: 250},
		benchcsv.Row{Impl: benchcsv.DistributedLocal, GraphSize: 30000, Procs: 2, TimeMS: 900},
	)
	warnings := c.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings %q, want 1", len(warnings), warnings)
	}
	want := "graph size 30000 has no sequential baseline; ratios are reported as 0"
	if warnings[0].Error() != want {
		t.Errorf("got warning %q, want %q", warnings[0], want)
	}
	if got := c.Speedup(benchcsv.DistributedLocal, 30000, 2); got != 0 {
		t.Errorf("Speedup without baseline = %v, want 0", got)
	}
}
