// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv provides a streaming reader and writer for the
// pathfinding benchmark results table.
//
// The table is a CSV file with a header row naming the columns
// Implementation, Graph_Size, Processes, Time_ms, and Iterations.
// Columns may appear in any order and unknown columns are ignored.
//
// The reader is structured as a streaming operation modeled on
// bufio.Scanner: it retains ownership of the Row it returns, so a
// caller that wants to keep a Row across calls must Clone it.
package benchcsv

// An Implementation names the benchmarked implementation of the
// pathfinding algorithm.
type Implementation string

const (
	// Sequential is the single-process baseline implementation.
	Sequential Implementation = "Sequential"
	// DistributedLocal is the distributed implementation with all
	// processes on one machine.
	DistributedLocal Implementation = "Distributed-Local"
	// DistributedMultiVM is the distributed implementation spread
	// across multiple machines.
	DistributedMultiVM Implementation = "Distributed-MultiVM"
)

// Distributed reports whether i is one of the distributed
// implementations. Unknown implementation names are treated as
// distributed because they carry a meaningful process count.
func (i Implementation) Distributed() bool {
	return i != Sequential
}

// A Config identifies a single benchmark configuration: one
// implementation run at one graph size with one process count.
type Config struct {
	Impl      Implementation
	GraphSize int
	Procs     int
}

// A Row is a single benchmark measurement read from a results table.
//
// Rows are mutated in place and reused by Reader to reduce
// allocation.
type Row struct {
	// Impl is the implementation that produced this measurement.
	Impl Implementation

	// GraphSize is the number of nodes in the benchmark graph.
	GraphSize int

	// Procs is the number of processes used. It is 1 for
	// sequential runs and when the table omits the column.
	Procs int

	// TimeMS is the measured execution time in milliseconds.
	TimeMS float64

	// Iters is the number of distributed relaxation iterations.
	// It is 0 for sequential runs, which do not track iterations.
	Iters int

	// File is the provenance label of the input this row was read
	// from. It is set by Files; a bare Reader uses the file name.
	File string

	fileName string
	line     int
}

// Key returns the configuration triple identifying this row.
func (r *Row) Key() Config {
	return Config{r.Impl, r.GraphSize, r.Procs}
}

// Pos returns the file name and 1-based line number this Row was read
// from. For Rows that were not read from a file, it returns "", 0.
func (r *Row) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of r that shares no state with r.
func (r *Row) Clone() *Row {
	r2 := *r
	return &r2
}
