// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Header is the canonical column order written by Writer.
var Header = []string{"Implementation", "Graph_Size", "Processes", "Time_ms", "Iterations"}

// A Writer writes the benchmark results table format.
type Writer struct {
	c     *csv.Writer
	first bool
}

// NewWriter returns a writer that writes benchmark rows to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{c: csv.NewWriter(w), first: true}
}

// Write writes Record rec to w. The canonical header row is emitted
// before the first Row. SyntaxError records are ignored, so a
// Reader's records can be piped straight through.
func (w *Writer) Write(rec Record) error {
	row, ok := rec.(*Row)
	if !ok {
		return nil
	}
	if w.first {
		if err := w.c.Write(Header); err != nil {
			return err
		}
		w.first = false
	}

	iters := ""
	if row.Impl.Distributed() || row.Iters > 0 {
		iters = strconv.Itoa(row.Iters)
	}
	return w.c.Write([]string{
		string(row.Impl),
		strconv.Itoa(row.GraphSize),
		strconv.Itoa(row.Procs),
		strconv.FormatFloat(row.TimeMS, 'f', -1, 64),
		iters,
	})
}

// Flush writes any buffered rows to the underlying writer and
// returns the first error that occurred during writing.
func (w *Writer) Flush() error {
	w.c.Flush()
	return w.c.Error()
}
