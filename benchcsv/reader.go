// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Reader reads the benchmark results table format.
//
// Its API is modeled on bufio.Scanner. To minimize allocation, a
// Reader retains ownership of the Row it returns; a caller should
// Clone anything it needs to retain.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	c   *csv.Reader
	err error // first I/O or header error

	// cols maps record field index to column, or -1 for ignored
	// columns. It is nil until the header row has been read.
	cols []column

	row   Row
	rec   Record
	label string
}

type column int

const (
	colIgnore column = iota
	colImpl
	colGraphSize
	colProcs
	colTimeMS
	colIters
)

var colNames = map[string]column{
	"implementation": colImpl,
	"graph_size":     colGraphSize,
	"processes":      colProcs,
	"time_ms":        colTimeMS,
	"iterations":     colIters,
}

// A SyntaxError represents a syntax error on a particular line of a
// benchmark results table.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Record is a single record read from a results table. It is either
// a *Row or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and
	// a 1-based line number within that file. If this record was
	// not read from a file, it returns "", 0.
	Pos() (fileName string, line int)
}

var _ Record = (*Row)(nil)
var _ Record = (*SyntaxError)(nil)

var noRow = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader to parse the results table from r.
// fileName is used in error messages and as the provenance label.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
// fileName is used in error messages; label becomes the File field of
// every Row read from this input.
func (r *Reader) Reset(ior io.Reader, fileName, label string) {
	r.c = csv.NewReader(ior)
	// Rows with the wrong field count produce our own syntax
	// errors rather than csv.ErrFieldCount.
	r.c.FieldsPerRecord = -1
	r.c.ReuseRecord = true
	r.err = nil
	r.cols = nil
	r.rec = nil
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.row = Row{fileName: fileName}
	r.label = label
}

// newSyntaxError returns a *SyntaxError at the Reader's current position.
func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.row.fileName, r.row.line, msg}
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Result method to get the
// record. If Scan reaches EOF or an I/O error occurs, it returns
// false, in which case the caller should use the Err method to check
// for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for {
		fields, err := r.c.Read()
		if err == io.EOF {
			return false
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			// A malformed record (e.g., a bare quote) is a
			// non-fatal syntax error; parsing continues on
			// the next record.
			r.row.line = pe.Line
			r.rec = r.newSyntaxError(pe.Err.Error())
			return true
		}
		if err != nil {
			r.err = fmt.Errorf("%s: %w", r.row.fileName, err)
			return false
		}
		r.row.line, _ = r.c.FieldPos(0)

		if r.cols == nil {
			if err := r.parseHeader(fields); err != nil {
				// A bad header is fatal: every row
				// would fail the same way.
				r.err = err
				return false
			}
			continue
		}

		if serr := r.parseRow(fields); serr != nil {
			r.rec = serr
		} else {
			r.rec = &r.row
		}
		return true
	}
}

// parseHeader interprets fields as the table's header row.
func (r *Reader) parseHeader(fields []string) error {
	cols := make([]column, len(fields))
	seen := make(map[column]bool)
	for i, f := range fields {
		c, ok := colNames[strings.ToLower(strings.TrimSpace(f))]
		if !ok {
			continue
		}
		if seen[c] {
			return r.newSyntaxError(fmt.Sprintf("duplicate column %q", f))
		}
		seen[c] = true
		cols[i] = c
	}
	for _, c := range []column{colImpl, colGraphSize, colTimeMS} {
		if !seen[c] {
			return r.newSyntaxError(fmt.Sprintf("missing required column %s", colName(c)))
		}
	}
	r.cols = cols
	return nil
}

func colName(c column) string {
	for name, c2 := range colNames {
		if c == c2 {
			return name
		}
	}
	return fmt.Sprintf("column(%d)", int(c))
}

// parseRow parses fields as a measurement row and updates r.row.
func (r *Reader) parseRow(fields []string) *SyntaxError {
	if len(fields) != len(r.cols) {
		return r.newSyntaxError(fmt.Sprintf("got %d fields, header has %d", len(fields), len(r.cols)))
	}
	// Defaults for omitted columns.
	r.row.Impl = ""
	r.row.GraphSize = 0
	r.row.Procs = 1
	r.row.TimeMS = 0
	r.row.Iters = 0
	r.row.File = r.label

	for i, f := range fields {
		f = strings.TrimSpace(f)
		switch r.cols[i] {
		case colImpl:
			if f == "" {
				return r.newSyntaxError("missing implementation")
			}
			r.row.Impl = Implementation(f)
		case colGraphSize:
			n, err := atoi(f)
			if err != nil {
				return r.newSyntaxError("parsing graph size: " + err.Error())
			}
			r.row.GraphSize = n
		case colProcs:
			n, err := atoi(f)
			if err != nil {
				return r.newSyntaxError("parsing process count: " + err.Error())
			}
			if n == 0 {
				n = 1
			}
			r.row.Procs = n
		case colTimeMS:
			if f == "" {
				break
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return r.newSyntaxError("parsing time: " + unwrapNum(err).Error())
			}
			if v < 0 {
				return r.newSyntaxError("negative time")
			}
			r.row.TimeMS = v
		case colIters:
			n, err := atoi(f)
			if err != nil {
				return r.newSyntaxError("parsing iteration count: " + err.Error())
			}
			r.row.Iters = n
		}
	}
	return nil
}

// atoi parses a non-negative integer field. Blank fields parse as 0.
// Values recorded by other tools sometimes carry a trailing ".0";
// accept any float with an integral value.
func atoi(f string) (int, error) {
	if f == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(f); err == nil {
		if n < 0 {
			return 0, errors.New("negative value")
		}
		return n, nil
	}
	v, err := strconv.ParseFloat(f, 64)
	if err != nil || v < 0 || v != float64(int(v)) {
		return 0, fmt.Errorf("%q is not a non-negative integer", f)
	}
	return int(v), nil
}

// unwrapNum strips the strconv function name from a *strconv.NumError
// so syntax errors read uniformly.
func unwrapNum(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return fmt.Errorf("%q: %w", ne.Num, ne.Err)
	}
	return err
}

// Result returns the record that was just read by Scan. This is
// either a *Row or a *SyntaxError indicating a parse error.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
//
// If this returns a *Row, the caller should not retain the Row, as it
// will be overwritten by the next call to Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noRow
	}
	return r.rec
}

// Err returns the first I/O or header error that was encountered by
// the Reader.
func (r *Reader) Err() error {
	return r.err
}
