// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchviz turns pathfinding benchmark CSV files into comparison
// charts and reports.
//
// Usage:
//
//	benchviz [options] [results.csv ...]
//
// Each input file is a CSV table with the columns Implementation,
// Graph_Size, Processes, Time_ms and Iterations. With no arguments,
// benchviz reads benchmark_results.csv in the current directory. The
// file name "-" means standard input.
//
// Benchviz prints a verification dump of the measured data and the
// derived speedup, overhead and efficiency tables to standard output,
// then writes the combined comparison figure to performance_analysis.png.
// Malformed rows are reported to standard error and skipped.
//
// The -o option names the output figure; an empty name skips it.
// The -png and -svg options additionally write each panel as an
// individual chart file into the given directory. The -html option
// writes the report tables as a standalone HTML page.
//
// Execution time and overhead panels use a logarithmic Y axis, like
// the ratios they display; -linear-time and -linear-overhead switch
// them to linear axes. The -dpi option sets the output resolution.
//
// The -store option archives the parsed rows in a SQL database given
// as driver:datasourcename, for example
//
//	benchviz -store sqlite3:benchmarks.db -label nightly results.csv
//
// The sqlite3 and mysql drivers are supported.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/Architbh007/vm/benchchart"
	"github.com/Architbh007/vm/benchcsv"
	"github.com/Architbh007/vm/benchmetric"
	"github.com/Architbh007/vm/benchreport"
	"github.com/Architbh007/vm/benchstore"
	_ "github.com/Architbh007/vm/benchstore/sqlite3"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: benchviz [options] [results.csv ...]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	os.Exit(2)
}

var (
	flagOutput         = flag.String("o", "performance_analysis.png", "write the combined figure to `file`; empty to skip")
	flagPNGDir         = flag.String("png", "", "write each panel as a PNG into `dir`")
	flagSVGDir         = flag.String("svg", "", "write each panel as an SVG into `dir`")
	flagHTML           = flag.String("html", "", "write the report tables as HTML to `file`")
	flagLinearTime     = flag.Bool("linear-time", false, "plot execution time on a linear axis")
	flagLinearOverhead = flag.Bool("linear-overhead", false, "plot overhead on a linear axis")
	flagDPI            = flag.Int("dpi", 300, "render PNG output at `resolution` dots per inch")
	flagStore          = flag.String("store", "", "archive the rows in the `driver:dsn` database")
	flagLabel          = flag.String("label", "", "describe the archived run as `s`")
)

func main() {
	log.SetPrefix("benchviz: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if *flagDPI <= 0 {
		flag.Usage()
	}

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"benchmark_results.csv"}
	}
	if err := benchviz(os.Stdout, os.Stderr, paths); err != nil {
		log.Fatal(err)
	}
}

// benchviz reads the CSV files in paths and writes the report and
// chart outputs selected by the flags. The verification dump goes to
// stdout; warnings and progress messages go to stderr.
func benchviz(stdout, stderr io.Writer, paths []string) error {
	c := new(benchmetric.Collection)
	var rows []benchcsv.Row
	files := benchcsv.Files{Paths: paths, AllowStdin: true, AllowLabels: true}
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *benchcsv.Row:
			rows = append(rows, *rec.Clone())
			c.AddRow(rec)
		case *benchcsv.SyntaxError:
			// Non-fatal result parse error. Warn and keep going.
			fmt.Fprintf(stderr, "benchviz: %v\n", rec)
		}
	}
	if err := files.Err(); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no benchmark results found")
	}
	for _, w := range c.Warnings() {
		fmt.Fprintf(stderr, "benchviz: %v\n", w)
	}

	var buf bytes.Buffer
	benchreport.FormatText(&buf, c)
	stdout.Write(buf.Bytes())

	opt := &benchchart.Options{
		LinearTime:     *flagLinearTime,
		LinearOverhead: *flagLinearOverhead,
		DPI:            *flagDPI,
	}
	if *flagOutput != "" {
		if err := benchchart.SaveFigure(*flagOutput, c, opt); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "benchviz: wrote %s\n", *flagOutput)
	}
	if *flagPNGDir != "" || *flagSVGDir != "" {
		if err := benchchart.RenderDirs(c, opt, *flagPNGDir, *flagSVGDir); err != nil {
			return err
		}
	}
	if *flagHTML != "" {
		var hbuf bytes.Buffer
		benchreport.FormatHTML(&hbuf, c)
		if err := os.WriteFile(*flagHTML, hbuf.Bytes(), 0666); err != nil {
			return err
		}
	}
	if *flagStore != "" {
		if err := store(stderr, *flagStore, *flagLabel, rows); err != nil {
			return err
		}
	}
	return nil
}

// store archives rows in the database named by spec, which has the
// form driver:datasourcename.
func store(stderr io.Writer, spec, label string, rows []benchcsv.Row) error {
	driver, dsn, ok := strings.Cut(spec, ":")
	if !ok || driver == "" || dsn == "" {
		return fmt.Errorf("-store %q: want driver:datasourcename", spec)
	}
	db, err := benchstore.OpenSQL(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	run, err := db.NewRun(ctx, label)
	if err != nil {
		return err
	}
	if err := run.InsertRows(ctx, rows); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "benchviz: archived %d rows as run %s\n", len(rows), run.ID)
	return nil
}
