// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.csv": "Implementation,Graph_Size,Time_ms\nSequential,10000,5\nSequential,20000,6\n",
		"b.csv": "Implementation,Graph_Size,Time_ms\nSequential,30000,7\n",
	})
	a, b := filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")

	check := func(f *Files, want ...string) {
		t.Helper()
		for f.Scan() {
			switch rec := f.Result(); rec := rec.(type) {
			case *Row:
				if len(want) == 0 {
					t.Fatalf("got row, want end of stream")
				}
				got := rec.File + " " + renderRow(rec)
				if got != want[0] {
					t.Errorf("got %q, want %q", got, want[0])
				}
				want = want[1:]
			default:
				t.Fatalf("unexpected record type %T", rec)
			}
		}

		err := f.Err()
		wantErr := ""
		if len(want) == 1 && strings.HasPrefix(want[0], "err ") {
			wantErr = want[0][len("err "):]
			want = want[1:]
		}
		if err == nil && wantErr != "" {
			t.Errorf("got success, want error %s", wantErr)
		} else if err != nil && wantErr == "" {
			t.Errorf("got error %s", err)
		} else if err != nil && !strings.Contains(err.Error(), wantErr) {
			t.Errorf("got error %s, want error %s", err, wantErr)
		}

		if len(want) != 0 {
			t.Errorf("got end of stream, want %v", want)
		}
	}

	check(
		&Files{Paths: []string{a, b}},
		a+" Sequential size=10000 procs=1 time=5 iters=0",
		a+" Sequential size=20000 procs=1 time=6 iters=0",
		b+" Sequential size=30000 procs=1 time=7 iters=0",
	)

	// Missing files stop the scan with the open error.
	check(
		&Files{Paths: []string{a, filepath.Join(dir, "missing.csv")}},
		a+" Sequential size=10000 procs=1 time=5 iters=0",
		a+" Sequential size=20000 procs=1 time=6 iters=0",
		"err missing.csv",
	)

	// Ambiguous paths are disambiguated with #N.
	check(
		&Files{Paths: []string{a, a}},
		a+"#0 Sequential size=10000 procs=1 time=5 iters=0",
		a+"#0 Sequential size=20000 procs=1 time=6 iters=0",
		a+"#1 Sequential size=10000 procs=1 time=5 iters=0",
		a+"#1 Sequential size=20000 procs=1 time=6 iters=0",
	)

	// Custom labels override the path.
	check(
		&Files{Paths: []string{"run1=" + a, "run2=" + b}, AllowLabels: true},
		"run1 Sequential size=10000 procs=1 time=5 iters=0",
		"run1 Sequential size=20000 procs=1 time=6 iters=0",
		"run2 Sequential size=30000 procs=1 time=7 iters=0",
	)
}
