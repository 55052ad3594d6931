// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchstore archives pathfinding benchmark results in a SQL
// database so runs can be compared later.
package benchstore

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Architbh007/vm/benchcsv"
)

// DB is a high-level interface to a results database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql    *sql.DB // underlying database connection
	driver string
	// prepared statements
	insertRun    *sql.Stmt
	insertResult *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db, driver: driverName}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Uploaded VARCHAR(64),
	Label VARCHAR(255)
);
CREATE TABLE IF NOT EXISTS Results (
	RunID BIGINT UNSIGNED,
	Implementation VARCHAR(64),
	GraphSize BIGINT,
	Processes INT,
	TimeMS DOUBLE,
	Iterations INT,
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS ResultsRun ON Results(RunID);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Uploaded, Label) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertResult, err = db.sql.Prepare("INSERT INTO Results(RunID, Implementation, GraphSize, Processes, TimeMS, Iterations) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// A Run is a collection of results that share a run ID.
type Run struct {
	// ID identifies the run in the public API. The underlying
	// table uses an integer key; the int64 is cached here to avoid
	// repeated calls to strconv.Atoi.
	ID string

	id int64
	db *DB
}

// NewRun creates a run for storing new results. label is an arbitrary
// description shown when listing runs; it may be empty.
func (db *DB) NewRun(ctx context.Context, label string) (*Run, error) {
	res, err := db.insertRun.ExecContext(ctx, time.Now().UTC().Format(time.RFC3339), label)
	if err != nil {
		return nil, err
	}
	i, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Run{
		ID: fmt.Sprint(i),
		id: i,
		db: db,
	}, nil
}

// InsertRows stores rows under the run in a single transaction.
func (r *Run) InsertRows(ctx context.Context, rows []benchcsv.Row) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, r.db.insertResult)
	for i := range rows {
		row := &rows[i]
		if _, err = stmt.ExecContext(ctx, r.id, string(row.Impl), row.GraphSize, row.Procs, row.TimeMS, row.Iters); err != nil {
			return err
		}
	}
	return nil
}

// A RunInfo describes a stored run.
type RunInfo struct {
	ID       string
	Uploaded time.Time
	Label    string
}

// Runs lists the stored runs, oldest first.
func (db *DB) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID, Uploaded, Label FROM Runs ORDER BY RunID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RunInfo
	for rows.Next() {
		var (
			id       int64
			uploaded string
			label    sql.NullString
		)
		if err := rows.Scan(&id, &uploaded, &label); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, uploaded)
		if err != nil {
			return nil, fmt.Errorf("run %d has a malformed upload time: %v", id, err)
		}
		out = append(out, RunInfo{ID: fmt.Sprint(id), Uploaded: t, Label: label.String})
	}
	return out, rows.Err()
}

// Rows returns the results stored under the given run ID, in insertion
// order.
func (db *DB) Rows(ctx context.Context, runID string) ([]benchcsv.Row, error) {
	q := "SELECT Implementation, GraphSize, Processes, TimeMS, Iterations FROM Results WHERE RunID = ?"
	if db.driver == "sqlite3" {
		// MySQL has no rowid.
		q += " ORDER BY rowid"
	}
	rows, err := db.sql.QueryContext(ctx, q, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []benchcsv.Row
	for rows.Next() {
		var (
			impl string
			row  benchcsv.Row
		)
		if err := rows.Scan(&impl, &row.GraphSize, &row.Procs, &row.TimeMS, &row.Iters); err != nil {
			return nil, err
		}
		row.Impl = benchcsv.Implementation(impl)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertResult.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
