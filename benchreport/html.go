// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"bytes"

	"github.com/google/safehtml/template"

	"github.com/Architbh007/vm/benchmetric"
)

var htmlTemplate = template.Must(template.New("report").ParseFromTrustedTemplate(template.MakeTrustedTemplate(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; font-variant-numeric: tabular-nums; }
th { background: #f0f0f0; text-align: left; }
td { text-align: right; }
td:first-child { text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Tables}}<h2>{{.Title}}</h2>
<table>
<tr>{{range .Header}}<th>{{.}}{{end}}
{{range .Rows}}<tr>{{range .}}<td>{{.}}{{end}}
{{end}}</table>
{{end}}</body>
</html>
`)))

type htmlReport struct {
	Title  string
	Tables []htmlTable
}

type htmlTable struct {
	Title  string
	Header []string
	Rows   [][]string
}

// FormatHTML appends a standalone HTML formatting of the report
// tables to buf.
func FormatHTML(buf *bytes.Buffer, c *benchmetric.Collection) {
	report := htmlReport{Title: "Distributed Pathfinding: Performance Analysis"}
	for _, t := range tables(c) {
		ht := htmlTable{Title: t.title, Header: t.rows[0].cols}
		for _, row := range t.rows[1:] {
			ht.Rows = append(ht.Rows, row.cols)
		}
		report.Tables = append(report.Tables, ht)
	}
	err := htmlTemplate.Execute(buf, report)
	if err != nil {
		// Only possible errors here are template not matching data structure.
		// Don't make caller check - it's our fault.
		panic(err)
	}
}
