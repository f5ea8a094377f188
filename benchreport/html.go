// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/google/safehtml/template"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchagg"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

// A Report is the content of an HTML report. Either table may be
// nil.
type Report struct {
	Title     string
	Summary   *benchagg.Summary
	Breakdown benchagg.Breakdown
	// Labels name the configurations of Breakdown.
	Labels []string
	// Charts are image paths, relative to the report, shown below
	// the tables.
	Charts []string
}

type htmlTable struct {
	Caption string
	Columns []string
	Rows    [][]string
}

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Tables}}
<table>
<caption>{{.Caption}}</caption>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}
{{range .Charts}}<p><img src="{{.}}" alt="{{.}}"></p>
{{end}}</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Parse(reportHTML))

// WriteHTML writes r as a self-contained HTML page.
func WriteHTML(w io.Writer, r *Report) error {
	if len(r.Labels) != len(r.Breakdown) {
		return fmt.Errorf("html report: %d labels for %d configurations", len(r.Labels), len(r.Breakdown))
	}
	title := r.Title
	if title == "" {
		title = "Benchmark Report"
	}
	var tables []htmlTable
	if r.Summary != nil {
		tables = append(tables, summaryTable(r.Summary))
	}
	if len(r.Breakdown) > 0 {
		tables = append(tables, breakdownTable(r.Breakdown, r.Labels))
	}
	return reportTmpl.Execute(w, struct {
		Title  string
		Tables []htmlTable
		Charts []string
	}{title, tables, r.Charts})
}

func fmtFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func summaryTable(s *benchagg.Summary) htmlTable {
	t := htmlTable{Caption: "Throughput summary"}
	t.Columns = append(append(t.Columns, s.Dims...),
		"Runs", "TPS", "TPS_StdDev", "Total_Requests", "Successful", "Avg_Latency_ms", "Success_Rate_%")
	for _, r := range s.Rows {
		var row []string
		for _, v := range r.Key.Values() {
			row = append(row, v.String())
		}
		row = append(row,
			strconv.Itoa(r.TPS.Count),
			fmtFloat(r.TPS.Mean, 2), fmtFloat(r.TPS.StdDev, 2),
			fmtFloat(r.TotalRequests, 1), fmtFloat(r.Successful, 1),
			fmtFloat(r.AvgLatencyMs, 2), fmtFloat(r.SuccessRate, 2))
		t.Rows = append(t.Rows, row)
	}
	return t
}

func breakdownTable(b benchagg.Breakdown, labels []string) htmlTable {
	t := htmlTable{Caption: "Latency breakdown (ms)", Columns: []string{"Config"}}
	for _, step := range benchrec.Steps {
		t.Columns = append(t.Columns, string(step))
	}
	t.Columns = append(t.Columns, "Total")
	for i, s := range b {
		row := []string{labels[i]}
		for _, seg := range s.Segments {
			row = append(row, fmtFloat(seg.Value, 2))
		}
		row = append(row, fmtFloat(s.Total(), 2))
		t.Rows = append(t.Rows, row)
	}
	return t
}
