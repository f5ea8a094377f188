// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

// summaryColumns follow the dimension columns in a summary CSV.
var summaryColumns = []string{
	"Count", "TPS", "TPS_StdDev", "TPS_Min", "TPS_Max", "TPS_Median",
	"Total_Requests", "Successful", "Avg_Latency_ms", "Success_Rate_%",
}

// WriteCSV writes s as CSV: a header row, then one row per SummaryRow.
// An undefined success rate is written as an empty cell. Floats are
// written in the shortest form that reads back exactly.
func (s *Summary) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Write(append(append([]string(nil), s.Dims...), summaryColumns...))
	for _, r := range s.Rows {
		rec := make([]string, 0, len(s.Dims)+len(summaryColumns))
		for _, v := range r.Key.Values() {
			rec = append(rec, v.String())
		}
		rec = append(rec,
			strconv.Itoa(r.TPS.Count),
			strof(r.TPS.Mean), strof(r.TPS.StdDev), strof(r.TPS.Min), strof(r.TPS.Max), strof(r.TPS.Median),
			strof(r.TotalRequests), strof(r.Successful), strof(r.AvgLatencyMs), strof(r.SuccessRate))
		cw.Write(rec)
	}
	cw.Flush()
	return cw.Error()
}

// ReadSummaryCSV reads a Summary written by WriteCSV. name is used in
// error messages.
func ReadSummaryCSV(r io.Reader, name string) (*Summary, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &benchrec.Error{Kind: benchrec.ErrSchemaMismatch, Path: name, Msg: err.Error()}
	}
	if len(rows) == 0 {
		return nil, &benchrec.Error{Kind: benchrec.ErrSchemaMismatch, Path: name, Msg: "empty file"}
	}
	header := rows[0]
	nd := len(header) - len(summaryColumns)
	if nd < 0 || nd > MaxDims || strings.Join(header[nd:], ",") != strings.Join(summaryColumns, ",") {
		return nil, &benchrec.Error{Kind: benchrec.ErrSchemaMismatch, Path: name, Line: 1, Msg: "not a summary table"}
	}

	s := &Summary{Dims: append([]string(nil), header[:nd]...)}
	for i, rec := range rows[1:] {
		bad := func(col string) error {
			return &benchrec.Error{Kind: benchrec.ErrSchemaMismatch, Path: name, Line: i + 2, Msg: "bad " + col}
		}
		vals := make([]Value, nd)
		for j := range vals {
			n, err := strconv.Atoi(rec[j])
			if err != nil {
				return nil, bad(header[j])
			}
			vals[j] = Int(n)
		}
		fs := make([]float64, len(summaryColumns))
		for j, col := range summaryColumns {
			cell := rec[nd+j]
			if cell == "" {
				fs[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, bad(col)
			}
			fs[j] = v
		}
		if math.IsNaN(fs[0]) || fs[0] < 1 {
			return nil, bad("Count")
		}
		s.Rows = append(s.Rows, SummaryRow{
			Key:           NewKey(vals...),
			TPS:           Stats{Count: int(fs[0]), Mean: fs[1], StdDev: fs[2], Min: fs[3], Max: fs[4], Median: fs[5]},
			TotalRequests: fs[6],
			Successful:    fs[7],
			AvgLatencyMs:  fs[8],
			SuccessRate:   fs[9],
		})
	}
	return s, nil
}

func strof(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
