// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchreport formats aggregated benchmark results as console
// tables and as an HTML report.
package benchreport

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchagg"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

// keyColumns adds one column per dimension of keys to b. A dimension
// whose values are all plain integers becomes an int column so it is
// right aligned.
func keyColumns(b *table.Builder, dims []string, keys []benchagg.Key) {
	for d, name := range dims {
		ints := make([]int, len(keys))
		strs := make([]string, len(keys))
		numeric := true
		for i, k := range keys {
			v := k.At(d)
			ints[i], strs[i] = v.Num, v.String()
			if v.Str != "" {
				numeric = false
			}
		}
		if numeric {
			b.Add(name, ints)
		} else {
			b.Add(name, strs)
		}
	}
}

// formats returns n "%v" formats followed by rest.
func formats(n int, rest ...string) []string {
	fs := make([]string, 0, n+len(rest))
	for i := 0; i < n; i++ {
		fs = append(fs, "%v")
	}
	return append(fs, rest...)
}

// WriteSummary prints s as an aligned table, one row per
// configuration.
func WriteSummary(w io.Writer, s *benchagg.Summary) error {
	n := len(s.Rows)
	keys := make([]benchagg.Key, n)
	count := make([]int, n)
	tps, sd, total, ok, lat, rate := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, r := range s.Rows {
		keys[i] = r.Key
		count[i] = r.TPS.Count
		tps[i], sd[i] = r.TPS.Mean, r.TPS.StdDev
		total[i], ok[i] = r.TotalRequests, r.Successful
		lat[i], rate[i] = r.AvgLatencyMs, r.SuccessRate
	}

	var b table.Builder
	keyColumns(&b, s.Dims, keys)
	b.Add("Runs", count)
	b.Add("TPS", tps)
	b.Add("TPS_StdDev", sd)
	b.Add("Total_Requests", total)
	b.Add("Successful", ok)
	b.Add("Avg_Latency_ms", lat)
	b.Add("Success_Rate_%", rate)
	return table.Fprint(w, b.Done(), formats(len(s.Dims)+1, "%.2f", "%.2f", "%.1f", "%.1f", "%.2f", "%.2f")...)
}

// A stepRow is one line of the per-step latency table.
type stepRow struct {
	Step                           string
	Count                          int
	Mean, Median, StdDev, Min, Max float64
}

// WriteSteps prints the per-step statistics in g, which must be
// grouped by step alone, in canonical step order.
func WriteSteps(w io.Writer, g *benchagg.Groups) error {
	if len(g.Dims) != 1 {
		return fmt.Errorf("step table: grouped by %v, want step", g.Dims)
	}
	var rows []stepRow
	for _, k := range g.Keys() {
		st := g.Stats[k]
		rows = append(rows, stepRow{k.At(0).String(), st.Count, st.Mean, st.Median, st.StdDev, st.Min, st.Max})
	}
	if len(rows) == 0 {
		return fmt.Errorf("step table: %w", benchagg.ErrEmptyInput)
	}
	return table.Fprint(w, table.TableFromStructs(rows), "%v", "%v", "%.2f", "%.2f", "%.2f", "%.2f", "%.2f")
}

// WriteBreakdown prints b with one row per configuration, one column
// per step, and the derived total. labels name the configurations.
func WriteBreakdown(w io.Writer, b benchagg.Breakdown, labels []string) error {
	if len(labels) != len(b) {
		return fmt.Errorf("breakdown table: %d labels for %d configurations", len(labels), len(b))
	}
	var tb table.Builder
	tb.Add("Config", labels)
	fs := []string{"%v"}
	for i, step := range benchrec.Steps {
		tb.Add(string(step), b.Series(i))
		fs = append(fs, "%.2f")
	}
	tb.Add("Total", b.Totals())
	fs = append(fs, "%.2f")
	return table.Fprint(w, tb.Done(), fs...)
}
