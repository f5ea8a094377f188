// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

var summaryDims = []Dimension[benchrec.ThroughputRecord]{ByL1Nodes, ByL2Nodes, ByWorkers}

func testSummary(t *testing.T) *Summary {
	t.Helper()
	recs := []benchrec.ThroughputRecord{
		{Workers: 20, L1Nodes: 4, L2Nodes: 2, TotalRequests: 200, Successful: 190, TPS: 6.5, AvgLatencyMs: 30, MaxLatencyMs: 90},
		{Workers: 10, L1Nodes: 4, L2Nodes: 2, TotalRequests: 100, Successful: 100, TPS: 3.25, AvgLatencyMs: 20, MaxLatencyMs: 40},
		{Workers: 10, L1Nodes: 4, L2Nodes: 2, TotalRequests: 300, Successful: 200, TPS: 10.1, AvgLatencyMs: 25, MaxLatencyMs: 40},
		{Workers: 10, L1Nodes: 8, L2Nodes: 2, TotalRequests: 0, Successful: 0},
	}
	s, err := BuildSummary(recs, summaryDims)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBuildSummary(t *testing.T) {
	s := testSummary(t)
	if !reflect.DeepEqual(s.Dims, []string{"L1_Nodes", "L2_Nodes", "Workers"}) {
		t.Errorf("dims = %v", s.Dims)
	}
	var keys []string
	for _, r := range s.Rows {
		keys = append(keys, r.Key.String())
	}
	if want := []string{"4 2 10", "4 2 20", "8 2 10"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}

	r := s.Rows[0]
	if r.TPS.Count != 2 || r.TotalRequests != 200 || r.Successful != 150 || r.AvgLatencyMs != 22.5 || r.SuccessRate != 75 {
		t.Errorf("4 2 10: got %+v", r)
	}
	if !math.IsNaN(s.Rows[2].SuccessRate) || s.Undefined() != 1 {
		t.Errorf("8 2 10: success rate %v, want NaN", s.Rows[2].SuccessRate)
	}
	for _, r := range s.Rows {
		if !math.IsNaN(r.SuccessRate) && (r.SuccessRate < 0 || r.SuccessRate > 100) {
			t.Errorf("%s: success rate %v out of range", r.Key, r.SuccessRate)
		}
	}
}

func TestSummaryCSVRoundTrip(t *testing.T) {
	s := testSummary(t)
	var buf bytes.Buffer
	if err := s.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	wantHeader := "L1_Nodes,L2_Nodes,Workers,Count,TPS,TPS_StdDev,TPS_Min,TPS_Max,TPS_Median,Total_Requests,Successful,Avg_Latency_ms,Success_Rate_%\n"
	if !strings.HasPrefix(buf.String(), wantHeader) {
		t.Errorf("header:\n%s", buf.String())
	}
	if !strings.HasSuffix(buf.String(), ",0,0,0,\n") {
		t.Errorf("undefined success rate not written empty:\n%s", buf.String())
	}

	got, err := ReadSummaryCSV(&buf, "summary.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Dims, s.Dims) || len(got.Rows) != len(s.Rows) {
		t.Fatalf("got %+v, want %+v", got, s)
	}
	for i := range s.Rows {
		w, g := s.Rows[i], got.Rows[i]
		if math.IsNaN(w.SuccessRate) != math.IsNaN(g.SuccessRate) {
			t.Errorf("row %d success rate: got %v, want %v", i, g.SuccessRate, w.SuccessRate)
		}
		w.SuccessRate, g.SuccessRate = 0, 0
		if w != g {
			t.Errorf("row %d: got %+v, want %+v", i, g, w)
		}
	}
}

// Regrouping a summary by its own dimensions must leave it unchanged.
func TestSummaryRegroup(t *testing.T) {
	s := testSummary(t)
	var by []Dimension[SummaryRow]
	for i, name := range s.Dims {
		i := i
		by = append(by, Dimension[SummaryRow]{name, func(r SummaryRow) Value { return r.Key.At(i) }})
	}
	mean := Metric[SummaryRow]{"TPS", func(r SummaryRow) (float64, error) { return r.TPS.Mean, nil }}
	g, err := Aggregate(s.Rows, by, mean)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Stats) != len(s.Rows) {
		t.Fatalf("got %d groups from %d rows", len(g.Stats), len(s.Rows))
	}
	for _, r := range s.Rows {
		st := g.Stats[r.Key]
		if st.Count != 1 || st.Mean != r.TPS.Mean || st.StdDev != 0 {
			t.Errorf("%s: regrouped %v, want mean %v", r.Key, st, r.TPS.Mean)
		}
	}
}

func TestReadSummaryCSVErrors(t *testing.T) {
	check := func(in string) {
		t.Helper()
		_, err := ReadSummaryCSV(strings.NewReader(in), "s.csv")
		if !errors.Is(err, benchrec.ErrSchemaMismatch) {
			t.Errorf("%q: got %v, want ErrSchemaMismatch", in, err)
		}
	}
	check("")
	check("Workers,TPS\n1,2\n")
	check("Workers,Count,TPS,TPS_StdDev,TPS_Min,TPS_Max,TPS_Median,Total_Requests,Successful,Avg_Latency_ms,Success_Rate_%\nx,1,1,0,1,1,1,1,1,1,100\n")
	check("Workers,Count,TPS,TPS_StdDev,TPS_Min,TPS_Max,TPS_Median,Total_Requests,Successful,Avg_Latency_ms,Success_Rate_%\n1,0,1,0,1,1,1,1,1,1,100\n")
}
