// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"math"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

// A SummaryRow summarizes the throughput runs of one configuration.
type SummaryRow struct {
	Key Key

	// TPS is the distribution of throughput across runs.
	TPS Stats

	// Means across runs.
	TotalRequests float64
	Successful    float64
	AvgLatencyMs  float64

	// SuccessRate is Successful/TotalRequests as a percentage, or
	// NaN if the configuration issued no requests.
	SuccessRate float64
}

// A Summary is a table of SummaryRows in ascending Key order.
type Summary struct {
	Dims []string
	Rows []SummaryRow
}

// BuildSummary groups throughput records by the dimensions in by and
// returns one row per group.
func BuildSummary(records []benchrec.ThroughputRecord, by []Dimension[benchrec.ThroughputRecord]) (*Summary, error) {
	metrics := []Metric[benchrec.ThroughputRecord]{TPS, TotalRequests, Successful, AvgLatency}
	groups := make([]*Groups, len(metrics))
	for i, m := range metrics {
		g, err := Aggregate(records, by, m)
		if err != nil {
			return nil, err
		}
		groups[i] = g
	}
	tps, total, ok, lat := groups[0], groups[1], groups[2], groups[3]

	s := &Summary{Dims: tps.Dims}
	for _, k := range tps.Keys() {
		row := SummaryRow{
			Key:           k,
			TPS:           tps.Stats[k],
			TotalRequests: total.Stats[k].Mean,
			Successful:    ok.Stats[k].Mean,
			AvgLatencyMs:  lat.Stats[k].Mean,
			SuccessRate:   math.NaN(),
		}
		if row.TotalRequests > 0 {
			row.SuccessRate = row.Successful / row.TotalRequests * 100
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

// Undefined returns the number of rows whose success rate is not
// defined.
func (s *Summary) Undefined() int {
	n := 0
	for _, r := range s.Rows {
		if math.IsNaN(r.SuccessRate) {
			n++
		}
	}
	return n
}
