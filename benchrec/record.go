// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchrec reads the result files written by the workload
// driver into typed records.
//
// There are two kinds of result file. A throughput file holds one row
// per benchmark run at a given worker count, with columns
//
//	Workers, L1_Nodes, L2_Nodes, Total_Requests, TPS,
//	Avg_Latency_ms, Min_Latency_ms, Max_Latency_ms, Successful
//
// and optionally Duration_s and Failed. A latency file holds one row
// per measured workflow step, with columns Step and Latency_ms and
// optionally Iteration and BlockHeight. Latency files do not record
// their node configuration in the table; it is taken from the file
// name, which must contain an "l1-N" token.
//
// Column order does not matter; columns are matched by header name.
package benchrec

// A Kind identifies the schema of a result file.
type Kind int

const (
	KindUnknown Kind = iota
	KindThroughput
	KindLatency
)

func (k Kind) String() string {
	switch k {
	case KindThroughput:
		return "throughput"
	case KindLatency:
		return "latency"
	}
	return "unknown"
}

// A ThroughputRecord is one benchmark run at a fixed worker count.
//
// Successful <= TotalRequests and MinLatencyMs <= AvgLatencyMs <=
// MaxLatencyMs hold for every record returned by a Reader.
type ThroughputRecord struct {
	// RunID identifies the run: the source file label and the
	// record's line in it.
	RunID string

	Workers  int
	L1Nodes  int
	L2Nodes  int
	Duration int // seconds; 0 if the file has no Duration_s column

	TotalRequests int
	Successful    int
	Failed        int // -1 if the file has no Failed column

	TPS          float64
	AvgLatencyMs float64
	MinLatencyMs float64
	MaxLatencyMs float64
}

// A LatencyRecord is one measured step of one workflow run.
type LatencyRecord struct {
	Step      Step
	LatencyMs float64

	// L1Nodes and L2Nodes come from the file name. L2Nodes is -1
	// if the name has no l2 token.
	L1Nodes int
	L2Nodes int

	Iteration   int // 0 if absent
	BlockHeight int64
}
