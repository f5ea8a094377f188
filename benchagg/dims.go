// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"errors"
	"fmt"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

type (
	throughput = benchrec.ThroughputRecord
	latency    = benchrec.LatencyRecord
)

// Dimensions of throughput records.
var (
	ByWorkers = Dimension[throughput]{"Workers", func(r throughput) Value { return Int(r.Workers) }}
	ByL1Nodes = Dimension[throughput]{"L1_Nodes", func(r throughput) Value { return Int(r.L1Nodes) }}
	ByL2Nodes = Dimension[throughput]{"L2_Nodes", func(r throughput) Value { return Int(r.L2Nodes) }}
)

// Dimensions of latency records. A latency record's node counts come
// from its file name.
var (
	ByStep        = Dimension[latency]{"Step", func(r latency) Value { return StepValue(r.Step) }}
	ByLatencyL1   = Dimension[latency]{"L1_Nodes", func(r latency) Value { return Int(r.L1Nodes) }}
	ByLatencyL2   = Dimension[latency]{"L2_Nodes", func(r latency) Value { return Int(r.L2Nodes) }}
	LatencySample = Metric[latency]{"Latency_ms", func(r latency) (float64, error) { return r.LatencyMs, nil }}
)

// Metrics of throughput records.
var (
	TPS           = throughputMetric("TPS", func(r throughput) float64 { return r.TPS })
	AvgLatency    = throughputMetric("Avg_Latency_ms", func(r throughput) float64 { return r.AvgLatencyMs })
	MinLatency    = throughputMetric("Min_Latency_ms", func(r throughput) float64 { return r.MinLatencyMs })
	MaxLatency    = throughputMetric("Max_Latency_ms", func(r throughput) float64 { return r.MaxLatencyMs })
	TotalRequests = throughputMetric("Total_Requests", func(r throughput) float64 { return float64(r.TotalRequests) })
	Successful    = throughputMetric("Successful", func(r throughput) float64 { return float64(r.Successful) })
	SuccessRate   = Metric[throughput]{"Success_Rate_%", SuccessRateOf}
)

func throughputMetric(name string, f func(throughput) float64) Metric[throughput] {
	return Metric[throughput]{name, func(r throughput) (float64, error) { return f(r), nil }}
}

// ErrDivisionByZero is returned for a success rate of a run that
// issued no requests.
var ErrDivisionByZero = errors.New("division by zero")

// SuccessRateOf returns the percentage of r's requests that
// succeeded. It is in [0, 100] and is only defined when r issued at
// least one request.
func SuccessRateOf(r benchrec.ThroughputRecord) (float64, error) {
	if r.TotalRequests <= 0 {
		return 0, fmt.Errorf("success rate of %s: %w: total requests is %d", r.RunID, ErrDivisionByZero, r.TotalRequests)
	}
	return float64(r.Successful) / float64(r.TotalRequests) * 100, nil
}

// StepValue returns the Value of step s. Its rank is the step's
// canonical index, so Keys order steps canonically.
func StepValue(s benchrec.Step) Value {
	return Category(s.Index(), string(s))
}
