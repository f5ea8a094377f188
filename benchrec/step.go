// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

// A Step names one stage of the measured workflow.
type Step string

// The workflow steps, in the order a session executes them.
const (
	StartSession    Step = "Start Session"
	ScanPackage     Step = "Scan Package"
	ValidatePackage Step = "Validate Package"
	QualityCheck    Step = "Quality Check"
	LabelPackage    Step = "Label Package"
	CommitSession   Step = "Commit Session"
)

// Rollup is the synthetic step the latency driver writes for the
// end-to-end time of a whole workflow. It is the sum of the other
// steps and never takes part in per-step aggregation.
const Rollup Step = "Complete Workflow"

// Steps is the canonical step order. All per-step output is emitted
// in this order.
var Steps = []Step{
	StartSession,
	ScanPackage,
	ValidatePackage,
	QualityCheck,
	LabelPackage,
	CommitSession,
}

// Index returns the position of s in Steps, or -1 if s is not a
// canonical step.
func (s Step) Index() int {
	for i, c := range Steps {
		if c == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the canonical steps.
func (s Step) Valid() bool {
	return s.Index() >= 0
}

func (s Step) String() string {
	return string(s)
}
