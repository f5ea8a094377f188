// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchagg"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

// StepBoxes renders the latency distribution of each workflow step
// as a box plot, in canonical step order, and writes it to path.
// Steps with no samples and rollup rows are omitted.
func StepBoxes(recs []benchrec.LatencyRecord, title, path string, o Options) error {
	samples := make(map[benchrec.Step]plotter.Values)
	for _, r := range recs {
		if r.Step.Valid() {
			samples[r.Step] = append(samples[r.Step], r.LatencyMs)
		}
	}
	if len(samples) == 0 {
		return fmt.Errorf("step chart: %w", benchagg.ErrEmptyInput)
	}

	if title == "" {
		title = "Latency by Step"
	}
	p := newPlot(title, "Step", "Latency (ms)")
	var names []string
	for _, step := range benchrec.Steps {
		vals, ok := samples[step]
		if !ok {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(len(names)), vals)
		if err != nil {
			return fmt.Errorf("step chart: %s: %w", step, err)
		}
		box.FillColor = boxFil
		p.Add(box)
		names = append(names, string(step))
	}
	p.NominalX(names...)
	rotateX(p)
	return save(p, path, o)
}
