// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

// A Cell addresses the value of one step in one configuration.
type Cell struct {
	Config Key
	Step   benchrec.Step
}

// A Segment is one step's share of a Stack.
type Segment struct {
	Step  benchrec.Step
	Value float64
}

// A Stack is the per-step breakdown of one configuration. Segments
// holds one entry for every step in benchrec.Steps, in that order.
type Stack struct {
	Config   Key
	Segments []Segment
}

// Total returns the sum of s's segment values. It is always derived
// from the segments, never stored separately, so a Stack's total
// matches its parts exactly.
func (s Stack) Total() float64 {
	total := 0.0
	for _, seg := range s.Segments {
		total += seg.Value
	}
	return total
}

// A Breakdown is a set of Stacks in ascending Config order.
type Breakdown []Stack

// BuildBreakdown lays per-configuration, per-step values out as
// stacked series.
//
// Every configuration that appears in values gets a Stack with all
// canonical steps; a step the configuration never exercised gets 0.
// Rollup cells are dropped. Any other non-canonical step is an error
// wrapping benchrec.ErrUnknownCategory.
func BuildBreakdown(values map[Cell]float64) (Breakdown, error) {
	configs := make(map[Key]bool)
	for c := range values {
		if c.Step == benchrec.Rollup {
			continue
		}
		if !c.Step.Valid() {
			return nil, fmt.Errorf("breakdown of %s: %w: step %q", c.Config, benchrec.ErrUnknownCategory, string(c.Step))
		}
		configs[c.Config] = true
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("breakdown: %w", ErrEmptyInput)
	}

	keys := make([]Key, 0, len(configs))
	for k := range configs {
		keys = append(keys, k)
	}
	SortKeys(keys)

	b := make(Breakdown, len(keys))
	for i, k := range keys {
		segs := make([]Segment, len(benchrec.Steps))
		for j, step := range benchrec.Steps {
			segs[j] = Segment{step, values[Cell{k, step}]}
		}
		b[i] = Stack{k, segs}
	}
	return b, nil
}

// StepMeans extracts the per-step means from g, which must be grouped
// by a step dimension at index step plus any configuration dimensions.
// The configuration Key of each Cell is the group Key without the step.
func StepMeans(g *Groups, step int) (map[Cell]float64, error) {
	out := make(map[Cell]float64, len(g.Stats))
	for k, st := range g.Stats {
		s := benchrec.Step(k.At(step).Str)
		if s != benchrec.Rollup && !s.Valid() {
			return nil, fmt.Errorf("%w: step %q", benchrec.ErrUnknownCategory, string(s))
		}
		out[Cell{k.Without(step), s}] = st.Mean
	}
	return out, nil
}

// Configs returns the configuration keys of b, in order.
func (b Breakdown) Configs() []Key {
	keys := make([]Key, len(b))
	for i, s := range b {
		keys[i] = s.Config
	}
	return keys
}

// Series returns the value of step i of every Stack, in Stack order.
// This is the i'th layer of a stacked bar chart.
func (b Breakdown) Series(i int) []float64 {
	vs := make([]float64, len(b))
	for j, s := range b {
		vs[j] = s.Segments[i].Value
	}
	return vs
}

// Totals returns the total of every Stack, in Stack order.
func (b Breakdown) Totals() []float64 {
	ts := make([]float64, len(b))
	for i, s := range b {
		ts[i] = s.Total()
	}
	return ts
}
