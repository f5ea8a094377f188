// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
)

func latencyBreakdown(t *testing.T, recs []benchrec.LatencyRecord) Breakdown {
	t.Helper()
	g, err := Aggregate(recs, []Dimension[benchrec.LatencyRecord]{ByLatencyL1, ByStep}, LatencySample)
	if err != nil {
		t.Fatal(err)
	}
	means, err := StepMeans(g, 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildBreakdown(means)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestBreakdownMissingStep(t *testing.T) {
	var recs []benchrec.LatencyRecord
	add := func(l1 int, step benchrec.Step, ms ...float64) {
		for _, x := range ms {
			recs = append(recs, benchrec.LatencyRecord{Step: step, LatencyMs: x, L1Nodes: l1})
		}
	}
	for i, s := range benchrec.Steps {
		add(4, s, float64(10*(i+1)), float64(10*(i+1)+2))
		if s != benchrec.QualityCheck {
			add(8, s, float64(i+1))
		}
	}

	b := latencyBreakdown(t, recs)
	if len(b) != 2 || b[0].Config != IntKey(4) || b[1].Config != IntKey(8) {
		t.Fatalf("got configs %v, want [4 8]", b.Configs())
	}
	for _, s := range b {
		if len(s.Segments) != len(benchrec.Steps) {
			t.Fatalf("%s: got %d segments", s.Config, len(s.Segments))
		}
		for i, seg := range s.Segments {
			if seg.Step != benchrec.Steps[i] {
				t.Errorf("%s: segment %d is %s, want %s", s.Config, i, seg.Step, benchrec.Steps[i])
			}
		}
	}

	qc := benchrec.QualityCheck.Index()
	if got := b[1].Segments[qc]; got.Value != 0 {
		t.Errorf("8: missing Quality Check = %v, want 0", got.Value)
	}
	// 1+2+3+5+6, with Quality Check contributing nothing.
	if got := b[1].Total(); got != 17 {
		t.Errorf("8: total = %v, want 17", got)
	}
	// Means 11, 21, ..., 61.
	if got := b[0].Total(); got != 11+21+31+41+51+61 {
		t.Errorf("4: total = %v, want 216", got)
	}
	if got := b.Series(qc); got[0] != 41 || got[1] != 0 {
		t.Errorf("Quality Check series = %v, want [41 0]", got)
	}
}

func TestBreakdownTotals(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	values := map[Cell]float64{}
	for l1 := 1; l1 <= 16; l1 *= 2 {
		for _, s := range benchrec.Steps {
			if r.Intn(4) == 0 {
				continue
			}
			values[Cell{IntKey(l1), s}] = r.Float64() * 1000
		}
	}
	b, err := BuildBreakdown(values)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range b {
		sum := 0.0
		for _, step := range benchrec.Steps {
			sum += values[Cell{s.Config, step}]
		}
		if tot := b.Totals()[i]; math.Abs(tot-sum) > 1e-9*math.Abs(sum) {
			t.Errorf("%s: total %v, sum of means %v", s.Config, tot, sum)
		}
	}
}

func TestBreakdownRollup(t *testing.T) {
	recs := []benchrec.LatencyRecord{
		{Step: benchrec.StartSession, LatencyMs: 10, L1Nodes: 4},
		{Step: benchrec.Rollup, LatencyMs: 999, L1Nodes: 4},
	}
	b := latencyBreakdown(t, recs)
	for _, seg := range b[0].Segments {
		if seg.Step == benchrec.Rollup {
			t.Fatalf("rollup step in breakdown")
		}
	}
	if got := b[0].Total(); got != 10 {
		t.Errorf("total = %v, want 10", got)
	}
}

func TestBreakdownErrors(t *testing.T) {
	_, err := BuildBreakdown(map[Cell]float64{{IntKey(4), "Deploy"}: 1})
	if !errors.Is(err, benchrec.ErrUnknownCategory) {
		t.Errorf("got %v, want ErrUnknownCategory", err)
	}
	_, err = BuildBreakdown(map[Cell]float64{{IntKey(4), benchrec.Rollup}: 1})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}
