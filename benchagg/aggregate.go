// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchagg groups benchmark records by configuration and
// summarizes each group.
//
// A grouping is described by an ordered list of Dimensions, each of
// which extracts one Value from a record, and a Metric, which extracts
// the measurement to summarize. Aggregate partitions the records by
// the Key formed from their dimension values and computes Stats for
// each partition. Partitions are independent, and the result does not
// depend on the order of the input records.
//
// On top of Aggregate, BuildBreakdown lays per-step means out as
// stacked series in canonical step order, and BuildSummary produces
// the flat per-configuration table exported as CSV.
package benchagg

import "fmt"

// A Dimension extracts one grouping value from a record of type R.
type Dimension[R any] struct {
	Name  string
	Value func(R) Value
}

// A Metric extracts the value to aggregate from a record of type R.
//
// Value may return an error for records on which the metric is not
// defined. Such records are left out of the aggregate and counted in
// Groups.Excluded.
type Metric[R any] struct {
	Name  string
	Value func(R) (float64, error)
}

// Groups is the result of an aggregation.
type Groups struct {
	// Dims are the names of the grouping dimensions, in Key order.
	Dims []string

	// Metric is the name of the aggregated metric.
	Metric string

	// Stats maps each group's Key to its statistics. Every group
	// has at least one sample.
	Stats map[Key]Stats

	// Excluded is the number of records for which the metric was
	// not defined, and ExcludedErr is the first such error.
	Excluded    int
	ExcludedErr error
}

// Aggregate groups records by the dimensions in by and computes the
// Stats of metric m in each group.
//
// Aggregate returns an error wrapping ErrEmptyInput if records is
// empty or if m is undefined for every record.
func Aggregate[R any](records []R, by []Dimension[R], m Metric[R]) (*Groups, error) {
	if len(by) > MaxDims {
		panic(fmt.Sprintf("cannot group by %d dimensions, at most %d allowed", len(by), MaxDims))
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("aggregate %s: %w", m.Name, ErrEmptyInput)
	}

	g := &Groups{Metric: m.Name, Stats: make(map[Key]Stats)}
	for _, d := range by {
		g.Dims = append(g.Dims, d.Name)
	}

	samples := make(map[Key][]float64)
	var vals [MaxDims]Value
	for _, rec := range records {
		x, err := m.Value(rec)
		if err != nil {
			if g.Excluded == 0 {
				g.ExcludedErr = err
			}
			g.Excluded++
			continue
		}
		for i, d := range by {
			vals[i] = d.Value(rec)
		}
		k := NewKey(vals[:len(by)]...)
		samples[k] = append(samples[k], x)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("aggregate %s: %w (%d records excluded: %v)", m.Name, ErrEmptyInput, g.Excluded, g.ExcludedErr)
	}

	for k, xs := range samples {
		st, err := NewStats(xs)
		if err != nil {
			// Every partition has at least one sample.
			panic(err)
		}
		g.Stats[k] = st
	}
	return g, nil
}

// Keys returns the keys of g in ascending order.
func (g *Groups) Keys() []Key {
	keys := make([]Key, 0, len(g.Stats))
	for k := range g.Stats {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Get returns the Stats of the group with key k.
func (g *Groups) Get(k Key) (Stats, bool) {
	st, ok := g.Stats[k]
	return st, ok
}
