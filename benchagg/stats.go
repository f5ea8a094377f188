// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// ErrEmptyInput is returned when there is nothing to aggregate.
var ErrEmptyInput = errors.New("empty input")

// Stats summarizes a non-empty sample of measurements.
//
// Min <= Mean <= Max always holds. StdDev is the sample standard
// deviation (dividing by n-1), or 0 when Count is 1.
type Stats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// NewStats computes the Stats of xs. It does not modify xs.
//
// The values are sorted before summing, so the result does not depend
// on the order of xs.
func NewStats(xs []float64) (Stats, error) {
	if len(xs) == 0 {
		return Stats{}, ErrEmptyInput
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	s := stats.Sample{Xs: sorted, Sorted: true}

	st := Stats{Count: len(sorted)}
	st.Min, st.Max = s.Bounds()
	st.Mean = s.Mean()
	st.Median = s.Quantile(0.5)
	if st.Count > 1 {
		st.StdDev = s.StdDev()
	}
	// Rounding in the sum can push the mean of a near-constant
	// sample just outside its bounds.
	if st.Mean < st.Min {
		st.Mean = st.Min
	} else if st.Mean > st.Max {
		st.Mean = st.Max
	}
	return st, nil
}

func (s Stats) String() string {
	return fmt.Sprintf("n=%d mean=%.3f sd=%.3f min=%.3f max=%.3f", s.Count, s.Mean, s.StdDev, s.Min, s.Max)
}
