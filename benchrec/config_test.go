// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"errors"
	"testing"
)

func TestExtractInt(t *testing.T) {
	check := func(name string, want int) {
		t.Helper()
		got, err := ExtractInt(name, L1Token)
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		} else if got != want {
			t.Errorf("%s: got %d, want %d", name, got, want)
		}
	}
	check("latency_l1-4_run1.csv", 4)
	check("records/latency_2025-01-02_10-00-00_n100_l1-16_l2-2.csv", 16)
	check("l1-0.csv", 0)

	// The directory must not supply the token.
	_, err := ExtractInt("l1-3/latency_run1.csv", L1Token)
	if !errors.Is(err, ErrConfigTokenMissing) {
		t.Errorf("got %v, want ErrConfigTokenMissing", err)
	}
	_, err = ExtractInt("latency_run1.csv", L1Token)
	if !errors.Is(err, ErrConfigTokenMissing) {
		t.Errorf("got %v, want ErrConfigTokenMissing", err)
	}
	_, err = ExtractInt("latency_l1-99999999999999999999.csv", L1Token)
	if !errors.Is(err, ErrConfigTokenMissing) {
		t.Errorf("got %v, want ErrConfigTokenMissing on overflow", err)
	}
}
