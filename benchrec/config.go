// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"path/filepath"
	"regexp"
	"strconv"
)

// Tokens that encode a run's tier node counts in a result file name,
// for example "latency_2025-01-02_10-00-00_n100_l1-4_l2-2.csv".
// The first submatch is the count.
var (
	L1Token = regexp.MustCompile(`l1-(\d+)`)
	L2Token = regexp.MustCompile(`l2-(\d+)`)
)

// ExtractInt applies token to the base name of filename and returns
// the integer in its first submatch.
//
// If token does not match, ExtractInt returns an error wrapping
// ErrConfigTokenMissing. There is no default: a file grouped under the
// wrong configuration would corrupt every aggregate built from it.
func ExtractInt(filename string, token *regexp.Regexp) (int, error) {
	m := token.FindStringSubmatch(filepath.Base(filename))
	if m == nil || len(m) < 2 {
		return 0, newError(ErrConfigTokenMissing, filename, 0, "no match for %s", token)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Only possible on overflow.
		return 0, newError(ErrConfigTokenMissing, filename, 0, "bad count in %q: %v", m[0], err)
	}
	return n, nil
}
