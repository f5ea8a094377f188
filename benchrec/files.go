// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// A Source locates result files.
type Source struct {
	// Dir is the directory searched for result files.
	Dir string

	// Pattern is a filepath.Match pattern applied to the names of
	// the entries of Dir, such as "latency_*.csv".
	Pattern string

	// Path, if non-empty, names a single result file explicitly.
	// Dir and Pattern are then ignored.
	Path string
}

// Resolve returns the result files named by s in ascending
// lexicographic order.
//
// If s.Path is set, Resolve checks that it exists and returns it
// alone, or an error wrapping ErrFileNotFound. Otherwise it returns
// every regular file in s.Dir whose name matches s.Pattern, or an
// error wrapping ErrNoResults if there are none.
func (s Source) Resolve() ([]string, error) {
	if s.Path != "" {
		info, err := os.Stat(s.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, newError(ErrFileNotFound, s.Path, 0, "")
			}
			return nil, err
		}
		if info.IsDir() {
			return nil, newError(ErrFileNotFound, s.Path, 0, "is a directory")
		}
		return []string{s.Path}, nil
	}

	if _, err := filepath.Match(s.Pattern, ""); err != nil {
		return nil, newError(ErrNoResults, s.Dir, 0, "bad pattern %q: %v", s.Pattern, err)
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrNoResults, s.Dir, 0, "no such directory")
		}
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(s.Pattern, e.Name()); ok {
			paths = append(paths, filepath.Join(s.Dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, newError(ErrNoResults, s.Dir, 0, "nothing matches %q", s.Pattern)
	}
	// ReadDir already sorts by name, but don't depend on it.
	sort.Strings(paths)
	return paths, nil
}

// Latest returns the last file in s.Resolve order.
//
// This treats lexical order as recency, which holds only because the
// driver puts a sortable timestamp right after the file prefix. It
// does not consult modification times.
func (s Source) Latest() (string, error) {
	paths, err := s.Resolve()
	if err != nil {
		return "", err
	}
	return paths[len(paths)-1], nil
}

// String returns s.Path if set, and otherwise s.Pattern joined to
// s.Dir.
func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return filepath.Join(s.Dir, s.Pattern)
}
