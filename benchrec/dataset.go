// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

// A Dataset merges the records of several result files.
type Dataset struct {
	// Files are the files read, in the order given to Load.
	Files []*File

	Throughput []ThroughputRecord
	Latency    []LatencyRecord
}

// Load reads every file in paths and merges their records.
//
// If want is not KindUnknown, every file must be of that kind. The
// first error aborts the load; a Dataset is never partially built.
func Load(paths []string, want Kind) (*Dataset, error) {
	d := new(Dataset)
	for _, path := range paths {
		f, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		if want != KindUnknown && f.Kind != want {
			return nil, newError(ErrSchemaMismatch, path, 1, "%s file, want %s", f.Kind, want)
		}
		d.Add(f)
	}
	return d, nil
}

// Add merges the records of f into d.
func (d *Dataset) Add(f *File) {
	d.Files = append(d.Files, f)
	d.Throughput = append(d.Throughput, f.Throughput...)
	d.Latency = append(d.Latency, f.Latency...)
}

// Discarded returns the total number of invalid rows dropped across
// all files.
func (d *Dataset) Discarded() int {
	n := 0
	for _, f := range d.Files {
		n += f.Discarded
	}
	return n
}
