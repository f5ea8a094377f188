// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Column names used by the workload driver.
const (
	ColWorkers       = "Workers"
	ColL1Nodes       = "L1_Nodes"
	ColL2Nodes       = "L2_Nodes"
	ColDuration      = "Duration_s"
	ColTotalRequests = "Total_Requests"
	ColSuccessful    = "Successful"
	ColFailed        = "Failed"
	ColTPS           = "TPS"
	ColAvgLatency    = "Avg_Latency_ms"
	ColMinLatency    = "Min_Latency_ms"
	ColMaxLatency    = "Max_Latency_ms"

	ColIteration   = "Iteration"
	ColStep        = "Step"
	ColLatency     = "Latency_ms"
	ColBlockHeight = "BlockHeight"
)

var throughputColumns = []string{
	ColWorkers, ColL1Nodes, ColL2Nodes, ColTotalRequests, ColTPS,
	ColAvgLatency, ColMinLatency, ColMaxLatency, ColSuccessful,
}

var latencyColumns = []string{ColStep, ColLatency}

// A File is the content of one result file.
type File struct {
	// Path is the file name as given to Read.
	Path string

	Kind Kind

	// Exactly one of Throughput and Latency is populated,
	// according to Kind.
	Throughput []ThroughputRecord
	Latency    []LatencyRecord

	// L1Nodes and L2Nodes are the node counts from the file name
	// of a latency file. L2Nodes is -1 if the name has no l2
	// token. Both are 0 for throughput files, which carry these
	// counts per row.
	L1Nodes, L2Nodes int

	// Rollups is the number of rollup rows dropped.
	Rollups int

	// Discarded is the number of rows dropped because a required
	// value was missing, not a number, or out of range.
	Discarded int
}

// Records returns the number of records read from f.
func (f *File) Records() int {
	return len(f.Throughput) + len(f.Latency)
}

// ReadFile opens and reads the result file at path.
func ReadFile(path string) (*File, error) {
	fp, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(ErrFileNotFound, path, 0, "")
		}
		return nil, err
	}
	defer fp.Close()
	return Read(fp, path)
}

// Read reads a result file from r. path names the file for error
// messages and, for latency files, supplies the node configuration.
//
// The file kind is inferred from the header row. A header that lacks
// a required column of its kind is an ErrSchemaMismatch. In a latency
// file, a Step that is neither canonical nor the rollup marker is an
// ErrUnknownCategory. Both abort the read. Rows with missing or
// invalid values are counted in File.Discarded and skipped.
func Read(r io.Reader, path string) (*File, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, newError(ErrSchemaMismatch, path, 0, "empty file")
	} else if err != nil {
		return nil, csvError(path, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	f := &File{Path: path, Kind: inferKind(cols)}
	switch f.Kind {
	case KindUnknown:
		return nil, newError(ErrSchemaMismatch, path, 1, "columns %q match neither throughput nor latency schema", strings.Join(header, ","))
	case KindLatency:
		if err := requireColumns(path, cols, latencyColumns); err != nil {
			return nil, err
		}
		if f.L1Nodes, err = ExtractInt(path, L1Token); err != nil {
			return nil, err
		}
		if f.L2Nodes, err = ExtractInt(path, L2Token); err != nil {
			f.L2Nodes = -1
		}
	case KindThroughput:
		if err := requireColumns(path, cols, throughputColumns); err != nil {
			return nil, err
		}
	}

	rr := rowReader{cols: cols}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(path, err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(row) {
			continue
		}
		rr.reset(row)

		switch f.Kind {
		case KindThroughput:
			rec := rr.throughput()
			if !rr.ok {
				f.Discarded++
				continue
			}
			rec.RunID = fmt.Sprintf("%s:%d", path, line)
			f.Throughput = append(f.Throughput, rec)

		case KindLatency:
			step := Step(strings.TrimSpace(rr.get(ColStep)))
			if step == Rollup {
				f.Rollups++
				continue
			}
			if step == "" {
				f.Discarded++
				continue
			}
			if !step.Valid() {
				return nil, newError(ErrUnknownCategory, path, line, "step %q", string(step))
			}
			rec := rr.latency()
			if !rr.ok {
				f.Discarded++
				continue
			}
			rec.Step = step
			rec.L1Nodes, rec.L2Nodes = f.L1Nodes, f.L2Nodes
			f.Latency = append(f.Latency, rec)
		}
	}
	return f, nil
}

func inferKind(cols map[string]int) Kind {
	has := func(name string) bool {
		_, ok := cols[name]
		return ok
	}
	if has(ColStep) || has(ColLatency) {
		return KindLatency
	}
	for _, c := range throughputColumns {
		if has(c) {
			return KindThroughput
		}
	}
	return KindUnknown
}

func requireColumns(path string, cols map[string]int, want []string) error {
	var missing []string
	for _, c := range want {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return newError(ErrSchemaMismatch, path, 1, "missing column %s", strings.Join(missing, ", "))
	}
	return nil
}

func csvError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return newError(ErrSchemaMismatch, path, pe.Line, "%v", pe.Err)
	}
	return fmt.Errorf("%s: %w", path, err)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// rowReader extracts typed values from one CSV row. The first missing
// or malformed required value clears ok; later calls keep returning
// zero values so a record can be built without checking every field.
type rowReader struct {
	cols map[string]int
	row  []string
	ok   bool
}

func (r *rowReader) reset(row []string) {
	r.row, r.ok = row, true
}

func (r *rowReader) has(col string) bool {
	_, ok := r.cols[col]
	return ok
}

func (r *rowReader) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

func (r *rowReader) count(col string) int {
	if !r.ok {
		return 0
	}
	v, err := strconv.Atoi(r.get(col))
	if err != nil {
		// Drivers sometimes write counts as "12.00".
		f, ferr := strconv.ParseFloat(r.get(col), 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			r.ok = false
			return 0
		}
		v = int(f)
	}
	if v < 0 {
		r.ok = false
		return 0
	}
	return v
}

func (r *rowReader) value(col string) float64 {
	if !r.ok {
		return 0
	}
	v, err := strconv.ParseFloat(r.get(col), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		r.ok = false
		return 0
	}
	return v
}

// optInt parses an optional column. An absent column or a value that
// is not a non-negative integer yields def and leaves ok alone.
func (r *rowReader) optInt(col string, def int) int {
	if !r.has(col) {
		return def
	}
	v, err := strconv.Atoi(r.get(col))
	if err != nil || v < 0 {
		return def
	}
	return v
}

func (r *rowReader) throughput() ThroughputRecord {
	rec := ThroughputRecord{
		Workers:       r.count(ColWorkers),
		L1Nodes:       r.count(ColL1Nodes),
		L2Nodes:       r.count(ColL2Nodes),
		Duration:      r.optInt(ColDuration, 0),
		TotalRequests: r.count(ColTotalRequests),
		Successful:    r.count(ColSuccessful),
		Failed:        r.optInt(ColFailed, -1),
		TPS:           r.value(ColTPS),
		AvgLatencyMs:  r.value(ColAvgLatency),
		MinLatencyMs:  r.value(ColMinLatency),
		MaxLatencyMs:  r.value(ColMaxLatency),
	}
	if !r.ok {
		return ThroughputRecord{}
	}
	if rec.Workers < 1 ||
		rec.Successful > rec.TotalRequests ||
		rec.Failed >= 0 && rec.Successful+rec.Failed > rec.TotalRequests {
		r.ok = false
		return ThroughputRecord{}
	}
	// A run that completed no requests has no meaningful latency
	// bounds; keep it so the caller can see it.
	if rec.TotalRequests > 0 && (rec.MinLatencyMs > rec.AvgLatencyMs || rec.AvgLatencyMs > rec.MaxLatencyMs) {
		r.ok = false
		return ThroughputRecord{}
	}
	return rec
}

func (r *rowReader) latency() LatencyRecord {
	rec := LatencyRecord{
		LatencyMs: r.value(ColLatency),
		Iteration: r.optInt(ColIteration, 0),
	}
	if h, err := strconv.ParseInt(r.get(ColBlockHeight), 10, 64); err == nil && h >= 0 {
		rec.BlockHeight = h
	}
	if !r.ok {
		return LatencyRecord{}
	}
	return rec
}
