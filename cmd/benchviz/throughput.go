// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchagg"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchchart"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchreport"
	"github.com/ahmadzakiakmal/Thesis-Extension/internal/summarydb"
)

type throughputRecord = benchrec.ThroughputRecord

var (
	byWorkers = []benchagg.Dimension[throughputRecord]{benchagg.ByWorkers}
	byConfig  = []benchagg.Dimension[throughputRecord]{benchagg.ByL1Nodes, benchagg.ByL2Nodes, benchagg.ByWorkers}
)

const summaryFile = "concurrency_summary.csv"

func (c *command) throughput(args []string) error {
	fs := c.flagSet("throughput", "[-pattern glob] [-html file] [-db driver:dsn] [-label name]")
	pattern := fs.String("pattern", c.cfg.Patterns.Throughput, "read result files matching `glob`")
	htmlPath := fs.String("html", "", "also write an HTML report to `file`")
	db := fs.String("db", c.cfg.DB, "archive the summary in the SQL database `driver:dsn`")
	label := fs.String("label", c.cfg.Label, "archive the summary under `name`")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	c.cfg.Patterns.Throughput, c.cfg.DB, c.cfg.Label = *pattern, *db, *label
	if err := c.check(fs, 0); err != nil {
		return err
	}

	src := benchrec.Source{Dir: c.cfg.InputDir, Pattern: *pattern}
	paths, err := src.Resolve()
	if err != nil {
		return err
	}
	ds, err := benchrec.Load(paths, benchrec.KindThroughput)
	if err != nil {
		return err
	}
	c.loaded(ds)

	// Per-worker charts.
	agg := func(m benchagg.Metric[throughputRecord]) (*benchagg.Groups, error) {
		g, err := benchagg.Aggregate(ds.Throughput, byWorkers, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src, err)
		}
		return g, nil
	}
	out := c.cfg.Output()
	var charts []string
	chart := func(name string, render func(path string) error) error {
		path := filepath.Join(out, name)
		if err := render(path); err != nil {
			return err
		}
		c.saved(path)
		charts = append(charts, path)
		return nil
	}
	o := c.chartOptions()

	tps, err := agg(benchagg.TPS)
	if err != nil {
		return err
	}
	if err := chart("tps_by_workers.png", func(p string) error { return benchchart.TPSByWorkers(tps, p, o) }); err != nil {
		return err
	}

	var lat [3]*benchagg.Groups
	for i, m := range []benchagg.Metric[throughputRecord]{benchagg.MinLatency, benchagg.AvgLatency, benchagg.MaxLatency} {
		if lat[i], err = agg(m); err != nil {
			return err
		}
	}
	if err := chart("latency_by_workers.png", func(p string) error { return benchchart.LatencyByWorkers(lat[0], lat[1], lat[2], p, o) }); err != nil {
		return err
	}

	rate, err := agg(benchagg.SuccessRate)
	switch {
	case errors.Is(err, benchagg.ErrEmptyInput):
		fmt.Fprintf(c.stderr, "No run issued any requests; skipping success rate chart\n")
	case err != nil:
		return err
	default:
		if rate.Excluded > 0 {
			fmt.Fprintf(c.stderr, "Excluded %d runs from success rate: %v\n", rate.Excluded, rate.ExcludedErr)
		}
		if err := chart("success_rate_by_workers.png", func(p string) error { return benchchart.SuccessRateByWorkers(rate, p, o) }); err != nil {
			return err
		}
	}

	if err := chart("scalability.png", func(p string) error { return benchchart.Scalability(tps, lat[1], p, o) }); err != nil {
		return err
	}

	// Summary table.
	s, err := benchagg.BuildSummary(ds.Throughput, byConfig)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if err := writeSummary(s, filepath.Join(out, summaryFile)); err != nil {
		return err
	}
	c.saved(filepath.Join(out, summaryFile))
	if n := s.Undefined(); n > 0 {
		fmt.Fprintf(c.stderr, "%d configurations issued no requests; their success rate is undefined\n", n)
	}
	fmt.Fprintf(c.stdout, "Summary statistics:\n")
	if err := benchreport.WriteSummary(c.stdout, s); err != nil {
		return err
	}

	if *htmlPath != "" {
		r := &benchreport.Report{Title: "Concurrency Benchmark Report", Summary: s}
		if err := writeReport(*htmlPath, r, charts); err != nil {
			return err
		}
		c.saved(*htmlPath)
	}

	driver, dsn, err := c.cfg.DBSource()
	if err != nil {
		return err
	}
	if driver != "" {
		db, err := summarydb.OpenSQL(driver, dsn)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer db.Close()
		id, err := db.InsertSummary(context.Background(), c.cfg.Label, s)
		if err != nil {
			return fmt.Errorf("archive summary: %w", err)
		}
		fmt.Fprintf(c.stderr, "Archived summary as %q (run %d)\n", c.cfg.Label, id)
	}
	return nil
}

func writeSummary(s *benchagg.Summary, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// writeReport writes r to path as an HTML page that links charts
// relative to the report's directory.
func writeReport(path string, r *benchreport.Report, charts []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
		return err
	}
	for _, ch := range charts {
		if rel, err := filepath.Rel(filepath.Dir(path), ch); err == nil {
			ch = filepath.ToSlash(rel)
		}
		r.Charts = append(r.Charts, ch)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := benchreport.WriteHTML(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
