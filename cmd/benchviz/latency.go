// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchagg"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchchart"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchreport"
)

type latencyRecord = benchrec.LatencyRecord

// latencySource parses the flags of a latency subcommand from args
// into fs and returns the source of its input files.
func (c *command) latencySource(fs *flag.FlagSet, args []string) (benchrec.Source, error) {
	pattern := fs.String("pattern", c.cfg.Patterns.Latency, "discover result files matching `glob`")
	if err := fs.Parse(args); err != nil {
		return benchrec.Source{}, errUsage
	}
	c.cfg.Patterns.Latency = *pattern
	if err := c.check(fs, 1); err != nil {
		return benchrec.Source{}, err
	}
	return benchrec.Source{Dir: c.cfg.InputDir, Pattern: *pattern, Path: fs.Arg(0)}, nil
}

// withSuffix replaces the extension of path with suffix.
func withSuffix(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

func (c *command) steps(args []string) error {
	src, err := c.latencySource(c.flagSet("steps", "[-pattern glob] [file.csv]"), args)
	if err != nil {
		return err
	}
	path, err := src.Latest()
	if err != nil {
		return err
	}
	ds, err := benchrec.Load([]string{path}, benchrec.KindLatency)
	if err != nil {
		return err
	}
	c.loaded(ds)
	f := ds.Files[0]

	g, err := benchagg.Aggregate(ds.Latency, []benchagg.Dimension[latencyRecord]{benchagg.ByStep}, benchagg.LatencySample)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(c.stdout, "Step latency (ms) for %s, L1=%d nodes:\n", filepath.Base(path), f.L1Nodes)
	if err := benchreport.WriteSteps(c.stdout, g); err != nil {
		return err
	}

	out := withSuffix(path, ".png")
	title := fmt.Sprintf("Latency by Step (%s nodes)", configLabel(f.L1Nodes, f.L2Nodes))
	if err := benchchart.StepBoxes(ds.Latency, title, out, c.chartOptions()); err != nil {
		return err
	}
	c.saved(out)
	return nil
}

var byConfigStep = []benchagg.Dimension[latencyRecord]{benchagg.ByLatencyL1, benchagg.ByLatencyL2, benchagg.ByStep}

func (c *command) breakdown(args []string) error {
	fs := c.flagSet("breakdown", "[-pattern glob] [-html file] [file.csv]")
	htmlPath := fs.String("html", "", "also write an HTML report to `file`")
	src, err := c.latencySource(fs, args)
	if err != nil {
		return err
	}
	paths, err := src.Resolve()
	if err != nil {
		return err
	}
	ds, err := benchrec.Load(paths, benchrec.KindLatency)
	if err != nil {
		return err
	}
	c.loaded(ds)

	g, err := benchagg.Aggregate(ds.Latency, byConfigStep, benchagg.LatencySample)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	means, err := benchagg.StepMeans(g, 2)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	b, err := benchagg.BuildBreakdown(means)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	fmt.Fprintf(c.stderr, "Found %d configuration(s)\n", len(b))

	labels := make([]string, len(b))
	for i, k := range b.Configs() {
		labels[i] = configLabel(k.At(0).Num, k.At(1).Num)
	}
	fmt.Fprintf(c.stdout, "Average latency by configuration (ms):\n")
	if err := benchreport.WriteBreakdown(c.stdout, b, labels); err != nil {
		return err
	}

	out := filepath.Join(c.cfg.Output(), "preview_stacked_bar.png")
	if src.Path != "" {
		out = withSuffix(src.Path, "_stacked.png")
	}
	if err := benchchart.Breakdown(b, labels, out, c.chartOptions()); err != nil {
		return err
	}
	c.saved(out)

	if *htmlPath != "" {
		r := &benchreport.Report{Title: "Latency Breakdown Report", Breakdown: b, Labels: labels}
		if err := writeReport(*htmlPath, r, []string{out}); err != nil {
			return err
		}
		c.saved(*htmlPath)
	}
	return nil
}

// configLabel names a node configuration "<l1>-<l2>", or "<l1>" if the
// L2 count is unknown.
func configLabel(l1, l2 int) string {
	if l2 < 0 {
		return strconv.Itoa(l1)
	}
	return fmt.Sprintf("%d-%d", l1, l2)
}
