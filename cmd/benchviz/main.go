// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchviz aggregates benchmark result files and renders comparison
// charts and summary tables.
//
// Usage:
//
//	benchviz [-config file.yaml] [-in dir] [-out dir] [-dpi n] command [arguments]
//
// The commands are:
//
//	throughput [-pattern glob] [-html file] [-db driver:dsn] [-label name]
//	steps      [-pattern glob] [file.csv]
//	breakdown  [-pattern glob] [-html file] [file.csv]
//
// Throughput reads every concurrency result file in the input
// directory, groups the runs by worker count, and writes
// tps_by_workers.png, latency_by_workers.png,
// success_rate_by_workers.png, and scalability.png to the output
// directory. It also writes concurrency_summary.csv, which groups the
// runs by L1 node count, L2 node count, and worker count, and prints
// the same table. With -html, it writes a report page that links the
// charts. With -db, it appends the summary to a SQL archive under
// -label.
//
// Steps reads one latency result file, the given one or the latest in
// the input directory, and prints the latency statistics of each
// workflow step. It renders a box plot next to the input, named after
// it with a .png extension.
//
// Breakdown reads the given latency file, or every latency file in
// the input directory, and prints the mean latency of each step per
// node configuration along with the total. It renders a stacked bar
// chart, <input>_stacked.png for a single file or
// preview_stacked_bar.png in the output directory. With -html, it
// also writes a report page holding the table and the chart.
//
// Latency file names must carry the L1 node count as "l1-<n>" and may
// carry the L2 node count as "l2-<n>". Files with the same counts are
// merged.
//
// Settings may also come from a YAML file given by -config. Flags
// override the file. Progress goes to standard error; tables go to
// standard output.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchchart"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
	"github.com/ahmadzakiakmal/Thesis-Extension/internal/config"
)

var exit = os.Exit // replaced during testing

// errUsage is returned by run after it has printed a usage message.
var errUsage = errors.New("usage error")

func main() {
	log.SetPrefix("benchviz: ")
	log.SetFlags(0)
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			exit(2)
			return
		}
		log.Fatal(err)
	}
}

const usageText = `usage: benchviz [options] command [arguments]

commands:
  throughput [-pattern glob] [-html file] [-db driver:dsn] [-label name]
  steps      [-pattern glob] [file.csv]
  breakdown  [-pattern glob] [-html file] [file.csv]

options:
`

// A command carries the state shared by the subcommands.
type command struct {
	stdout, stderr io.Writer
	cfg            *config.Config
}

func run(stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("benchviz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	flagConfig := fs.String("config", "", "read settings from YAML `file`")
	flagIn := fs.String("in", "", "read result files from `dir` (default \"records\")")
	flagOut := fs.String("out", "", "write charts and tables to `dir` (default: the input directory)")
	flagDPI := fs.Int("dpi", 0, "render charts at `n` dots per inch (default 150)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errUsage
	}

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		if cfg, err = config.Load(*flagConfig); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.InputDir = *flagIn
		case "out":
			cfg.OutputDir = *flagOut
		case "dpi":
			cfg.DPI = *flagDPI
		}
	})

	c := &command{stdout: stdout, stderr: stderr, cfg: cfg}
	sub, rest := fs.Arg(0), fs.Args()[1:]
	switch sub {
	case "throughput":
		return c.throughput(rest)
	case "steps":
		return c.steps(rest)
	case "breakdown":
		return c.breakdown(rest)
	}
	fmt.Fprintf(stderr, "benchviz: unknown command %q\n", sub)
	fs.Usage()
	return errUsage
}

// flagSet returns the flag set of subcommand name.
func (c *command) flagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "usage: benchviz [options] %s %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// check validates the configuration after fs has been parsed. It
// accepts at most maxArgs positional arguments.
func (c *command) check(fs *flag.FlagSet, maxArgs int) error {
	if fs.NArg() > maxArgs {
		fs.Usage()
		return errUsage
	}
	return c.cfg.Validate()
}

func (c *command) chartOptions() benchchart.Options {
	return benchchart.Options{DPI: c.cfg.DPI}
}

func (c *command) saved(path string) {
	fmt.Fprintf(c.stderr, "Saved: %s\n", path)
}

// loaded reports the files of ds and the rows dropped from each.
func (c *command) loaded(ds *benchrec.Dataset) {
	for _, f := range ds.Files {
		switch f.Kind {
		case benchrec.KindLatency:
			fmt.Fprintf(c.stderr, "Loaded: %s (L1=%d nodes)\n", f.Path, f.L1Nodes)
		default:
			fmt.Fprintf(c.stderr, "Loaded: %s (%d runs)\n", f.Path, len(f.Throughput))
		}
		if f.Rollups > 0 {
			fmt.Fprintf(c.stderr, "  dropped %d rollup rows\n", f.Rollups)
		}
		if f.Discarded > 0 {
			fmt.Fprintf(c.stderr, "  discarded %d invalid rows\n", f.Discarded)
		}
	}
	if n := ds.Discarded(); n > 0 && len(ds.Files) > 1 {
		fmt.Fprintf(c.stderr, "Discarded %d invalid rows in %d files\n", n, len(ds.Files))
	}
}
