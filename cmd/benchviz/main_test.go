// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmadzakiakmal/Thesis-Extension/benchagg"
	"github.com/ahmadzakiakmal/Thesis-Extension/benchrec"
	"github.com/ahmadzakiakmal/Thesis-Extension/internal/diff"
	"github.com/ahmadzakiakmal/Thesis-Extension/internal/summarydb"
)

var update = flag.Bool("update", false, "update golden files")

// records copies the result files in testdata to a new directory and
// returns it.
func records(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files, err := filepath.Glob(filepath.Join("testdata", "*.csv"))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, filepath.Base(f)), data, 0o666); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// golden runs benchviz with args and compares its standard output to
// testdata/name.stdout. It returns the standard error output.
func golden(t *testing.T, name string, args ...string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	t.Logf("benchviz %s", strings.Join(args, " "))
	if err := run(&stdout, &stderr, args); err != nil {
		t.Fatalf("unexpected error: %s\nstderr:\n%s", err, stderr.String())
	}

	wantPath := filepath.Join("testdata", name+".stdout")
	if *update {
		if err := os.WriteFile(wantPath, stdout.Bytes(), 0o666); err != nil {
			t.Fatal(err)
		}
		return stderr.String()
	}
	want, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatal(err)
	}
	if d := diff.Diff(wantPath, string(want), stdout.String()); d != "" {
		t.Errorf("stdout differs from %s:\n%s", wantPath, d)
	}
	return stderr.String()
}

func checkFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Error(err)
	} else if info.Size() == 0 {
		t.Errorf("%s is empty", path)
	}
}

func checkContains(t *testing.T, what, s string, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			t.Errorf("%s does not contain %q:\n%s", what, sub, s)
		}
	}
}

func TestThroughput(t *testing.T) {
	in := records(t)
	out := filepath.Join(in, "out")
	report := filepath.Join(out, "report.html")
	archive := filepath.Join(in, "archive.db")

	stderr := golden(t, "throughput", "-in", in, "-out", out, "-dpi", "40",
		"throughput", "-html", report, "-db", "sqlite3:"+archive, "-label", "run1")

	for _, name := range []string{"tps_by_workers.png", "latency_by_workers.png", "success_rate_by_workers.png", "scalability.png", summaryFile, "report.html"} {
		checkFile(t, filepath.Join(out, name))
	}
	checkContains(t, "stderr", stderr,
		"Loaded: "+filepath.Join(in, "concurrency_20250101_101000_w4_d10s_l1-4_l2-2.csv")+" (1 runs)\n  discarded 1 invalid rows\n",
		"Discarded 1 invalid rows in 4 files\n",
		"Excluded 1 runs from success rate",
		"1 configurations issued no requests",
		"Saved: "+filepath.Join(out, "scalability.png"),
		`Archived summary as "run1" (run 1)`)

	f, err := os.Open(filepath.Join(out, summaryFile))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	s, err := benchagg.ReadSummaryCSV(f, summaryFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Rows) != 3 || s.Rows[0].Key != benchagg.IntKey(4, 2, 1) || s.Rows[0].TPS.Mean != 11 {
		t.Errorf("summary CSV rows = %+v", s.Rows)
	}

	html, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}
	checkContains(t, "report", string(html), `src="tps_by_workers.png"`, "<td>97.27</td>")

	db, err := summarydb.OpenSQL("sqlite3", archive)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	archived, err := db.Summary(context.Background(), "run1")
	if err != nil {
		t.Fatal(err)
	}
	if len(archived.Rows) != 3 || archived.Rows[2].Key != benchagg.IntKey(4, 2, 8) {
		t.Errorf("archived rows = %+v", archived.Rows)
	}
}

func TestSteps(t *testing.T) {
	in := records(t)
	file := filepath.Join(in, "latency_20250101_100000_n2_l1-4_l2-2.csv")
	stderr := golden(t, "steps", "-dpi", "40", "steps", file)
	checkFile(t, filepath.Join(in, "latency_20250101_100000_n2_l1-4_l2-2.png"))
	checkContains(t, "stderr", stderr, "(L1=4 nodes)\n  dropped 2 rollup rows\n  discarded 1 invalid rows\n")

	// Without a file, the lexically last latency file is used.
	var stdout, errOut bytes.Buffer
	if err := run(&stdout, &errOut, []string{"-in", in, "-dpi", "40", "steps"}); err != nil {
		t.Fatal(err)
	}
	checkContains(t, "stdout", stdout.String(), "latency_20250102_100000_n1_l1-8_l2-2.csv, L1=8 nodes")
	if strings.Contains(stdout.String(), "Quality Check") {
		t.Errorf("step with no samples printed:\n%s", stdout.String())
	}
	checkFile(t, filepath.Join(in, "latency_20250102_100000_n1_l1-8_l2-2.png"))
}

func TestBreakdown(t *testing.T) {
	in := records(t)
	out := filepath.Join(in, "charts")
	report := filepath.Join(out, "breakdown.html")
	stderr := golden(t, "breakdown", "-in", in, "-out", out, "-dpi", "40", "breakdown", "-html", report)
	checkFile(t, filepath.Join(out, "preview_stacked_bar.png"))
	checkContains(t, "stderr", stderr, "Found 2 configuration(s)", "Discarded 1 invalid rows in 2 files\n", "Saved: "+report)

	html, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}
	checkContains(t, "report", string(html),
		"<td>4-2</td>", "<td>217.00</td>", "<td>145.00</td>", `src="preview_stacked_bar.png"`)

	file := filepath.Join(in, "latency_20250102_100000_n1_l1-8_l2-2.csv")
	var stdout, errOut bytes.Buffer
	if err := run(&stdout, &errOut, []string{"-dpi", "40", "breakdown", file}); err != nil {
		t.Fatal(err)
	}
	checkFile(t, filepath.Join(in, "latency_20250102_100000_n1_l1-8_l2-2_stacked.png"))
	checkContains(t, "stdout", stdout.String(), "8-2", "145.00")
}

func TestConfigFile(t *testing.T) {
	in := records(t)
	cfg := filepath.Join(t.TempDir(), "benchviz.yaml")
	data := "input_dir: " + in + "\noutput_dir: " + filepath.Join(in, "yaml-out") + "\ndpi: 40\n"
	if err := os.WriteFile(cfg, []byte(data), 0o666); err != nil {
		t.Fatal(err)
	}
	golden(t, "breakdown", "-config", cfg, "breakdown")
	checkFile(t, filepath.Join(in, "yaml-out", "preview_stacked_bar.png"))
}

// headerOnly returns a new directory holding a result file named name
// that has a header but no rows.
func headerOnly(t *testing.T, name, header string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(header+"\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestErrors(t *testing.T) {
	in := records(t)
	noRuns := headerOnly(t, "concurrency_x.csv", "L1_Nodes,L2_Nodes,Workers,Total_Requests,Successful,TPS,Avg_Latency_ms,Min_Latency_ms,Max_Latency_ms")
	noSteps := headerOnly(t, "latency_l1-4.csv", "Iteration,Step,Latency_ms,BlockHeight")
	for _, test := range []struct {
		name string
		args []string
		kind error
		msg  string
	}{
		{
			"missing token",
			[]string{"steps", filepath.Join("testdata", "notoken", "latency_run1.csv")},
			benchrec.ErrConfigTokenMissing,
			`config token missing: ` + filepath.Join("testdata", "notoken", "latency_run1.csv") + `: no match for l1-(\d+)`,
		},
		{
			"missing file",
			[]string{"steps", filepath.Join(in, "latency_l1-2.csv")},
			benchrec.ErrFileNotFound,
			"file not found: " + filepath.Join(in, "latency_l1-2.csv"),
		},
		{
			"no results",
			[]string{"-in", in, "throughput", "-pattern", "nothing_*.csv"},
			benchrec.ErrNoResults,
			"no results found: " + in + `: nothing matches "nothing_*.csv"`,
		},
		{
			"wrong kind",
			[]string{"-in", in, "breakdown", filepath.Join(in, "concurrency_20250101_100000_w1_d10s_l1-4_l2-2.csv")},
			benchrec.ErrSchemaMismatch,
			"schema mismatch: " + filepath.Join(in, "concurrency_20250101_100000_w1_d10s_l1-4_l2-2.csv") + ":1: throughput file, want latency",
		},
		{
			"no runs",
			[]string{"-in", noRuns, "throughput"},
			benchagg.ErrEmptyInput,
			filepath.Join(noRuns, "concurrency_*.csv") + ": aggregate TPS: empty input",
		},
		{
			"no steps",
			[]string{"-in", noSteps, "breakdown"},
			benchagg.ErrEmptyInput,
			filepath.Join(noSteps, "latency_*.csv") + ": aggregate Latency_ms: empty input",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(&stdout, &stderr, test.args)
			if !errors.Is(err, test.kind) {
				t.Fatalf("got %v, want %v", err, test.kind)
			}
			if err.Error() != test.msg {
				t.Errorf("got message %q, want %q", err.Error(), test.msg)
			}
			if stdout.Len() != 0 {
				t.Errorf("partial output on failure:\n%s", stdout.String())
			}
		})
	}
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"plot"},
		{"-bogus", "steps"},
		{"steps", "a.csv", "b.csv"},
		{"throughput", "extra"},
		{"breakdown", "-html"},
	} {
		var stdout, stderr bytes.Buffer
		if err := run(&stdout, &stderr, args); err != errUsage {
			t.Errorf("run(%q) = %v, want usage error", args, err)
		}
		if !strings.Contains(stderr.String(), "usage: benchviz") {
			t.Errorf("run(%q) printed no usage:\n%s", args, stderr.String())
		}
	}

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, []string{"-dpi", "-1", "steps"}); err == nil || err == errUsage {
		t.Errorf("negative dpi: got %v, want validation error", err)
	}
}
