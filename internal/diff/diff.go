// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff describes differences between expected and actual
// test output.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Diff returns a human-readable description of the differences
// between want and got, or "" if they are equal. It uses the system
// diff command when available and otherwise reports the first line
// that differs.
func Diff(name, want, got string) string {
	if want == got {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return firstLine(want, got)
	}
	fw, err := tempFile(want)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(fw)
	fg, err := tempFile(got)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(fg)

	out, err := exec.Command("diff", "-u", "--label", name+" (want)", "--label", name+" (got)", fw, fg).CombinedOutput()
	if len(out) > 0 {
		// diff exits with status 1 when the files differ.
		return string(out)
	}
	if err != nil {
		return err.Error()
	}
	return firstLine(want, got)
}

func tempFile(data string) (string, error) {
	f, err := os.CreateTemp("", "benchviz-diff")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), f.Close()
}

func firstLine(want, got string) string {
	wl, gl := strings.Split(want, "\n"), strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g || i >= len(wl) || i >= len(gl) {
			return fmt.Sprintf("line %d:\nwant: %q\ngot:  %q", i+1, w, g)
		}
	}
	return "outputs differ"
}
