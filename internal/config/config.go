// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings shared by the benchviz
// subcommands and loads them from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Patterns are the file name globs used to discover result files.
type Patterns struct {
	Throughput string `yaml:"throughput"`
	Latency    string `yaml:"latency"`
}

// Config is the benchviz configuration.
type Config struct {
	// InputDir is the directory searched for result files.
	InputDir string `yaml:"input_dir"`
	// OutputDir receives charts and summary tables. If empty,
	// outputs go to InputDir.
	OutputDir string   `yaml:"output_dir"`
	Patterns  Patterns `yaml:"patterns"`
	// DPI is the resolution of rendered charts.
	DPI int `yaml:"dpi"`
	// DB, if set, is "driver:dsn" of a SQL database that
	// archives throughput summaries.
	DB string `yaml:"db"`
	// Label tags archived summaries.
	Label string `yaml:"label"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		InputDir: "records",
		Patterns: Patterns{
			Throughput: "concurrency_*.csv",
			Latency:    "latency_*.csv",
		},
		DPI:   150,
		Label: "latest",
	}
}

// Load returns the default configuration overridden by the YAML file
// at path. Unknown fields are an error.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Read is like Load, but reads the YAML from r.
func Read(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, err
	}
	return c, nil
}

// Output returns the directory that receives outputs.
func (c *Config) Output() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.InputDir
}

var drivers = map[string]bool{"sqlite3": true, "mysql": true}

// DBSource splits c.DB into a driver name and a data source name.
// It returns "", "" if no database is configured.
func (c *Config) DBSource() (driver, dsn string, err error) {
	if c.DB == "" {
		return "", "", nil
	}
	driver, dsn, ok := strings.Cut(c.DB, ":")
	if !ok || dsn == "" {
		return "", "", fmt.Errorf("db %q: want driver:dsn", c.DB)
	}
	if !drivers[driver] {
		return "", "", fmt.Errorf("db %q: unsupported driver %q", c.DB, driver)
	}
	return driver, dsn, nil
}

// Validate reports the first problem with c.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.New("input directory is empty")
	}
	for _, p := range []struct{ name, glob string }{
		{"throughput", c.Patterns.Throughput},
		{"latency", c.Patterns.Latency},
	} {
		if p.glob == "" {
			return fmt.Errorf("%s pattern is empty", p.name)
		}
		if strings.ContainsRune(p.glob, filepath.Separator) {
			return fmt.Errorf("%s pattern %q must not contain a directory", p.name, p.glob)
		}
		if _, err := filepath.Match(p.glob, ""); err != nil {
			return fmt.Errorf("%s pattern %q: %w", p.name, p.glob, err)
		}
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi %d must be positive", c.DPI)
	}
	if _, _, err := c.DBSource(); err != nil {
		return err
	}
	return nil
}
