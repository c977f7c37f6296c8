// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Entropy-Foundation/smr-hydrangea/benchcsv"
	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
	"github.com/Entropy-Foundation/smr-hydrangea/benchproc"
	"github.com/Entropy-Foundation/smr-hydrangea/benchseries"
	"github.com/Entropy-Foundation/smr-hydrangea/benchstat"
)

type config struct {
	root      string
	protocols []string // result files to read
	plot      []string // protocols in average charts

	baseline      string
	baselineLabel string
	itemSize      float64
	layout        benchmetric.Layout

	outDir string
	format string
	csv    bool

	table  bool
	report string
	order  benchstat.SortFunc
}

// moonplot runs the whole pipeline for cfg. Warnings go to stderr.
func moonplot(stdout, stderr io.Writer, cfg *config) error {
	warn := log.New(stderr, "moonplot: ", 0)

	flat, err := readResults(cfg, warn)
	if err != nil {
		return err
	}
	if len(flat) == 0 {
		return nil
	}

	if cfg.table {
		if err := benchseries.WriteTable(stdout, flat, cfg.protocols, cfg.layout); err != nil {
			return err
		}
	}

	improvements, err := benchstat.Compare(flat, cfg.baseline, cfg.layout)
	if err != nil {
		return err
	}
	tables := benchstat.Tables(flat, improvements, cfg.baseline, cfg.layout)
	if cfg.order != nil {
		for _, t := range tables {
			benchstat.SortTable(t, cfg.order)
		}
	}
	if err := writeReport(stdout, tables, cfg.report); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.outDir, 0777); err != nil {
		return err
	}
	averages := benchproc.Select(flat, cfg.plot...)
	views := []struct {
		name string
		data map[string]*benchproc.Nested
		imp  bool
	}{
		{"by-payload", benchproc.ByPayloadThenNodes(averages), false},
		{"by-nodes", benchproc.ByNodesThenPayload(averages), false},
		{"improvement-by-payload", benchproc.ByPayloadThenNodes(improvements), true},
		{"improvement-by-nodes", benchproc.ByNodesThenPayload(improvements), true},
	}
	for _, m := range cfg.layout.Metrics {
		base := filepath.Join(cfg.outDir, slug(m.Name))

		plots, err := benchseries.Surface(flat, cfg.protocols, m)
		if err != nil {
			return err
		}
		if err := benchseries.SaveSurface(plots, base+"-surface."+cfg.format, benchseries.Width/2, benchseries.Height); err != nil {
			return err
		}

		for _, v := range views {
			if len(v.data) == 0 {
				continue
			}
			curves := benchseries.Curves(v.data, cfg.protocols, m.Column)
			chart := benchseries.ChartConfig{X: outer(v.data), YLabel: m.Name}
			if v.imp {
				chart.YLabel = m.ImprovementLabel(cfg.baselineLabel)
			}
			p, err := benchseries.Chart(curves, chart)
			if err != nil {
				return err
			}
			name := base + "-" + v.name
			if err := benchseries.Save(p, name+"."+cfg.format, benchseries.Width, benchseries.Height); err != nil {
				return err
			}
			if cfg.csv {
				if err := writeCSV(name+".csv", chart.X, curves); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// readResults reads and averages the result file of every protocol.
// Missing files are skipped with a warning.
func readResults(cfg *config, warn *log.Logger) (map[string][]benchcsv.Result, error) {
	flat := make(map[string][]benchcsv.Result)
	for _, proto := range cfg.protocols {
		path := filepath.Join(cfg.root, proto+".csv")
		rs, err := benchcsv.ParseAverages(path, cfg.layout.Ignore)
		if errors.Is(err, fs.ErrNotExist) {
			warn.Printf("skipping %s: %v", proto, err)
			continue
		}
		if err != nil {
			return nil, err
		}
		flat[proto] = benchcsv.ScalePayload(rs, cfg.itemSize)
	}
	return flat, nil
}

func writeCSV(path string, x benchmetric.Dimension, curves []*benchseries.Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := benchseries.WriteCSV(f, x, curves); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// outer returns the outer dimension shared by the values of m.
func outer(m map[string]*benchproc.Nested) benchmetric.Dimension {
	for _, n := range m {
		return n.Outer
	}
	return benchmetric.Nodes
}

// slug turns a metric name into a file name.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		} else {
			dash = true
		}
	}
	return b.String()
}
