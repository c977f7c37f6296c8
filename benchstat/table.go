// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"fmt"
	"sort"

	"github.com/Entropy-Foundation/smr-hydrangea/benchcsv"
	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
)

// A Table is a table of improvements of one protocol over the
// baseline for one metric.
type Table struct {
	Metric   benchmetric.Metric
	Baseline string
	Protocol string
	Rows     []*Row
}

// A Row is one configuration of a Table.
type Row struct {
	Config   benchcsv.Config
	Old, New float64 // baseline and protocol averages
	Scaler   Scaler  // formats Old and New
	PctDelta float64 // percentage improvement
	Delta    string  // formatted improvement
	Change   int     // +1 better, -1 worse, 0 unchanged
}

// Tables arranges improvements, as returned by Compare, into one
// Table per protocol and metric. averages must be the input that was
// passed to Compare.
func Tables(averages, improvements map[string][]benchcsv.Result, baseline string, layout benchmetric.Layout) []*Table {
	baseIdx := index(averages[baseline])

	protos := make([]string, 0, len(improvements))
	for proto := range improvements {
		protos = append(protos, proto)
	}
	sort.Strings(protos)

	var tables []*Table
	for _, proto := range protos {
		imps, avgs := improvements[proto], averages[proto]
		ncols := 0
		for _, r := range imps {
			if len(r.Values) > ncols {
				ncols = len(r.Values)
			}
		}
		for col := 0; col < ncols; col++ {
			m := layout.Metric(col)
			t := &Table{Metric: m, Baseline: baseline, Protocol: proto}
			seen := make(map[benchcsv.Config]int)
			for i, imp := range imps {
				cfg := imp.Config
				k := joinKey{cfg, seen[cfg]}
				seen[cfg]++
				row := &Row{Config: cfg, PctDelta: imp.Values[col]}
				if b, ok := baseIdx[k]; ok {
					row.Old = b.Values[col]
				}
				if i < len(avgs) {
					row.New = avgs[i].Values[col]
				}
				row.Scaler = NewScaler(row.Old, m.Unit)
				row.Delta, row.Change = formatDelta(row.PctDelta)
				t.Rows = append(t.Rows, row)
			}
			tables = append(tables, t)
		}
	}
	return tables
}

func formatDelta(pct float64) (string, int) {
	s := fmt.Sprintf("%+.2f%%", pct)
	switch {
	case s == "+0.00%" || s == "-0.00%":
		return "~", 0
	case pct > 0:
		return s, +1
	}
	return s, -1
}
