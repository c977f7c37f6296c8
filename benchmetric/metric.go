// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmetric describes the metric columns of consensus
// benchmark result files.
//
// A Layout is the single source of truth for a result file: which raw
// CSV columns are skipped when averaging, and which averaged columns
// hold which metric. The CSV parser, the comparator and the chart
// driver all consume the same Layout, so column positions are never
// duplicated between them.
package benchmetric

import "fmt"

// A Dimension is one half of a benchmark configuration key.
type Dimension int

const (
	// Nodes is the network size, the first column of a result file.
	Nodes Dimension = iota
	// Payload is the payload size, the second column of a result file.
	Payload
)

func (d Dimension) String() string {
	switch d {
	case Nodes:
		return "Nodes"
	case Payload:
		return "Payload"
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// Label returns the axis label for d.
func (d Dimension) Label() string {
	switch d {
	case Nodes:
		return "Network Size (Nodes)"
	case Payload:
		return "Payload Size (Bytes)"
	}
	return d.String()
}

// Suffix returns the suffix appended to a series named after a value
// of d, as in "narwhal-hs 10 Nodes".
func (d Dimension) Suffix() string {
	switch d {
	case Nodes:
		return " Nodes"
	case Payload:
		return " Bytes"
	}
	return ""
}

// Other returns the other half of the configuration key.
func (d Dimension) Other() Dimension {
	if d == Nodes {
		return Payload
	}
	return Nodes
}

// A Metric describes one averaged column of a result file.
type Metric struct {
	// Name is the human-readable name, also used as a y-axis label.
	Name string

	// Column is the index of this metric within the averaged
	// values of a configuration, that is, after the two key
	// columns and the ignored columns have been removed.
	Column int

	// HigherIsBetter is set for throughput metrics. Improvements
	// of all other metrics are computed as latencies, where lower
	// is better.
	HigherIsBetter bool

	// Unit is the unit of the metric, or "" for counts.
	Unit string
}

// Improvement computes the percentage improvement of value over base
// for m. The caller must ensure base is non-zero.
func (m Metric) Improvement(value, base float64) float64 {
	if m.HigherIsBetter {
		return (value - base) / base * 100
	}
	return (base - value) / base * 100
}

// ImprovementLabel returns the y-axis label of an improvement chart of
// m relative to the named baseline.
func (m Metric) ImprovementLabel(baseline string) string {
	return fmt.Sprintf("%s Improvement vs. %s (%%)", m.Name, baseline)
}

// A Layout describes the columns of a result file.
type Layout struct {
	// Ignore lists raw CSV column indexes that are not averaged,
	// such as timeouts and run durations.
	Ignore []int

	// Metrics lists the averaged columns in column order.
	Metrics []Metric
}

// Metric returns the metric for averaged column col. Columns beyond
// the described metrics are reported as unnamed latencies.
func (l Layout) Metric(col int) Metric {
	for _, m := range l.Metrics {
		if m.Column == col {
			return m
		}
	}
	return Metric{Name: fmt.Sprintf("column %d", col), Column: col}
}

// Lookup returns the metric with the given name.
func (l Layout) Lookup(name string) (Metric, bool) {
	for _, m := range l.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// Moonshot is the layout of the per-protocol result files written by
// the moonshot benchmark harness. Raw columns are: nodes, payload,
// timeout, runtime, followed by the metrics.
var Moonshot = Layout{
	Ignore: []int{2, 3},
	Metrics: []Metric{
		{Name: "Blocks Committed", Column: 0, HigherIsBetter: true},
		{Name: "Median Latency to Last Commit (ms)", Column: 1, Unit: "ms"},
		{Name: "Median Latency to First Commit (ms)", Column: 2, Unit: "ms"},
		{Name: "Mean Latency to Last Commit (ms)", Column: 3, Unit: "ms"},
		{Name: "Mean Latency to First Commit (ms)", Column: 4, Unit: "ms"},
	},
}

// PayloadItemSize is the size in bytes of one payload item (a default
// certificate) in moonshot result files, which record payload sizes
// as item counts.
const PayloadItemSize = 180
