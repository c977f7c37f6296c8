// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchstat compares averaged benchmark results of several
// protocols against a baseline protocol.
//
// Compare joins every protocol's results with the baseline's by
// configuration and reports, for each metric, the percentage by
// which the protocol improves on the baseline. Throughput metrics
// improve when they go up; latency metrics improve when they go down.
// Tables arranges the improvements for printing with FormatText,
// FormatCSV or FormatHTML.
package benchstat

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Entropy-Foundation/smr-hydrangea/benchcsv"
	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
)

// ErrZeroBaseline is returned by Compare when a baseline value is
// zero, making the improvement undefined.
var ErrZeroBaseline = errors.New("zero baseline value")

// A MismatchError reports that a protocol's results cannot be joined
// with the baseline's.
type MismatchError struct {
	Protocol, Baseline string
	Config             benchcsv.Config
	Msg                string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("comparing %s with %s at %s: %s", e.Protocol, e.Baseline, e.Config, e.Msg)
}

// joinKey identifies the n'th occurrence of a configuration in a list
// of results. Result files may repeat a configuration in separate
// groups; occurrences are paired in order.
type joinKey struct {
	cfg benchcsv.Config
	n   int
}

func index(rs []benchcsv.Result) map[joinKey]*benchcsv.Result {
	seen := make(map[benchcsv.Config]int)
	idx := make(map[joinKey]*benchcsv.Result, len(rs))
	for i := range rs {
		cfg := rs[i].Config
		idx[joinKey{cfg, seen[cfg]}] = &rs[i]
		seen[cfg]++
	}
	return idx
}

// Compare computes the improvement of every protocol in averages over
// the baseline protocol. The result maps each non-baseline protocol
// to one result per configuration, in that protocol's order, whose
// Values are percentage improvements per metric. layout decides which
// metrics are throughputs; all others are treated as latencies.
//
// Every protocol must have exactly the configurations of the
// baseline. Otherwise Compare returns a *MismatchError.
func Compare(averages map[string][]benchcsv.Result, baseline string, layout benchmetric.Layout) (map[string][]benchcsv.Result, error) {
	base, ok := averages[baseline]
	if !ok {
		return nil, fmt.Errorf("no results for baseline protocol %q", baseline)
	}
	baseIdx := index(base)

	protos := make([]string, 0, len(averages))
	for proto := range averages {
		if proto != baseline {
			protos = append(protos, proto)
		}
	}
	sort.Strings(protos)

	out := make(map[string][]benchcsv.Result, len(protos))
	for _, proto := range protos {
		rs := averages[proto]
		mismatch := func(cfg benchcsv.Config, format string, args ...interface{}) error {
			return &MismatchError{proto, baseline, cfg, fmt.Sprintf(format, args...)}
		}
		if len(rs) != len(base) {
			return nil, mismatch(benchcsv.Config{}, "%d configurations, baseline has %d", len(rs), len(base))
		}

		imps := make([]benchcsv.Result, 0, len(rs))
		seen := make(map[benchcsv.Config]int)
		for _, r := range rs {
			k := joinKey{r.Config, seen[r.Config]}
			seen[r.Config]++
			b, ok := baseIdx[k]
			if !ok {
				return nil, mismatch(r.Config, "configuration missing from baseline")
			}
			if len(r.Values) != len(b.Values) {
				return nil, mismatch(r.Config, "%d metrics, baseline has %d", len(r.Values), len(b.Values))
			}
			imp := benchcsv.Result{Config: r.Config, Values: make([]float64, len(r.Values))}
			for col, v := range r.Values {
				m := layout.Metric(col)
				if b.Values[col] == 0 {
					return nil, fmt.Errorf("comparing %s with %s at %s, %s: %w", proto, baseline, r.Config, m.Name, ErrZeroBaseline)
				}
				imp.Values[col] = m.Improvement(v, b.Values[col])
			}
			imps = append(imps, imp)
		}
		out[proto] = imps
	}
	return out, nil
}
