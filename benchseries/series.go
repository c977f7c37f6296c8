// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries extracts plottable series from averaged
// benchmark results and renders them as charts.
//
// A chart has one curve per protocol and per value of the inner
// dimension of a benchproc.Nested, drawn across the values of the
// outer dimension. Curves for the same inner value share a colour
// across protocols; protocols are told apart by line style and glyph.
package benchseries

import (
	"fmt"
	"math"

	"github.com/Entropy-Foundation/smr-hydrangea/benchcsv"
	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
	"github.com/Entropy-Foundation/smr-hydrangea/benchproc"
	"gonum.org/v1/plot/plotter"
)

// Points returns the value of averaged column col of every result,
// in order. Results without that column yield NaN.
func Points(rs []benchcsv.Result, col int) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		if col < 0 || col >= len(r.Values) {
			out[i] = math.NaN()
			continue
		}
		out[i] = r.Values[col]
	}
	return out
}

// MetricPoints returns the values of metric m of every result.
func MetricPoints(rs []benchcsv.Result, m benchmetric.Metric) []float64 {
	return Points(rs, m.Column)
}

// Keys returns dimension d of the configuration of every result, in
// order.
func Keys(rs []benchcsv.Result, d benchmetric.Dimension) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Config.Get(d)
	}
	return out
}

// A Curve is one line of a chart: the values of a metric for one
// protocol and one inner key, across the outer keys.
type Curve struct {
	// Name labels the curve in legends and CSV headers, as in
	// "narwhal-hs 10 Nodes".
	Name     string
	Protocol string

	// Inner is the dimension Key is drawn from.
	Inner benchmetric.Dimension
	Key   float64

	XYs plotter.XYs
}

// Curves extracts the curves of averaged column col from byProtocol.
// Protocols are visited in the order given by benchproc.Protocols.
//
// The x values are the outer keys of all protocols, in the order they
// were first seen. Within a protocol, curves are ordered by first
// appearance of their inner key.
func Curves(byProtocol map[string]*benchproc.Nested, order []string, col int) []*Curve {
	protos := benchproc.Protocols(byProtocol, order)

	var xs []float64
	seen := make(map[float64]bool)
	for _, proto := range protos {
		for _, k1 := range byProtocol[proto].Keys() {
			if !seen[k1] {
				seen[k1] = true
				xs = append(xs, k1)
			}
		}
	}

	var curves []*Curve
	for _, proto := range protos {
		n := byProtocol[proto]
		byKey := make(map[float64]*Curve)
		for _, x := range xs {
			for _, k2 := range n.InnerKeys(x) {
				vals, _ := n.Lookup(x, k2)
				if col >= len(vals) {
					continue
				}
				c, ok := byKey[k2]
				if !ok {
					c = &Curve{
						Name:     curveName(proto, k2, n.Inner),
						Protocol: proto,
						Inner:    n.Inner,
						Key:      k2,
					}
					byKey[k2] = c
					curves = append(curves, c)
				}
				c.XYs = append(c.XYs, plotter.XY{X: x, Y: vals[col]})
			}
		}
	}
	return curves
}

func curveName(proto string, key float64, d benchmetric.Dimension) string {
	return fmt.Sprintf("%s %d%s", proto, int64(key), d.Suffix())
}
