// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"github.com/Entropy-Foundation/smr-hydrangea/benchcsv"
	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
	"github.com/Entropy-Foundation/smr-hydrangea/benchproc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Surface draws metric m over both configuration dimensions, as one
// heat map per protocol. All heat maps share one colour scale.
//
// Payload sizes are drawn on a log10 axis. Throughput metrics put
// payload sizes on the x axis, all other metrics put network sizes
// there.
func Surface(flat map[string][]benchcsv.Result, order []string, m benchmetric.Metric) ([]*plot.Plot, error) {
	xDim := benchmetric.Nodes
	if m.HigherIsBetter {
		xDim = benchmetric.Payload
	}
	yDim := xDim.Other()

	protos := benchproc.Protocols(flat, order)
	byX := benchproc.MapBy(flat, xDim, yDim)

	var all []benchcsv.Result
	for _, proto := range protos {
		all = append(all, flat[proto]...)
	}
	xs, ys := sortedKeys(all, xDim), sortedKeys(all, yDim)
	logPayload := len(all) > 0 && allPositive(Keys(all, benchmetric.Payload))

	var grids []*surfaceGrid
	min, max := math.Inf(1), math.Inf(-1)
	for _, proto := range protos {
		g := &surfaceGrid{n: byX[proto], col: m.Column, xs: xs, ys: ys}
		g.logX = logPayload && xDim == benchmetric.Payload
		g.logY = logPayload && yDim == benchmetric.Payload
		for c := range xs {
			for r := range ys {
				v := g.Z(c, r)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					continue
				}
				min = math.Min(min, v)
				max = math.Max(max, v)
			}
		}
		grids = append(grids, g)
	}
	if math.IsInf(min, 1) {
		return nil, errors.New("no values for " + m.Name)
	}
	if min == max {
		max = min + 1
	}

	pal := palette.Heat(12, 1)
	var plots []*plot.Plot
	for i, g := range grids {
		p := plot.New()
		p.Title.Text = protos[i]
		p.X.Label.Text = xDim.Label()
		p.Y.Label.Text = yDim.Label()
		p.X.Tick.Marker = plot.ConstantTicks(axisTicks(xs, g.logX))
		p.Y.Tick.Marker = plot.ConstantTicks(axisTicks(ys, g.logY))

		h := plotter.NewHeatMap(g, pal)
		h.Min, h.Max = min, max
		p.Add(h)
		plots = append(plots, p)
	}
	return plots, nil
}

// SaveSurface renders the heat maps returned by Surface side by side
// to path. width and height are the size of one heat map.
func SaveSurface(plots []*plot.Plot, path string, width, height vg.Length) error {
	if len(plots) == 0 {
		return errors.New("no plots to save")
	}
	return writeImage(path, width*vg.Length(len(plots)), height, func(dc draw.Canvas) {
		t := draw.Tiles{
			Rows:      1,
			Cols:      len(plots),
			PadX:      vg.Millimeter * 4,
			PadTop:    vg.Millimeter * 2,
			PadBottom: vg.Millimeter * 2,
			PadLeft:   vg.Millimeter * 2,
			PadRight:  vg.Millimeter * 2,
		}
		canvases := plot.Align([][]*plot.Plot{plots}, t, dc)
		for i, p := range plots {
			p.Draw(canvases[0][i])
		}
	})
}

// surfaceGrid adapts a benchproc.Nested keyed by the x dimension,
// then the y dimension, to a plotter.GridXYZ.
type surfaceGrid struct {
	n          *benchproc.Nested
	col        int
	xs, ys     []float64
	logX, logY bool
}

func (g *surfaceGrid) Dims() (c, r int) { return len(g.xs), len(g.ys) }
func (g *surfaceGrid) X(c int) float64  { return axisValue(g.xs[c], g.logX) }
func (g *surfaceGrid) Y(r int) float64  { return axisValue(g.ys[r], g.logY) }

func (g *surfaceGrid) Z(c, r int) float64 {
	if g.n == nil {
		return math.NaN()
	}
	vals, ok := g.n.Lookup(g.xs[c], g.ys[r])
	if !ok || g.col >= len(vals) {
		return math.NaN()
	}
	return vals[g.col]
}

func axisValue(v float64, log bool) float64 {
	if log {
		return math.Log10(v)
	}
	return v
}

// axisTicks labels every key at its position on the axis.
func axisTicks(keys []float64, log bool) []plot.Tick {
	ticks := make([]plot.Tick, len(keys))
	for i, k := range keys {
		ticks[i] = plot.Tick{Value: axisValue(k, log), Label: strconv.FormatFloat(k, 'g', -1, 64)}
	}
	return ticks
}

func sortedKeys(rs []benchcsv.Result, d benchmetric.Dimension) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, k := range Keys(rs, d) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Float64s(out)
	return out
}

func allPositive(xs []float64) bool {
	for _, x := range xs {
		if !(x > 0) {
			return false
		}
	}
	return true
}
