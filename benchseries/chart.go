// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"image/color"

	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default chart size.
const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
)

const pointRad = 3

// A ChartConfig describes the axes of a chart.
type ChartConfig struct {
	Title string

	// X is the dimension along the x axis, that is, the outer
	// dimension of the curves. Payload sizes are drawn on a
	// logarithmic scale.
	X benchmetric.Dimension

	YLabel string
}

// A style is the line style and glyph of one protocol.
type style struct {
	dashes []vg.Length
	glyph  draw.GlyphDrawer
}

var lineDashes = [][]vg.Length{
	nil,
	{vg.Points(6), vg.Points(3)},
	{vg.Points(1.5), vg.Points(2)},
	{vg.Points(6), vg.Points(2), vg.Points(1.5), vg.Points(2)},
}

var glyphs = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.SquareGlyph{},
	draw.TriangleGlyph{},
	draw.PyramidGlyph{},
	crossGlyph{},
	triGlyph{down: true},
	draw.RingGlyph{},
	triGlyph{},
}

// Chart draws curves as a line chart.
func Chart(curves []*Curve, cfg ChartConfig) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.X.Label()
	p.Y.Label.Text = cfg.YLabel
	if cfg.X == benchmetric.Payload && positiveX(curves) {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{}
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	colors, err := seriesColors(curves)
	if err != nil {
		return nil, err
	}
	styles := protocolStyles(curves)
	for _, c := range curves {
		if len(c.XYs) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(c.XYs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
		st := styles[c.Protocol]
		line.LineStyle.Color = colors[c.Key]
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Dashes = st.dashes
		points.GlyphStyle.Color = colors[c.Key]
		points.GlyphStyle.Shape = st.glyph
		points.GlyphStyle.Radius = vg.Points(pointRad)
		p.Add(line, points)
		p.Legend.Add(c.Name, line, points)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// Save renders p to path. The image format is taken from the
// extension of path.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	return writeImage(path, width, height, func(dc draw.Canvas) {
		p.Draw(dc)
	})
}

func positiveX(curves []*Curve) bool {
	for _, c := range curves {
		for _, xy := range c.XYs {
			if !(xy.X > 0) {
				return false
			}
		}
	}
	return true
}

// seriesColors assigns one colour per inner key, in order of first
// appearance, so the same network or payload size has the same colour
// in every protocol. Colours are reused once the palette runs out.
func seriesColors(curves []*Curve) (map[float64]color.Color, error) {
	var keys []float64
	out := make(map[float64]color.Color)
	for _, c := range curves {
		if _, ok := out[c.Key]; !ok {
			out[c.Key] = nil
			keys = append(keys, c.Key)
		}
	}
	if len(keys) == 0 {
		return out, nil
	}

	n := len(keys)
	if n < 3 {
		n = 3
	} else if n > 8 {
		n = 8
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Dark2", n)
	if err != nil {
		return nil, err
	}
	colors := pal.Colors()
	for i, k := range keys {
		out[k] = colors[i%len(colors)]
	}
	return out, nil
}

// protocolStyles assigns one line style and glyph per protocol, in
// order of first appearance.
func protocolStyles(curves []*Curve) map[string]style {
	out := make(map[string]style)
	for _, c := range curves {
		if _, ok := out[c.Protocol]; ok {
			continue
		}
		i := len(out)
		out[c.Protocol] = style{
			dashes: lineDashes[i%len(lineDashes)],
			glyph:  glyphs[i%len(glyphs)],
		}
	}
	return out
}
