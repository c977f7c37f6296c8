// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const cosπover4 = vg.Length(.707106781202420)

// crossGlyph draws a heavy X.
type crossGlyph struct{}

// DrawGlyph implements the Glyph interface.
func (crossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1.5)})
	r := sty.Radius * cosπover4
	var p vg.Path
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
	c.Stroke(p)
}

// triGlyph draws an open triangle with a bar through its middle,
// pointing up or down.
type triGlyph struct {
	down bool
}

// DrawGlyph implements the Glyph interface.
func (g triGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1)})
	r := sty.Radius * cosπover4
	tip, base := pt.Y+r, pt.Y-r
	if g.down {
		tip, base = base, tip
	}
	var p vg.Path
	p.Move(vg.Point{X: pt.X - r, Y: base})
	p.Line(vg.Point{X: pt.X, Y: tip})
	p.Line(vg.Point{X: pt.X + r, Y: base})
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	c.Stroke(p)
}
