// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Entropy-Foundation/smr-hydrangea/benchcsv"
	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
	"github.com/Entropy-Foundation/smr-hydrangea/benchproc"
	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func res(nodes, payload float64, vals ...float64) benchcsv.Result {
	return benchcsv.Result{Config: benchcsv.Config{Nodes: nodes, Payload: payload}, Values: vals}
}

var flat = map[string][]benchcsv.Result{
	"narwhal-hs": {
		res(4, 180, 100, 50),
		res(4, 1800, 90, 60),
		res(10, 180, 80, 70),
		res(10, 1800, 70, 80),
	},
	"chained-moonshot": {
		res(4, 180, 150, 40),
		res(4, 1800, 140, 45),
		res(10, 180, 120, 55),
	},
}

var order = []string{"narwhal-hs", "chained-moonshot"}

func TestPoints(t *testing.T) {
	rs := flat["narwhal-hs"]
	if diff := cmp.Diff([]float64{50, 60, 70, 80}, MetricPoints(rs, benchmetric.Moonshot.Metrics[1])); diff != "" {
		t.Errorf("points differ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{180, 1800, 180, 1800}, Keys(rs, benchmetric.Payload)); diff != "" {
		t.Errorf("keys differ (-want +got):\n%s", diff)
	}
	if p := Points(rs[:1], 7); len(p) != 1 || !math.IsNaN(p[0]) {
		t.Errorf("missing column gave %v, want [NaN]", p)
	}
}

func TestCurves(t *testing.T) {
	curves := Curves(benchproc.ByPayloadThenNodes(flat), order, 0)
	type curve struct {
		Name string
		XYs  plotter.XYs
	}
	var got []curve
	for _, c := range curves {
		got = append(got, curve{c.Name, c.XYs})
	}
	want := []curve{
		{"narwhal-hs 4 Nodes", plotter.XYs{{X: 180, Y: 100}, {X: 1800, Y: 90}}},
		{"narwhal-hs 10 Nodes", plotter.XYs{{X: 180, Y: 80}, {X: 1800, Y: 70}}},
		{"chained-moonshot 4 Nodes", plotter.XYs{{X: 180, Y: 150}, {X: 1800, Y: 140}}},
		{"chained-moonshot 10 Nodes", plotter.XYs{{X: 180, Y: 120}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("curves differ (-want +got):\n%s", diff)
	}

	curves = Curves(benchproc.ByNodesThenPayload(flat), order, 1)
	if curves[0].Name != "narwhal-hs 180 Bytes" || curves[0].Inner != benchmetric.Payload {
		t.Errorf("first curve is %q over %v", curves[0].Name, curves[0].Inner)
	}
}

func TestSeriesColors(t *testing.T) {
	curves := Curves(benchproc.ByPayloadThenNodes(flat), order, 0)
	colors, err := seriesColors(curves)
	if err != nil {
		t.Fatal(err)
	}
	if len(colors) != 2 {
		t.Fatalf("got %d colours, want one per network size", len(colors))
	}
	if colors[4] == colors[10] {
		t.Errorf("network sizes share a colour")
	}

	styles := protocolStyles(curves)
	hs, ms := styles["narwhal-hs"], styles["chained-moonshot"]
	if hs.glyph == ms.glyph || cmp.Equal(hs.dashes, ms.dashes) {
		t.Errorf("protocols share a style: %+v, %+v", hs, ms)
	}
}

func TestManySeriesColors(t *testing.T) {
	var curves []*Curve
	for i := 0; i < 10; i++ {
		curves = append(curves, &Curve{Protocol: "p", Key: float64(i)})
	}
	colors, err := seriesColors(curves)
	if err != nil {
		t.Fatal(err)
	}
	if colors[0] != colors[8] {
		t.Errorf("palette did not cycle")
	}
}

func TestChart(t *testing.T) {
	curves := Curves(benchproc.ByPayloadThenNodes(flat), order, 0)
	p, err := Chart(curves, ChartConfig{X: benchmetric.Payload, YLabel: "Blocks Committed"})
	if err != nil {
		t.Fatal(err)
	}
	if p.X.Label.Text != "Payload Size (Bytes)" || p.Y.Label.Text != "Blocks Committed" {
		t.Errorf("wrong labels %q, %q", p.X.Label.Text, p.Y.Label.Text)
	}
	if _, ok := p.X.Scale.(plot.LogScale); !ok {
		t.Errorf("payload axis is not logarithmic")
	}
	if !p.Legend.Top {
		t.Errorf("legend is not at the top")
	}

	path := filepath.Join(t.TempDir(), "chart.png")
	if err := Save(p, path, 4*vg.Inch, 3*vg.Inch); err != nil {
		t.Fatal(err)
	}
	checkPNG(t, path)

	p, err = Chart(Curves(benchproc.ByNodesThenPayload(flat), order, 1), ChartConfig{X: benchmetric.Nodes})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.X.Scale.(plot.LogScale); ok {
		t.Errorf("network size axis is logarithmic")
	}
}

func TestSaveFormats(t *testing.T) {
	p, err := Chart(Curves(benchproc.ByNodesThenPayload(flat), order, 0), ChartConfig{X: benchmetric.Nodes})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, format := range Formats {
		path := filepath.Join(dir, "chart."+format)
		if err := Save(p, path, 4*vg.Inch, 3*vg.Inch); err != nil {
			t.Errorf("%s: %v", format, err)
			continue
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("%s: empty output", format)
		}
	}
	if err := Save(p, filepath.Join(dir, "chart.gif"), vg.Inch, vg.Inch); err == nil {
		t.Errorf("want error for unsupported format")
	}
}

func TestSurface(t *testing.T) {
	tput := benchmetric.Moonshot.Metrics[0]
	plots, err := Surface(flat, order, tput)
	if err != nil {
		t.Fatal(err)
	}
	if len(plots) != 2 || plots[0].Title.Text != "narwhal-hs" {
		t.Fatalf("got %d plots, first %q", len(plots), plots[0].Title.Text)
	}
	if plots[0].X.Label.Text != "Payload Size (Bytes)" {
		t.Errorf("throughput surface has x axis %q", plots[0].X.Label.Text)
	}

	lat := benchmetric.Moonshot.Metrics[1]
	plots, err = Surface(flat, order, lat)
	if err != nil {
		t.Fatal(err)
	}
	if plots[0].X.Label.Text != "Network Size (Nodes)" {
		t.Errorf("latency surface has x axis %q", plots[0].X.Label.Text)
	}
	path := filepath.Join(t.TempDir(), "surface.png")
	if err := SaveSurface(plots, path, 3*vg.Inch, 3*vg.Inch); err != nil {
		t.Fatal(err)
	}
	checkPNG(t, path)

	if _, err := Surface(flat, order, benchmetric.Metric{Name: "missing", Column: 9}); err == nil {
		t.Errorf("want error for metric without values")
	}
}

func TestSurfaceGrid(t *testing.T) {
	n := benchproc.ByNodesThenPayload(flat)["chained-moonshot"]
	g := &surfaceGrid{n: n, col: 0, xs: []float64{4, 10}, ys: []float64{180, 1800}, logY: true}
	if c, r := g.Dims(); c != 2 || r != 2 {
		t.Errorf("Dims = %d, %d", c, r)
	}
	if g.Y(1) != math.Log10(1800) {
		t.Errorf("Y(1) = %v", g.Y(1))
	}
	if g.Z(0, 1) != 140 {
		t.Errorf("Z(0, 1) = %v, want 140", g.Z(0, 1))
	}
	if !math.IsNaN(g.Z(1, 1)) {
		t.Errorf("missing configuration gave %v, want NaN", g.Z(1, 1))
	}
}

func TestWriteCSV(t *testing.T) {
	curves := Curves(benchproc.ByPayloadThenNodes(flat), order, 0)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, benchmetric.Payload, curves); err != nil {
		t.Fatal(err)
	}
	want := `Payload Size (Bytes),narwhal-hs 4 Nodes,narwhal-hs 10 Nodes,chained-moonshot 4 Nodes,chained-moonshot 10 Nodes
180,100,80,150,120
1800,90,70,140,
`
	if got := buf.String(); got != want {
		t.Errorf("want:\n%sgot:\n%s", want, got)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	layout := benchmetric.Layout{Metrics: []benchmetric.Metric{{Name: "tput", Column: 0}, {Name: "lat", Column: 1}}}
	if err := WriteTable(&buf, flat, order, layout); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := [][]string{
		{"protocol", "nodes", "payload", "tput", "lat"},
		{"narwhal-hs", "4", "180", "100.00", "50.00"},
		{"narwhal-hs", "4", "1800", "90.00", "60.00"},
		{"narwhal-hs", "10", "180", "80.00", "70.00"},
		{"narwhal-hs", "10", "1800", "70.00", "80.00"},
		{"chained-moonshot", "4", "180", "150.00", "40.00"},
		{"chained-moonshot", "4", "1800", "140.00", "45.00"},
		{"chained-moonshot", "10", "180", "120.00", "55.00"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, line := range lines {
		if got := strings.Join(strings.Fields(line), " "); got != strings.Join(want[i], " ") {
			t.Errorf("line %d: want %q, got %q", i, want[i], got)
		}
	}
}

func checkPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.DecodeConfig(f); err != nil {
		t.Errorf("%s: %v", path, err)
	}
}
