// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
)

// WriteCSV writes curves to out as CSV. The first column holds the
// x values, labeled by x; every other column holds one curve. Points
// missing from a curve are left empty.
func WriteCSV(out io.Writer, x benchmetric.Dimension, curves []*Curve) error {
	hdr := []string{x.Label()}
	var xs []float64
	row := make(map[float64]int)
	for _, c := range curves {
		hdr = append(hdr, c.Name)
		for _, xy := range c.XYs {
			if _, ok := row[xy.X]; !ok {
				row[xy.X] = len(xs)
				xs = append(xs, xy.X)
			}
		}
	}

	tab := [][]string{hdr}
	for _, v := range xs {
		tab = append(tab, append([]string{strof(v)}, make([]string, len(curves))...))
	}
	for i, c := range curves {
		for _, xy := range c.XYs {
			tab[1+row[xy.X]][1+i] = strof(xy.Y)
		}
	}

	csvw := csv.NewWriter(out)
	return csvw.WriteAll(tab)
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
