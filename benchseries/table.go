// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"io"

	"github.com/Entropy-Foundation/smr-hydrangea/benchcsv"
	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
	"github.com/Entropy-Foundation/smr-hydrangea/benchproc"
	"github.com/aclements/go-gg/table"
)

// WriteTable prints the results of every protocol in flat to w as an
// aligned text table, one row per configuration.
func WriteTable(w io.Writer, flat map[string][]benchcsv.Result, order []string, layout benchmetric.Layout) error {
	var protos []string
	var all []benchcsv.Result
	ncols := 0
	for _, proto := range benchproc.Protocols(flat, order) {
		for _, r := range flat[proto] {
			protos = append(protos, proto)
			all = append(all, r)
			if len(r.Values) > ncols {
				ncols = len(r.Values)
			}
		}
	}

	b := table.NewBuilder(nil).
		Add("protocol", protos).
		Add("nodes", Keys(all, benchmetric.Nodes)).
		Add("payload", Keys(all, benchmetric.Payload))
	formats := []string{"%s", "%g", "%g"}
	for col := 0; col < ncols; col++ {
		b.Add(layout.Metric(col).Name, Points(all, col))
		formats = append(formats, "%.2f")
	}
	return table.Fprint(w, b.Done(), formats...)
}

