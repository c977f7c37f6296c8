// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatText appends a fixed-width text formatting of the tables to buf.
func FormatText(buf *bytes.Buffer, tables []*Table) {
	var textTables [][]*textRow
	for _, t := range tables {
		textTables = append(textTables, toText(t))
	}

	var max []int
	for _, table := range textTables {
		for _, row := range table {
			for len(max) < len(row.cols) {
				max = append(max, 0)
			}
			for i, s := range row.cols {
				n := utf8.RuneCountInString(s)
				if max[i] < n {
					max[i] = n
				}
			}
		}
	}

	for i, table := range textTables {
		if i > 0 {
			fmt.Fprintf(buf, "\n")
		}

		// headings
		row := table[0]
		for i, s := range row.cols {
			switch i {
			case 0:
				fmt.Fprintf(buf, "%-*s", max[i], s)
			default:
				fmt.Fprintf(buf, "  %-*s", max[i], s)
			case len(row.cols) - 1:
				fmt.Fprintf(buf, "  %s\n", s)
			}
		}

		// data
		for _, row := range table[1:] {
			for i, s := range row.cols {
				switch i {
				case 0:
					fmt.Fprintf(buf, "%-*s", max[i], s)
				default:
					fmt.Fprintf(buf, "  %*s", max[i], s)
				}
			}
			fmt.Fprintf(buf, "\n")
		}
	}
}

// A textRow is a row of printed text columns.
type textRow struct {
	cols []string
}

func newTextRow(cols ...string) *textRow {
	return &textRow{cols: cols}
}

// toText converts the Table to a textual grid of cells,
// which can then be printed in fixed-width output.
func toText(t *Table) []*textRow {
	textRows := []*textRow{
		newTextRow("nodes/payload", t.Baseline, t.Protocol, "delta "+t.Metric.Name),
	}
	for _, row := range t.Rows {
		delta := row.Delta
		if delta == "~" {
			delta = "~   "
		}
		textRows = append(textRows, newTextRow(
			row.Config.String(), row.Scaler(row.Old), row.Scaler(row.New), delta))
	}
	return textRows
}

// FormatCSV writes the tables to w in CSV form, one row per protocol,
// metric and configuration.
func FormatCSV(w io.Writer, tables []*Table) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"protocol", "metric", "nodes", "payload", "baseline", "value", "improvement %"})
	f := func(x float64) string {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	for _, t := range tables {
		for _, row := range t.Rows {
			cw.Write([]string{t.Protocol, t.Metric.Name, f(row.Config.Nodes), f(row.Config.Payload), f(row.Old), f(row.New), f(row.PctDelta)})
		}
	}
	cw.Flush()
	return cw.Error()
}

var htmlTemplate = template.Must(template.New("").Funcs(htmlFuncs).Parse(`
{{- range $i, $table := . -}}
<table class='benchstat'>
<tbody>
<tr><th>{{.Metric.Name}}<th>{{.Baseline}}<th>{{.Protocol}}<th>delta
{{range $row := $table.Rows -}}
<tr class='{{if eq .Change 1}}better{{else if eq .Change -1}}worse{{else}}unchanged{{end}}'><td>{{.Config}}<td>{{call .Scaler .Old}}<td>{{call .Scaler .New}}<td class='{{if eq .Delta "~"}}nodelta{{else}}delta{{end}}'>{{replace .Delta "-" "−" -1}}
{{end -}}
</tbody>
</table>
{{end -}}
`))

var htmlFuncs = template.FuncMap{
	"replace": strings.Replace,
}

// FormatHTML appends an HTML formatting of the tables to buf.
func FormatHTML(buf *bytes.Buffer, tables []*Table) {
	err := htmlTemplate.Execute(buf, tables)
	if err != nil {
		// Only possible errors here are template not matching data structure.
		// Don't make caller check - it's our fault.
		panic(err)
	}
}
