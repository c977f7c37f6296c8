// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Moonplot charts consensus benchmark results.
//
// Usage:
//
//	moonplot [options]
//
// Moonplot reads one result file per protocol, named <protocol>.csv,
// from the -root directory. Each file is a CSV table with a header
// row. Every other row is one benchmark run: network size, payload
// size in items, timeout, run time, then the measured metrics.
// Consecutive runs of the same configuration are averaged, and payload
// sizes are converted to bytes using -payload-item-size.
//
// For every metric, moonplot renders five images to the -o directory:
//
//	<metric>-surface          the metric over both dimensions, one heat map per protocol
//	<metric>-by-payload       averages against payload size, one curve per network size
//	<metric>-by-nodes         averages against network size, one curve per payload size
//	<metric>-improvement-by-payload
//	<metric>-improvement-by-nodes
//	                          percentage improvement over the -baseline protocol
//
// The average charts include only the protocols listed in -plot. The
// surfaces and improvement charts include every protocol that has a
// result file.
//
// Moonplot also prints a table comparing every protocol against the
// baseline, in the form selected by -report: text, csv, html, or none.
// The -sort option orders the rows of that table: config, delta,
// change, or none; a leading "-" reverses the order.
//
// Protocols without a result file are skipped with a warning. If no
// protocol has one, moonplot does nothing.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
	"github.com/Entropy-Foundation/smr-hydrangea/benchseries"
	"github.com/Entropy-Foundation/smr-hydrangea/benchstat"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: moonplot [options]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagRoot          = flag.String("root", "../moonshot_results/m5-large", "read result files from `dir`")
	flagProtocols     = flag.String("protocols", "chained-moonshot,commit-moonshot,narwhal-hs,simple-moonshot", "comma-separated `protocols` to read")
	flagPlot          = flag.String("plot", "chained-moonshot,commit-moonshot,narwhal-hs", "comma-separated `protocols` to include in average charts")
	flagBaseline      = flag.String("baseline", "narwhal-hs", "compare against `protocol`")
	flagBaselineLabel = flag.String("baseline-label", "Jolteon", "name the baseline `label` in chart axes")
	flagItemSize      = flag.Float64("payload-item-size", benchmetric.PayloadItemSize, "size of one payload item in `bytes`")
	flagOut           = flag.String("o", ".", "write images to `dir`")
	flagFormat        = flag.String("format", "png", "image `format`: png, svg, or pdf")
	flagCSV           = flag.Bool("csv", false, "also write the data of every chart as CSV")
	flagTable         = flag.Bool("table", false, "print the averages of every protocol")
	flagReport        = flag.String("report", "text", "print the comparison as `form`: text, csv, html, or none")
	flagSort          = flag.String("sort", "none", "sort the comparison by `order`: [-]config, [-]delta, [-]change, none")
)

var sortNames = map[string]benchstat.SortFunc{
	"none":   nil,
	"config": benchstat.ByConfig,
	"delta":  benchstat.ByDelta,
	"change": benchstat.ByChange,
}

var reportNames = map[string]bool{"text": true, "csv": true, "html": true, "none": true}

func main() {
	log.SetPrefix("moonplot: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
	}

	sortName := *flagSort
	reverse := false
	if strings.HasPrefix(sortName, "-") {
		reverse = true
		sortName = sortName[1:]
	}
	order, ok := sortNames[sortName]
	if !ok || !reportNames[*flagReport] || !validFormat(*flagFormat) {
		flag.Usage()
	}
	if order != nil && reverse {
		order = benchstat.SortReverse(order)
	}

	cfg := &config{
		root:          *flagRoot,
		protocols:     splitList(*flagProtocols),
		plot:          splitList(*flagPlot),
		baseline:      *flagBaseline,
		baselineLabel: *flagBaselineLabel,
		itemSize:      *flagItemSize,
		layout:        benchmetric.Moonshot,
		outDir:        *flagOut,
		format:        *flagFormat,
		csv:           *flagCSV,
		table:         *flagTable,
		report:        *flagReport,
		order:         order,
	}
	if err := moonplot(os.Stdout, os.Stderr, cfg); err != nil {
		log.Fatal(err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func validFormat(format string) bool {
	for _, f := range benchseries.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// writeReport prints the comparison tables to w.
func writeReport(w io.Writer, tables []*benchstat.Table, form string) error {
	var buf bytes.Buffer
	switch form {
	case "none":
		return nil
	case "csv":
		if err := benchstat.FormatCSV(&buf, tables); err != nil {
			return err
		}
	case "html":
		buf.WriteString(htmlHeader)
		benchstat.FormatHTML(&buf, tables)
		buf.WriteString(htmlFooter)
	default:
		benchstat.FormatText(&buf, tables)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Performance Result Comparison</title>
<style>
.benchstat { border-collapse: collapse; }
.benchstat th:nth-child(1) { text-align: left; }
.benchstat tbody td:nth-child(1n+2):not(.note) { text-align: right; padding: 0em 1em; }
.benchstat tr:not(.configs) th { border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
.benchstat .nodelta { text-align: center !important; }
.benchstat .better td.delta { font-weight: bold; }
.benchstat .worse td.delta { font-weight: bold; color: #c00; }
</style>
</head>
<body>
`

var htmlFooter = `</body>
</html>
`
