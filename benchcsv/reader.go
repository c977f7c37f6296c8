// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv reads consensus benchmark results in CSV form and
// averages repeated runs of each benchmark configuration.
//
// A result file starts with a header row. Every following row is one
// benchmark run: column 0 is the network size, column 1 the payload
// size, and the remaining columns are observations. Numbers may
// contain "," thousands separators.
//
// Consecutive rows with the same first two columns are repeated runs
// of one configuration and are averaged together. Rows are never
// sorted: if a configuration reappears after a different one, it
// starts a new group.
package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// A Reader reads averaged configurations from a CSV result file.
//
// Its API is modeled on bufio.Scanner. The Result returned by Result
// is only valid until the next call to Scan; a caller should Clone
// anything it needs to retain.
type Reader struct {
	csv      *csv.Reader
	fileName string
	ignore   map[int]bool
	err      error

	started bool
	done    bool
	columns []string // retained header names
	keep    []int    // raw column index of each retained column

	// The group currently being accumulated. samples[i] holds
	// the observations of retained column i.
	key     [2]string
	config  Config
	samples [][]float64
	n       int

	result Result
}

// A SyntaxError represents a malformed row in a result file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader returns a Reader that averages the results in r. Raw
// column indexes listed in ignore are skipped. fileName is used in
// error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string, ignore []int) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	reader := &Reader{csv: cr, fileName: fileName, ignore: make(map[int]bool)}
	for _, col := range ignore {
		reader.ignore[col] = true
	}
	return reader
}

// Columns returns the header names of the averaged columns, in the
// order of Result.Values. It is nil until the first call to Scan.
func (r *Reader) Columns() []string {
	return r.columns
}

// Scan advances to the next averaged configuration and reports
// whether there was one. If Scan reaches the end of the input or
// encounters an error, it returns false, and the caller should use
// Err to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil || r.done {
		return false
	}
	if !r.started {
		r.started = true
		if !r.readHeader() {
			r.done = true
			return false
		}
	}

	for {
		rec, err := r.csv.Read()
		if err == io.EOF {
			r.done = true
			return r.finish()
		}
		if err != nil {
			r.setErr(err)
			return false
		}
		line, _ := r.csv.FieldPos(0)

		vals := make([]float64, len(r.keep))
		for i, col := range r.keep {
			v, err := ParseFloat(rec[col])
			if err != nil {
				r.err = &SyntaxError{r.fileName, line, fmt.Sprintf("column %d: %s", col, err)}
				return false
			}
			vals[i] = v
		}

		key := [2]string{rec[0], rec[1]}
		flushed := false
		if r.n > 0 && key != r.key {
			flushed = r.finish()
		}
		if r.n == 0 {
			if !r.start(key, line) {
				return false
			}
		}
		for i, v := range vals {
			r.samples[i] = append(r.samples[i], v)
		}
		r.n++
		if flushed {
			return true
		}
	}
}

// start begins a new group for configuration key, read on line.
func (r *Reader) start(key [2]string, line int) bool {
	nodes, err := ParseFloat(key[0])
	if err != nil {
		r.err = &SyntaxError{r.fileName, line, fmt.Sprintf("network size: %s", err)}
		return false
	}
	payload, err := ParseFloat(key[1])
	if err != nil {
		r.err = &SyntaxError{r.fileName, line, fmt.Sprintf("payload size: %s", err)}
		return false
	}
	r.key = key
	r.config = Config{Nodes: nodes, Payload: payload}
	if r.samples == nil {
		r.samples = make([][]float64, len(r.keep))
	}
	for i := range r.samples {
		r.samples[i] = r.samples[i][:0]
	}
	return true
}

// readHeader consumes the header row and computes the retained
// columns. It reports false if there is nothing to average.
func (r *Reader) readHeader() bool {
	header, err := r.csv.Read()
	if err != nil {
		if err != io.EOF {
			r.setErr(err)
		}
		return false
	}
	ignored := IgnoredColumns(r.ignoreList(), len(header))
	if len(header)-2-len(ignored) < 1 {
		return false
	}
	for col := 2; col < len(header); col++ {
		if r.ignore[col] {
			continue
		}
		r.keep = append(r.keep, col)
		r.columns = append(r.columns, header[col])
	}
	return true
}

// finish turns the accumulated group into r.result and reports
// whether there was a group.
func (r *Reader) finish() bool {
	if r.n == 0 {
		return false
	}
	r.result.Config = r.config
	r.result.Values = r.result.Values[:0]
	for _, xs := range r.samples {
		r.result.Values = append(r.result.Values, stats.Mean(xs))
	}
	r.n = 0
	return true
}

func (r *Reader) ignoreList() []int {
	cols := make([]int, 0, len(r.ignore))
	for col := range r.ignore {
		cols = append(cols, col)
	}
	return cols
}

func (r *Reader) setErr(err error) {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		r.err = &SyntaxError{r.fileName, pe.Line, pe.Err.Error()}
		return
	}
	r.err = fmt.Errorf("%s: %w", r.fileName, err)
}

// Result returns the configuration read by the last call to Scan.
func (r *Reader) Result() *Result {
	return &r.result
}

// Err returns the first error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

// ParseFloat parses a number that may contain "," thousands
// separators.
func ParseFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// ParseAverages reads the result file at path and returns the average
// of each group of consecutive rows with the same configuration.
// Raw column indexes listed in ignore are not averaged.
//
// Files that do not have a ".csv" extension yield no results. A
// malformed number anywhere in the file is an error, in which case no
// results are returned.
func ParseAverages(path string, ignore []int) ([]Result, error) {
	if !strings.HasSuffix(path, ".csv") {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Result
	r := NewReader(f, path, ignore)
	for r.Scan() {
		out = append(out, *r.Result().Clone())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// IgnoredColumns returns the sorted, de-duplicated raw column indexes
// of ignore that fall in the metric range of a file with ncols columns.
func IgnoredColumns(ignore []int, ncols int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, col := range ignore {
		if col >= 2 && col < ncols && !seen[col] {
			seen[col] = true
			out = append(out, col)
		}
	}
	sort.Ints(out)
	return out
}
