// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
)

// A Config is a benchmark configuration: one network size and one
// payload size.
type Config struct {
	Nodes   float64
	Payload float64
}

// Get returns the value of dimension d of c.
func (c Config) Get(d benchmetric.Dimension) float64 {
	if d == benchmetric.Payload {
		return c.Payload
	}
	return c.Nodes
}

// With returns a copy of c with dimension d set to v.
func (c Config) With(d benchmetric.Dimension, v float64) Config {
	if d == benchmetric.Payload {
		c.Payload = v
	} else {
		c.Nodes = v
	}
	return c
}

func (c Config) String() string {
	return fmt.Sprintf("%s/%s", formatKey(c.Nodes), formatKey(c.Payload))
}

func formatKey(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// A Result is the averaged outcome of one benchmark configuration.
//
// The same shape is used for improvement records, in which case
// Values holds percentage improvements over a baseline rather than
// averages.
type Result struct {
	Config Config

	// Values holds one value per metric column, in column order.
	Values []float64
}

// Clone makes a copy of r that shares no state with r.
func (r *Result) Clone() *Result {
	r2 := &Result{Config: r.Config}
	r2.Values = append([]float64(nil), r.Values...)
	return r2
}

func (r *Result) String() string {
	var buf strings.Builder
	buf.WriteString(r.Config.String())
	for _, v := range r.Values {
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return buf.String()
}

// ScalePayload returns copies of rs with every payload size
// multiplied by factor. Result files record payloads as a number of
// items; scaling by the item size converts them to bytes.
func ScalePayload(rs []Result, factor float64) []Result {
	out := make([]Result, len(rs))
	for i := range rs {
		out[i] = *rs[i].Clone()
		out[i].Config.Payload *= factor
	}
	return out
}
