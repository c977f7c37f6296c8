// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"sort"
)

// A SortFunc abstracts the sorting interface to compare two rows of a Table
type SortFunc func(*Table, int, int) bool

// ByConfig sorts tables by network size, then payload size.
func ByConfig(t *Table, i, j int) bool {
	ci, cj := t.Rows[i].Config, t.Rows[j].Config
	if ci.Nodes != cj.Nodes {
		return ci.Nodes < cj.Nodes
	}
	return ci.Payload < cj.Payload
}

// ByDelta sorts tables by improvement, worst first.
func ByDelta(t *Table, i, j int) bool {
	return t.Rows[i].PctDelta < t.Rows[j].PctDelta
}

// ByChange sorts tables by the unprinted Change column which indicates
// whether a delta is negative, zero, or positive
func ByChange(t *Table, i, j int) bool {
	return t.Rows[i].Change < t.Rows[j].Change
}

// SortReverse returns a SortFunc that is the reverse of the input SortFunc
func SortReverse(sortFunc SortFunc) SortFunc {
	return func(t *Table, i, j int) bool { return sortFunc(t, j, i) }
}

// SortTable sorts a Table t (in place) by the given SortFunc
func SortTable(t *Table, sortFunc SortFunc) {
	sort.SliceStable(t.Rows, func(i, j int) bool { return sortFunc(t, i, j) })
}
