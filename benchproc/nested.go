// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"sort"

	"github.com/Entropy-Foundation/smr-hydrangea/benchcsv"
	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
)

// A Nested is a two-level lookup table of metric values, keyed first
// by one configuration dimension and then by the other.
type Nested struct {
	// Outer and Inner are the dimensions of the first and second
	// level keys.
	Outer, Inner benchmetric.Dimension

	keys   []float64
	groups map[float64]*group
}

type group struct {
	keys   []float64
	values map[float64][]float64
}

// NewNested returns an empty Nested keyed by outer, then inner.
func NewNested(outer, inner benchmetric.Dimension) *Nested {
	return &Nested{Outer: outer, Inner: inner, groups: make(map[float64]*group)}
}

// Add files the values of r under its outer and inner keys. If there
// are already values for that pair of keys, they are replaced, but
// the keys keep their original position.
func (n *Nested) Add(r benchcsv.Result) {
	k1, k2 := r.Config.Get(n.Outer), r.Config.Get(n.Inner)
	g, ok := n.groups[k1]
	if !ok {
		g = &group{values: make(map[float64][]float64)}
		n.groups[k1] = g
		n.keys = append(n.keys, k1)
	}
	if _, ok := g.values[k2]; !ok {
		g.keys = append(g.keys, k2)
	}
	g.values[k2] = r.Values
}

// Keys returns the outer keys of n in the order they were first
// added.
func (n *Nested) Keys() []float64 {
	return n.keys
}

// InnerKeys returns the inner keys filed under outer key k1, in the
// order they were first added.
func (n *Nested) InnerKeys(k1 float64) []float64 {
	if g, ok := n.groups[k1]; ok {
		return g.keys
	}
	return nil
}

// Lookup returns the values filed under k1, k2.
func (n *Nested) Lookup(k1, k2 float64) ([]float64, bool) {
	g, ok := n.groups[k1]
	if !ok {
		return nil, false
	}
	vals, ok := g.values[k2]
	return vals, ok
}

// Len returns the number of (outer, inner) pairs in n.
func (n *Nested) Len() int {
	l := 0
	for _, g := range n.groups {
		l += len(g.keys)
	}
	return l
}

// Flatten returns the contents of n as a list of results, in key
// order. If the results n was built from had unique configurations,
// Flatten returns the same set of results.
func (n *Nested) Flatten() []benchcsv.Result {
	out := make([]benchcsv.Result, 0, n.Len())
	for _, k1 := range n.keys {
		g := n.groups[k1]
		for _, k2 := range g.keys {
			var cfg benchcsv.Config
			cfg = cfg.With(n.Outer, k1).With(n.Inner, k2)
			out = append(out, benchcsv.Result{Config: cfg, Values: g.values[k2]})
		}
	}
	return out
}

// MapBy groups the results of every protocol in flat by outer, then
// inner. Results with the same pair of keys within one protocol
// overwrite each other; the last one wins.
func MapBy(flat map[string][]benchcsv.Result, outer, inner benchmetric.Dimension) map[string]*Nested {
	out := make(map[string]*Nested, len(flat))
	for proto, rs := range flat {
		n := NewNested(outer, inner)
		for _, r := range rs {
			n.Add(r)
		}
		out[proto] = n
	}
	return out
}

// ByNodesThenPayload groups results by network size, then payload
// size.
func ByNodesThenPayload(flat map[string][]benchcsv.Result) map[string]*Nested {
	return MapBy(flat, benchmetric.Nodes, benchmetric.Payload)
}

// ByPayloadThenNodes groups results by payload size, then network
// size.
func ByPayloadThenNodes(flat map[string][]benchcsv.Result) map[string]*Nested {
	return MapBy(flat, benchmetric.Payload, benchmetric.Nodes)
}

// Select returns the entries of m whose keys are in names.
func Select[V any](m map[string]V, names ...string) map[string]V {
	out := make(map[string]V)
	for _, name := range names {
		if v, ok := m[name]; ok {
			out[name] = v
		}
	}
	return out
}

// Protocols returns the keys of m, ordered as in order. Keys of m
// that do not appear in order follow in sorted order.
func Protocols[V any](m map[string]V, order []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, name := range order {
		if _, ok := m[name]; ok && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	var rest []string
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
