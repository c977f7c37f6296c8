// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"sort"
	"testing"

	"github.com/Entropy-Foundation/smr-hydrangea/benchcsv"
	"github.com/Entropy-Foundation/smr-hydrangea/benchmetric"
	"github.com/google/go-cmp/cmp"
)

func res(nodes, payload float64, vals ...float64) benchcsv.Result {
	return benchcsv.Result{Config: benchcsv.Config{Nodes: nodes, Payload: payload}, Values: vals}
}

var flat = map[string][]benchcsv.Result{
	"a": {
		res(10, 100, 1, 2),
		res(10, 200, 3, 4),
		res(20, 100, 5, 6),
		res(20, 200, 7, 8),
	},
	"b": {
		res(20, 200, 9, 9),
		res(10, 100, 8, 8),
	},
}

func TestMapBy(t *testing.T) {
	byNodes := ByNodesThenPayload(flat)
	a := byNodes["a"]
	if diff := cmp.Diff([]float64{10, 20}, a.Keys()); diff != "" {
		t.Errorf("outer keys differ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 200}, a.InnerKeys(10)); diff != "" {
		t.Errorf("inner keys differ (-want +got):\n%s", diff)
	}
	if vals, ok := a.Lookup(20, 100); !ok || !cmp.Equal(vals, []float64{5, 6}) {
		t.Errorf("Lookup(20, 100) = %v, %v", vals, ok)
	}
	if _, ok := a.Lookup(30, 100); ok {
		t.Errorf("Lookup of missing outer key succeeded")
	}
	if _, ok := a.Lookup(10, 300); ok {
		t.Errorf("Lookup of missing inner key succeeded")
	}

	// Keys keep first-seen order.
	if diff := cmp.Diff([]float64{20, 10}, byNodes["b"].Keys()); diff != "" {
		t.Errorf("b outer keys differ (-want +got):\n%s", diff)
	}

	byPayload := ByPayloadThenNodes(flat)
	a = byPayload["a"]
	if a.Outer != benchmetric.Payload || a.Inner != benchmetric.Nodes {
		t.Errorf("wrong dimensions %v, %v", a.Outer, a.Inner)
	}
	if diff := cmp.Diff([]float64{100, 200}, a.Keys()); diff != "" {
		t.Errorf("outer keys differ (-want +got):\n%s", diff)
	}
	if vals, ok := a.Lookup(200, 10); !ok || !cmp.Equal(vals, []float64{3, 4}) {
		t.Errorf("Lookup(200, 10) = %v, %v", vals, ok)
	}
}

func TestLastWriteWins(t *testing.T) {
	m := MapBy(map[string][]benchcsv.Result{
		"p": {res(1, 1, 1), res(1, 2, 2), res(1, 1, 3)},
	}, benchmetric.Nodes, benchmetric.Payload)
	n := m["p"]
	if n.Len() != 2 {
		t.Errorf("Len = %d, want 2", n.Len())
	}
	if vals, _ := n.Lookup(1, 1); !cmp.Equal(vals, []float64{3}) {
		t.Errorf("Lookup(1, 1) = %v, want [3]", vals)
	}
	if diff := cmp.Diff([]float64{1, 2}, n.InnerKeys(1)); diff != "" {
		t.Errorf("overwritten key moved (-want +got):\n%s", diff)
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	sortResults := cmp.Transformer("sort", func(in []benchcsv.Result) []benchcsv.Result {
		out := append([]benchcsv.Result(nil), in...)
		sort.Slice(out, func(i, j int) bool {
			if out[i].Config.Nodes != out[j].Config.Nodes {
				return out[i].Config.Nodes < out[j].Config.Nodes
			}
			return out[i].Config.Payload < out[j].Config.Payload
		})
		return out
	})
	for _, m := range []map[string]*Nested{ByNodesThenPayload(flat), ByPayloadThenNodes(flat)} {
		for proto, n := range m {
			if diff := cmp.Diff(flat[proto], n.Flatten(), sortResults); diff != "" {
				t.Errorf("%s: round trip differs (-want +got):\n%s", proto, diff)
			}
		}
	}
}

func TestSelect(t *testing.T) {
	got := Select(flat, "b", "missing")
	if len(got) != 1 || len(got["b"]) != 2 {
		t.Errorf("Select = %v", got)
	}
}

func TestProtocols(t *testing.T) {
	m := map[string]int{"x": 1, "c": 2, "a": 3, "b": 4}
	got := Protocols(m, []string{"b", "missing", "x"})
	if diff := cmp.Diff([]string{"b", "x", "a", "c"}, got); diff != "" {
		t.Errorf("Protocols differs (-want +got):\n%s", diff)
	}
}
