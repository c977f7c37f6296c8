// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmetric

import "testing"

func TestImprovement(t *testing.T) {
	tput := Metric{Name: "tput", HigherIsBetter: true}
	lat := Metric{Name: "lat"}

	check := func(m Metric, value, base, want float64) {
		t.Helper()
		if got := m.Improvement(value, base); got != want {
			t.Errorf("%s.Improvement(%v, %v) = %v, want %v", m.Name, value, base, got, want)
		}
	}
	check(tput, 150, 100, 50)
	check(tput, 50, 100, -50)
	check(tput, 100, 100, 0)
	check(lat, 50, 100, 50)
	check(lat, 150, 100, -50)
	check(lat, 100, 100, 0)
}

func TestLayout(t *testing.T) {
	if len(Moonshot.Metrics) != 5 {
		t.Fatalf("Moonshot has %d metrics, want 5", len(Moonshot.Metrics))
	}
	for i, m := range Moonshot.Metrics {
		if m.Column != i {
			t.Errorf("metric %q has column %d, want %d", m.Name, m.Column, i)
		}
		if got := Moonshot.Metric(i); got != m {
			t.Errorf("Metric(%d) = %+v, want %+v", i, got, m)
		}
	}
	if !Moonshot.Metrics[0].HigherIsBetter {
		t.Errorf("blocks committed should be higher-is-better")
	}

	m := Moonshot.Metric(7)
	if m.HigherIsBetter || m.Column != 7 || m.Name != "column 7" {
		t.Errorf("Metric(7) = %+v, want unnamed latency column", m)
	}

	if _, ok := Moonshot.Lookup("Mean Latency to First Commit (ms)"); !ok {
		t.Errorf("Lookup failed for a known metric")
	}
	if _, ok := Moonshot.Lookup("bogus"); ok {
		t.Errorf("Lookup succeeded for an unknown metric")
	}
}

func TestDimension(t *testing.T) {
	if Nodes.Other() != Payload || Payload.Other() != Nodes {
		t.Errorf("Other is not an involution")
	}
	if got := Payload.Label(); got != "Payload Size (Bytes)" {
		t.Errorf("Payload.Label() = %q", got)
	}
	if got := Dimension(9).String(); got != "Dimension(9)" {
		t.Errorf("Dimension(9).String() = %q", got)
	}
}
