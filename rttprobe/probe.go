// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rttprobe measures the round-trip time to a set of hosts and
// orders them from farthest to nearest.
//
// Hosts are probed one at a time, and the probes to a host are sent
// one after another with a fixed delay between them. A host that
// answers none of its probes is unreachable and is treated as
// infinitely far away.
package rttprobe

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	logging "github.com/ipfs/go-log/v2"
)

var logger = logging.Logger("rttprobe")

// A Pinger sends a single echo request to host and waits up to
// timeout for the reply.
type Pinger interface {
	Ping(ctx context.Context, host string, timeout time.Duration) (time.Duration, error)
}

// Default probe parameters.
const (
	DefaultCount   = 5
	DefaultTimeout = time.Second
	DefaultDelay   = 200 * time.Millisecond
)

// A Prober measures average round-trip times with a Pinger.
type Prober struct {
	Pinger Pinger

	// Count is the number of probes sent to each host.
	Count int
	// Timeout bounds the wait for each reply.
	Timeout time.Duration
	// Delay is the pause after each probe.
	Delay time.Duration
}

// NewProber returns a Prober using pinger with the default probe
// parameters.
func NewProber(pinger Pinger) *Prober {
	return &Prober{
		Pinger:  pinger,
		Count:   DefaultCount,
		Timeout: DefaultTimeout,
		Delay:   DefaultDelay,
	}
}

// A Result is the outcome of probing one host.
type Result struct {
	Host string

	// RTT is the mean round-trip time of the answered probes, in
	// milliseconds, or +Inf if no probe was answered.
	RTT float64

	// Replies is the number of answered probes.
	Replies int
}

// Reachable reports whether any probe to the host was answered.
func (r Result) Reachable() bool {
	return !math.IsInf(r.RTT, 1)
}

func (r Result) String() string {
	if !r.Reachable() {
		return fmt.Sprintf("%-35s - Unreachable", r.Host)
	}
	return fmt.Sprintf("%-35s - Avg RTT: %.2f ms", r.Host, r.RTT)
}

// Probe sends p.Count probes to host and returns their average
// round-trip time. Failed probes are logged and otherwise ignored.
// Probe only returns an error if ctx is done.
func (p *Prober) Probe(ctx context.Context, host string) (Result, error) {
	res := Result{Host: host, RTT: math.Inf(1)}
	var sum float64
	for i := 0; i < p.Count; i++ {
		rtt, err := p.Pinger.Ping(ctx, host, p.Timeout)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			logger.Debugf("probe %d to %s: %s", i, host, err)
		} else {
			sum += float64(rtt) / float64(time.Millisecond)
			res.Replies++
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return res, err
		}
	}
	if res.Replies > 0 {
		res.RTT = sum / float64(res.Replies)
	}
	logger.Infof("%s: %d/%d replies, rtt %.2f ms", host, res.Replies, p.Count, res.RTT)
	return res, nil
}

// ProbeAll probes every host in turn and returns the results in the
// order of hosts.
func (p *Prober) ProbeAll(ctx context.Context, hosts []string) ([]Result, error) {
	out := make([]Result, 0, len(hosts))
	for _, host := range hosts {
		res, err := p.Probe(ctx, host)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

// SortFarthestFirst sorts rs by decreasing round-trip time.
// Unreachable hosts come first. Hosts with equal round-trip times
// keep their relative order.
func SortFarthestFirst(rs []Result) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].RTT > rs[j].RTT
	})
}

// Hosts returns the host of every result, in order.
func Hosts(rs []Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Host
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
