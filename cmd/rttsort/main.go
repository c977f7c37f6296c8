// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rttsort orders hosts by their network distance, farthest first.
//
// Usage:
//
//	rttsort [-v] [-privileged] [-count n] [-timeout d] [-delay d] '["host1", "host2", ...]'
//
// Rttsort takes a single argument, a JSON array of host names or
// addresses. It sends a few ICMP echo requests to each host in turn,
// and prints the hosts on standard output as a JSON array ordered by
// decreasing average round-trip time. Hosts that answer none of their
// probes are unreachable and come first.
//
// If the argument is missing or is not a JSON array of strings,
// rttsort prints a one-line error on standard output. It exits with
// status 2 if the argument is missing and 1 for any other error.
//
// The -v flag prints the round-trip time of every host to standard
// error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Entropy-Foundation/smr-hydrangea/rttprobe"
)

var exit = os.Exit // replaced during testing

// newPinger returns the Pinger used for probes. It is replaced
// during testing.
var newPinger = func(privileged bool) rttprobe.Pinger {
	return &rttprobe.ICMPPinger{Privileged: privileged}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: rttsort [options] '[\"host\", ...]'\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagVerbose    = flag.Bool("v", false, "print the round-trip time of every host to standard error")
	flagPrivileged = flag.Bool("privileged", false, "use raw ICMP sockets")
	flagCount      = flag.Int("count", rttprobe.DefaultCount, "send `n` probes to each host")
	flagTimeout    = flag.Duration("timeout", rttprobe.DefaultTimeout, "wait at most `d` for each reply")
	flagDelay      = flag.Duration("delay", rttprobe.DefaultDelay, "pause `d` after each probe")
)

func main() {
	log.SetPrefix("rttsort: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	prober := rttprobe.NewProber(newPinger(*flagPrivileged))
	prober.Count = *flagCount
	prober.Timeout = *flagTimeout
	prober.Delay = *flagDelay
	if prober.Count < 1 {
		flag.Usage()
	}

	var stderr io.Writer = io.Discard
	if *flagVerbose {
		stderr = os.Stderr
	}
	exit(rttsort(context.Background(), prober, os.Stdout, stderr, flag.Args()))
}

// rttsort runs the command with arguments args and returns its exit
// status.
func rttsort(ctx context.Context, prober *rttprobe.Prober, stdout, stderr io.Writer, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, "Error: expected exactly one argument, a JSON array of hosts")
		return 2
	}
	hosts, err := rttprobe.ParseHosts([]byte(args[0]))
	if err != nil {
		fmt.Fprintf(stdout, "Error: %s\n", err)
		return 1
	}

	results, err := prober.ProbeAll(ctx, hosts)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %s\n", err)
		return 1
	}
	for _, r := range results {
		fmt.Fprintln(stderr, r)
	}
	rttprobe.SortFarthestFirst(results)

	out, err := json.Marshal(rttprobe.Hosts(results))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(stdout, "%s\n", out)
	return 0
}
