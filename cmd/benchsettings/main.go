// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchsettings checks a benchmark settings file.
//
// Usage:
//
//	benchsettings [-json] settings.json
//
// Benchsettings loads the settings file and prints its contents, with
// a single zone expanded to a list. It exits with status 1 if the
// file is missing a key or has a value of the wrong type.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Entropy-Foundation/smr-hydrangea/settings"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: benchsettings [options] settings.json\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var flagJSON = flag.Bool("json", false, "print the settings as JSON")

func main() {
	log.SetPrefix("benchsettings: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	s, err := settings.Load(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if err := write(os.Stdout, s, *flagJSON); err != nil {
		log.Fatal(err)
	}
}

func write(w io.Writer, s *settings.Settings, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(s)
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "github deploy key\t%s\t%s\n", s.GithubDeployKey.Name, s.GithubDeployKey.Path)
	fmt.Fprintf(tw, "instance key\t%s\t%s\n", s.InstanceKey.Name, s.InstanceKey.Path)
	fmt.Fprintf(tw, "base port\t%d\n", s.BasePort)
	fmt.Fprintf(tw, "repo\t%s\t%s\t%s\n", s.Repo.Name, s.Repo.URL, s.Repo.Branch)
	fmt.Fprintf(tw, "machine type\t%s\n", s.Instances.MachineType)
	fmt.Fprintf(tw, "zones\t%s\n", strings.Join(s.Instances.Zones, ", "))
	return tw.Flush()
}
