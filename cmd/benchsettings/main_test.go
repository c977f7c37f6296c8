// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Entropy-Foundation/smr-hydrangea/internal/diff"
	"github.com/Entropy-Foundation/smr-hydrangea/settings"
)

var testSettings = &settings.Settings{
	GithubDeployKey: settings.Key{Name: "deploy", Path: "/keys/deploy"},
	InstanceKey:     settings.Key{Name: "aws", Path: "/keys/aws.pem"},
	BasePort:        5000,
	Repo:            settings.Repo{Name: "hydrangea", URL: "https://example.com/repo.git", Branch: "main"},
	Instances:       settings.Instances{MachineType: "m5.large", Zones: settings.Zones{"a", "b"}},
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := write(&buf, testSettings, false); err != nil {
		t.Fatal(err)
	}
	want := `github deploy key  deploy  /keys/deploy
instance key       aws     /keys/aws.pem
base port          5000
repo               hydrangea  https://example.com/repo.git  main
machine type       m5.large
zones              a, b
`
	if d := diff.Diff("want", want, "got", buf.String()); d != "" {
		t.Errorf("output differs:\n%s", d)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := write(&buf, testSettings, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"port": 5000`) {
		t.Errorf("JSON output uses wrong key names:\n%s", buf.String())
	}
	s, err := settings.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("output does not load: %v", err)
	}
	var a, b bytes.Buffer
	json.NewEncoder(&a).Encode(s)
	json.NewEncoder(&b).Encode(testSettings)
	if a.String() != b.String() {
		t.Errorf("round trip changed settings:\n%s\n%s", a.String(), b.String())
	}
}
