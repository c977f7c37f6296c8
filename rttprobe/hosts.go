// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rttprobe

import (
	"encoding/json"
	"fmt"
)

// ParseHosts decodes a JSON array of host names.
func ParseHosts(data []byte) ([]string, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return nil, fmt.Errorf("invalid JSON: expected an array of hosts")
		}
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	if elems == nil {
		return nil, fmt.Errorf("invalid JSON: expected an array of hosts")
	}
	hosts := make([]string, len(elems))
	for i, elem := range elems {
		if err := json.Unmarshal(elem, &hosts[i]); err != nil || string(elem) == "null" {
			return nil, fmt.Errorf("all hosts must be strings: element %d is %s", i, elem)
		}
	}
	return hosts, nil
}
