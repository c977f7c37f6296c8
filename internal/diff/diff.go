// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares test output with its expected form.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Diff returns a human-readable description of the differences between
// s1 and s2, labeled name1 and name2.
// If the "diff" command is available, it returns the output of unified diff on s1 and s2.
// If the result is non-empty, the strings differ or the diff command failed.
func Diff(name1, s1, name2, s2 string) string {
	if s1 == s2 {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return fmt.Sprintf("diff command unavailable\n%s: %q\n%s: %q", name1, s1, name2, s2)
	}
	dir, err := os.MkdirTemp("", "diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(dir)

	f1, f2 := filepath.Join(dir, "1"), filepath.Join(dir, "2")
	if err := os.WriteFile(f1, []byte(s1), 0666); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(f2, []byte(s2), 0666); err != nil {
		return err.Error()
	}

	data, err := exec.Command("diff", "-u", "--label", name1, "--label", name2, f1, f2).CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files don't match.
		// Ignore that failure as long as we get output.
		err = nil
	}
	if err != nil {
		data = append(data, []byte(err.Error())...)
	}
	return string(data)
}
