// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestContainerDestStripsLeadingSlash(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "etc"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ContainerDest(root, "/etc/passwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(root, "etc/passwd")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestContainerDestConfinesEscape(t *testing.T) {
	root := t.TempDir()
	got, err := ContainerDest(root, "/../../etc/shadow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Clean(got)[:len(root)] != root {
		t.Fatalf("escaped root: %q", got)
	}
}
