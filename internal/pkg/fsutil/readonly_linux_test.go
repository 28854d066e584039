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

func TestIsReadOnlyFalseForWritableDir(t *testing.T) {
	dir := t.TempDir()
	if IsReadOnly(dir) {
		t.Fatalf("expected %s to be writable", dir)
	}
}

func TestIsReadOnlyFalseForMissingPath(t *testing.T) {
	// A missing path fails with ENOENT, not EROFS, so IsReadOnly must say false.
	if IsReadOnly(filepath.Join(t.TempDir(), "does-not-exist")) {
		t.Fatal("expected false for a missing path")
	}
}

func TestIsReadOnlyFalseForFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if IsReadOnly(f) {
		t.Fatalf("expected %s to be writable", f)
	}
}
