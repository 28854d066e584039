// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package mount

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

// requireRoot skips privileged tests when not running as root, the same
// way the teacher's e2e suite gates its own CAP_SYS_ADMIN-requiring
// tests rather than failing the whole run in a sandbox.
func requireRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() != 0 {
		t.Skip("requires root to exercise real mount(2) calls")
	}
}

func TestTmpfsAtMountsAndChmods(t *testing.T) {
	requireRoot(t)

	dst := t.TempDir()
	if err := TmpfsAt(dst, "size=1M"); err != nil {
		t.Fatalf("TmpfsAt: %v", err)
	}
	defer unix.Unmount(dst, 0)

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o777 {
		t.Fatalf("got mode %v, want 0777", info.Mode().Perm())
	}
}

func TestBindROIsReadOnly(t *testing.T) {
	requireRoot(t)

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dst")
	if err := os.Mkdir(dst, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := BindRO(src, dst); err != nil {
		t.Fatalf("BindRO: %v", err)
	}
	defer unix.Unmount(dst, unix.MNT_DETACH)

	f := filepath.Join(dst, "x")
	if err := os.WriteFile(f, []byte("x"), 0o644); err == nil {
		t.Fatal("expected write to read-only bind mount to fail")
	}
}
