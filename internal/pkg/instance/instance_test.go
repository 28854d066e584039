// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package instance

import (
	"os"
	"testing"
)

func withFakeRuntimeDir(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
}

func TestOpenExclusiveRejectsDuplicate(t *testing.T) {
	withFakeRuntimeDir(t)
	uid := os.Getuid()

	f, err := OpenExclusive("dup", uid)
	if err != nil {
		t.Fatalf("first OpenExclusive: %v", err)
	}
	f.Close()
	defer Remove("dup", uid)

	if _, err := OpenExclusive("dup", uid); err != ErrExists {
		t.Fatalf("second OpenExclusive: got %v, want ErrExists", err)
	}
}

func TestWritePIDThenGetPIDRoundTrips(t *testing.T) {
	withFakeRuntimeDir(t)
	uid := os.Getuid()

	f, err := OpenExclusive("roundtrip", uid)
	if err != nil {
		t.Fatalf("OpenExclusive: %v", err)
	}
	defer Remove("roundtrip", uid)

	if err := WritePID(f, 4242); err != nil {
		f.Close()
		t.Fatalf("WritePID: %v", err)
	}
	f.Close()

	got, err := GetPID("roundtrip", uid)
	if err != nil {
		t.Fatalf("GetPID: %v", err)
	}
	if got != 4242 {
		t.Fatalf("GetPID = %d, want 4242", got)
	}
}

func TestGetPIDUnknownNameIsNotFound(t *testing.T) {
	withFakeRuntimeDir(t)

	if _, err := GetPID("never-registered", os.Getuid()); err != ErrNotFound {
		t.Fatalf("GetPID = %v, want ErrNotFound", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	withFakeRuntimeDir(t)
	uid := os.Getuid()

	f, err := OpenExclusive("gone", uid)
	if err != nil {
		t.Fatalf("OpenExclusive: %v", err)
	}
	f.Close()

	Remove("gone", uid)
	Remove("gone", uid) // must not panic or block on a second call

	if _, err := GetPID("gone", uid); err != ErrNotFound {
		t.Fatalf("GetPID after Remove = %v, want ErrNotFound", err)
	}
}

func TestIsAliveDetectsCurrentProcess(t *testing.T) {
	if !IsAlive(os.Getpid()) {
		t.Fatal("IsAlive(self) = false, want true")
	}
}
