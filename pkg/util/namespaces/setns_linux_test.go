// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018-2022, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package namespaces

import (
	"os"
	"testing"
)

func TestEnterRejectsUnsupportedKind(t *testing.T) {
	if err := Enter(os.Getpid(), "net"); err == nil {
		t.Fatal("expected an error for an unsupported namespace kind")
	}
}

func TestEnterOwnMntNamespace(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("requires root to setns")
	}
	if err := Enter(os.Getpid(), "mnt"); err != nil {
		t.Fatalf("entering our own mnt namespace should succeed as root: %s", err)
	}
}

func TestEnterMissingPid(t *testing.T) {
	if err := Enter(-1, "mnt"); err == nil {
		t.Fatal("expected an error for a nonexistent pid")
	}
}
