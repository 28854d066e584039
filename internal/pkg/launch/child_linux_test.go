// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package launch

import (
	"os"
	"testing"
)

// TestSpawnRequiresRoot documents that exercising the real self-re-exec
// path (CLONE_NEWNS|CLONE_NEWPID via SysProcAttr.Cloneflags) needs
// CAP_SYS_ADMIN; it is gated the same way the rest of this package's
// namespace-touching tests are.
func TestSpawnRequiresRoot(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("requires root to clone new namespaces")
	}

	spec := &Spec{
		Mode:    ModeRun,
		OldRoot: "/",
		Argv:    []string{"/bin/true"},
	}
	cmd, err := Spawn(spec)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if err := cmd.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}
