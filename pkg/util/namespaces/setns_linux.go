// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018-2022, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package namespaces wraps setns(2) for re-entering a running instance's
// namespaces. Only the namespaces selfdock itself creates (mount, pid) are
// supported; network/IPC/UTS namespacing is out of scope.
package namespaces

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

var nsMap = map[string]uintptr{
	"mnt": unix.CLONE_NEWNS,
	"pid": unix.CLONE_NEWPID,
}

// Enter joins the namespace of kind ns belonging to pid. For "pid" this
// only affects the namespace of processes the caller subsequently forks;
// it does not move the calling process itself into the target namespace.
func Enter(pid int, ns string) error {
	flag, ok := nsMap[ns]
	if !ok {
		return fmt.Errorf("namespace %q not supported", ns)
	}

	path := fmt.Sprintf("/proc/%d/ns/%s", pid, ns)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open namespace %s: %w", path, err)
	}
	defer f.Close()

	if err := unix.Setns(int(f.Fd()), int(flag)); err != nil {
		return fmt.Errorf("setns %s: %w", path, err)
	}
	return nil
}
