// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package supervisor owns the parent side of one container invocation:
// spawning the cloned child, registering it in the instance registry,
// relaying signals to it while it runs, and mapping its exit status to
// the command's own exit code. Re-entering an already-running instance
// (Enter) lives here too, since it shares the registry and namespace
// primitives with Run.
package supervisor

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/selfdock/selfdock/internal/pkg/instance"
	"github.com/selfdock/selfdock/internal/pkg/launch"
	"github.com/selfdock/selfdock/internal/pkg/sigrelay"
	"github.com/selfdock/selfdock/pkg/sylog"
	"golang.org/x/sys/unix"
)

// Run validates spec, spawns the cloned child, registers it (if named),
// relays signals to it for its lifetime, and returns the mapped exit
// code once it terminates.
func Run(spec *launch.Spec) int {
	if err := spec.Validate(); err != nil {
		sylog.Errorf("%s", err)
		return launch.ExitCannot
	}
	spec.ApplyEnv()

	uid := os.Getuid()

	var instF *os.File
	if spec.InstanceName != "" {
		f, err := instance.OpenExclusive(spec.InstanceName, uid)
		if err != nil {
			if err == instance.ErrExists {
				sylog.Errorf("instance %q already exists", spec.InstanceName)
				return launch.ExitNameInUse
			}
			sylog.Errorf("register instance %q: %s", spec.InstanceName, err)
			return launch.ExitCannot
		}
		instF = f
		defer instance.Remove(spec.InstanceName, uid)
	}

	relay := sigrelay.New()
	defer relay.Stop()

	cmd, err := launch.Spawn(spec)
	if err != nil {
		sylog.Errorf("%s", err)
		if instF != nil {
			instF.Close()
		}
		return launch.ExitCannot
	}

	// The instance file is written after a successful clone and before
	// the wait below. A write failure leaves the child running without
	// a registry entry; per spec.md §9's open question this is logged,
	// not fatal — killing a running container over bookkeeping failure
	// would be the more surprising choice of the two.
	if instF != nil {
		if err := instance.WritePID(instF, cmd.Process.Pid); err != nil {
			sylog.Warningf("write instance file for %q: %s", spec.InstanceName, err)
		}
		instF.Close()
	}

	relay.Publish(cmd.Process.Pid)

	if err := cmd.Wait(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			sylog.Errorf("wait: %s", err)
			return launch.ExitCannot
		}
		ws := unix.WaitStatus(exitErr.Sys().(syscall.WaitStatus)) //nolint:forcetypeassert
		return launch.ExitCode(ws)
	}
	return launch.ExitOK
}
