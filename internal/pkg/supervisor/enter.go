// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"syscall"

	"github.com/selfdock/selfdock/internal/pkg/instance"
	"github.com/selfdock/selfdock/internal/pkg/launch"
	"github.com/selfdock/selfdock/pkg/sylog"
	"github.com/selfdock/selfdock/pkg/util/namespaces"
	"golang.org/x/sys/unix"
)

// Enter re-joins the already-running instance name and execs argv inside
// it, implementing spec.md §4.7's 7-step sequence. cwd defaults to "/"
// when empty.
func Enter(name, cwd string, argv []string) int {
	uid := os.Getuid()

	// 1. Resolve (name, uid) -> pid.
	pid, err := instance.GetPID(name, uid)
	if err != nil {
		if err == instance.ErrNotFound {
			sylog.Errorf("instance %q: not running", name)
		} else {
			sylog.Errorf("resolve instance %q: %s", name, err)
		}
		return launch.ExitNameInUse
	}

	if cwd == "" {
		cwd = "/"
	}

	child := exec.Command(argv[0], argv[1:]...)
	child.Dir = cwd
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	// 5. The target runs with the real uid and gid, not with the elevated
	// effective uid enterAndStart holds while it forks the target.
	child.SysProcAttr = &syscall.SysProcAttr{
		Credential: &syscall.Credential{Uid: uint32(uid), Gid: uint32(os.Getgid()), NoSetGroups: true},
	}

	// 2-7: setns into the target, chroot onto it, check ownership, and
	// fork the target command — all on the same OS thread, held locked
	// and elevated throughout by enterAndStart.
	exitCode, err := enterAndStart(pid, uid, name, child)
	if err != nil {
		sylog.Errorf("%s", err)
		return exitCode
	}

	if err := child.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			ws := unix.WaitStatus(exitErr.Sys().(syscall.WaitStatus)) //nolint:forcetypeassert
			return launch.ExitCode(ws)
		}
		sylog.Errorf("exec: %s: %s", argv[0], err)
		return launch.ExitNotExecutable
	}
	return launch.ExitOK
}

// enterAndStart runs spec.md §4.7 steps 2-7 with the calling goroutine's
// OS thread locked and its effective uid raised to root for the entire
// setns -> chroot -> stat -> fork sequence.
//
// setns(CLONE_NEWPID) only takes effect for children the calling thread
// forks afterward; it never moves the calling process itself. The
// ownership stat and the child.Start() fork must therefore run on that
// same, still-setns'd thread. priv.WithRoot is deliberately not used
// here: its deferred Drop calls runtime.UnlockOSThread before returning,
// and unlocking before the fork would let the goroutine resume on a
// different M that never called setns — leaving /proc/1 resolving to
// the host's init and the forked command outside the instance's
// namespaces. Locking and elevating are done directly instead, with the
// thread held until after child.Start() has forked.
func enterAndStart(pid, uid int, name string, child *exec.Cmd) (int, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := syscall.Setresuid(uid, 0, uid); err != nil {
		return launch.ExitCannot, fmt.Errorf("escalate: %w", err)
	}
	defer syscall.Setresuid(uid, uid, 0) //nolint:errcheck

	// 2-4. Join the target's pid then mnt namespaces, then chroot onto
	// its root view via its /proc/<pid>/cwd magic link, adopting it
	// without a fresh mount.
	if err := namespaces.Enter(pid, "pid"); err != nil {
		return launch.ExitCannot, fmt.Errorf("enter instance %q: %w", name, err)
	}
	if err := namespaces.Enter(pid, "mnt"); err != nil {
		return launch.ExitCannot, fmt.Errorf("enter instance %q: %w", name, err)
	}
	if err := unix.Chroot(fmt.Sprintf("/proc/%d/cwd", pid)); err != nil {
		return launch.ExitCannot, fmt.Errorf("enter instance %q: %w", name, err)
	}

	// 6. Ownership check, while still on the setns'd thread so /proc/1
	// is the instance's own init, not the host's.
	info, err := os.Stat("/proc/1")
	if err != nil {
		return launch.ExitCannot, fmt.Errorf("stat /proc/1: %w", err)
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || int(st.Uid) != uid {
		return launch.ExitCannot, fmt.Errorf("you do not own instance %q", name)
	}

	// 7. Fork the target. This is an ordinary fork+exec (os/exec's
	// ForkExec), not a bare execve in place: the calling process never
	// itself joined the target PID namespace (setns(CLONE_NEWPID) can't
	// move an existing process), so only a process forked from this
	// still-elevated, still-setns'd thread lands inside it — matching
	// the requirement that the entered command sees a PID greater than
	// 1, as a child of the namespace's own init. The deferred privilege
	// drop and thread unlock above only run after this fork completes.
	if err := child.Start(); err != nil {
		return launch.ExitNotExecutable, fmt.Errorf("exec: %s: %w", child.Path, err)
	}
	return launch.ExitOK, nil
}
