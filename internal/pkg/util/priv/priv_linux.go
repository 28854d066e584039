// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package priv bounds the lifetime of root privilege. The binary is
// installed setuid root, and nothing drops effective root at startup:
// code outside a privileged section runs with whatever effective uid the
// last Escalate/Drop left in force, which is euid 0 until the first Drop.
// A privileged section is opened with Escalate and closed with Drop,
// which leaves the real uid as the effective uid.
package priv

import (
	"os"
	"runtime"
	"syscall"
)

// Escalate escalates thread privileges. Privilege is a property of the OS
// thread, not the process, so the calling goroutine is locked to its
// thread for the duration: otherwise Go could reschedule it onto an
// unprivileged thread mid-syscall.
func Escalate() error {
	runtime.LockOSThread()
	uid := os.Getuid()
	return syscall.Setresuid(uid, 0, uid)
}

// Drop drops thread privileges and unlocks the goroutine from its thread.
func Drop() error {
	defer runtime.UnlockOSThread()
	uid := os.Getuid()
	return syscall.Setresuid(uid, uid, 0)
}

// WithRoot escalates, runs fn, and always drops again before returning,
// including when fn panics. Every elevated region in this codebase goes
// through WithRoot so none can forget the matching Drop.
func WithRoot(fn func() error) error {
	if err := Escalate(); err != nil {
		return err
	}
	defer Drop()
	return fn()
}

// MkdirAsRealUser creates path with the real, not effective, uid in
// force, regardless of the effective uid in force when it's called.
// The binary spends nearly all its life at euid 0 (the startup
// setuid-root privilege is never dropped for good until the child
// pipeline's own step 12), so a caller outside any WithRoot block still
// has euid 0, not euid==uid — this function cannot assume the drop
// already happened. When it hasn't, it escalates/drops the real uid
// itself around the Mkdir; when euid already equals the real uid (e.g.
// an unprivileged, non-setuid invocation) it mkdirs directly, with no
// syscall needed.
func MkdirAsRealUser(path string, mode os.FileMode) error {
	uid := os.Getuid()
	if os.Geteuid() == uid {
		return os.Mkdir(path, mode)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := syscall.Setresuid(uid, uid, 0); err != nil {
		return err
	}
	defer syscall.Setresuid(uid, 0, uid) //nolint:errcheck

	return os.Mkdir(path, mode)
}
