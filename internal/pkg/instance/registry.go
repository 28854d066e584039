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
	"encoding/binary"
	"fmt"
	"os"
	"syscall"

	"github.com/selfdock/selfdock/internal/pkg/fsutil"
	"github.com/selfdock/selfdock/pkg/sylog"
)

// path resolves the on-disk location of the named instance file,
// creating $XDG_RUNTIME_DIR/selfdock along the way when create is true.
func path(name string, uid int, create bool) (string, error) {
	dir, err := selfdockDir(uid, create)
	if err != nil {
		return "", err
	}
	return fsutil.Compose("%s/%s", dir, name)
}

// OpenExclusive creates the instance file for name, failing with ErrExists
// if one is already registered. The file is owned by uid and mode 0400 so
// only its owner can ever read the PID back out.
func OpenExclusive(name string, uid int) (*os.File, error) {
	p, err := path(name, uid, true)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o400)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrExists
		}
		return nil, err
	}

	if err := f.Chown(uid, -1); err != nil {
		f.Close()
		os.Remove(p)
		return nil, fmt.Errorf("chown instance file %s: %w", p, err)
	}

	return f, nil
}

// WritePID records pid in the already-opened instance file f.
func WritePID(f *os.File, pid int) error {
	return binary.Write(f, binary.NativeEndian, int64(pid))
}

// GetPID looks up the PID registered under name for uid, returning
// ErrNotFound if no such instance is registered.
func GetPID(name string, uid int) (int, error) {
	p, err := path(name, uid, false)
	if err != nil {
		return 0, err
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	defer f.Close()

	var pid int64
	if err := binary.Read(f, binary.NativeEndian, &pid); err != nil {
		return 0, fmt.Errorf("read instance file %s: %w", p, err)
	}
	return int(pid), nil
}

// Remove unregisters the instance file for name. Failure to remove it is
// logged but never propagated: a stale instance file only blocks a future
// OpenExclusive under the same name, it doesn't affect the caller that is
// tearing its own container down.
func Remove(name string, uid int) {
	p, err := path(name, uid, false)
	if err != nil {
		sylog.Warningf("resolve instance path for %q: %v", name, err)
		return
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		sylog.Warningf("remove instance file %s: %v", p, err)
	}
}

// IsAlive reports whether pid refers to a live process, by probing it
// with signal 0. It is not called anywhere in the run/enter path: a dead
// supervisor's instance file is never cleaned up automatically, and the
// next OpenExclusive under the same name fails with ErrExists. It is
// kept as the primitive an instance list/gc command would need to tell a
// live instance from an orphaned file.
func IsAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
