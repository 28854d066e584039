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
	"errors"

	"github.com/selfdock/selfdock/internal/pkg/fsutil"
	"github.com/selfdock/selfdock/internal/pkg/tmpfsutil"
	"golang.org/x/sys/unix"
)

var errStillWritable = errors.New("still not read-only; bind-remount-ro requires Linux >= 2.6.26")

// BindRW bind-mounts src onto dst, read-write.
func BindRW(src, dst string) error {
	if err := unix.Mount(src, dst, "", unix.MS_BIND, ""); err != nil {
		return &Error{Op: "bind", Src: src, Dst: dst, Err: err}
	}
	return nil
}

// BindRO bind-mounts src onto dst and remounts the bind read-only,
// verifying the kernel actually honoured the remount — some kernels
// older than 2.6.26 silently ignore MS_RDONLY on a bind remount.
func BindRO(src, dst string) error {
	if err := BindRW(src, dst); err != nil {
		return err
	}
	if err := unix.Mount("", dst, "", unix.MS_REMOUNT|unix.MS_BIND|unix.MS_RDONLY, ""); err != nil {
		return &Error{Op: "remount-ro", Dst: dst, Err: err}
	}
	if !fsutil.IsReadOnly(dst) {
		return &Error{Op: "remount-ro", Dst: dst, Err: errStillWritable}
	}
	return nil
}

// TmpfsAt mounts a tmpfs at dst with the given comma-separated options
// and opens its permissions to 0777 so the in-container, unprivileged
// user can use it.
func TmpfsAt(dst, options string) error {
	if err := tmpfsutil.ValidateOptions(options); err != nil {
		return &Error{Op: "tmpfs", Dst: dst, Err: err}
	}
	if err := unix.Mount("none", dst, "tmpfs", unix.MS_NOEXEC, options); err != nil {
		return &Error{Op: "tmpfs", Dst: dst, Err: err}
	}
	if err := unix.Chmod(dst, 0o777); err != nil {
		return &Error{Op: "tmpfs", Dst: dst, Err: err}
	}
	return nil
}

// MakeRPrivateRoot recursively marks "/" private, so no mount performed
// afterwards in this mount namespace propagates back to the host. It must
// run first, before any bind is attempted.
func MakeRPrivateRoot() error {
	if err := unix.Mount("", "/", "", unix.MS_PRIVATE|unix.MS_REC, ""); err != nil {
		return &Error{Op: "rprivate", Dst: "/", Err: err}
	}
	return nil
}

// MountProc mounts a fresh procfs at dst (relative to the new root).
func MountProc(dst string) error {
	if err := unix.Mount("none", dst, "proc", unix.MS_NOEXEC, ""); err != nil {
		return &Error{Op: "proc", Dst: dst, Err: err}
	}
	return nil
}

// MountDevpts mounts a fresh devpts at dst (relative to the new root).
func MountDevpts(dst string) error {
	if err := unix.Mount("none", dst, "devpts", unix.MS_NOEXEC, ""); err != nil {
		return &Error{Op: "devpts", Dst: dst, Err: err}
	}
	return nil
}
