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
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/selfdock/selfdock/internal/pkg/fsutil"
	"github.com/selfdock/selfdock/internal/pkg/mount"
	"github.com/selfdock/selfdock/pkg/sylog"
	"golang.org/x/sys/unix"
)

// Pipeline runs the 14-step child setup sequence of spec.md §4.5 inside
// the already re-exec'd, already-cloned child: PID 1 of its own PID
// namespace, sole occupant of its own mount namespace. Every step is
// strictly ordered; the first failure aborts the rest and Run returns
// the mapped exit status instead of calling os.Exit itself, so the
// __child entry point remains the sole place that terminates the
// process.
type Pipeline struct{}

// Run executes the pipeline for spec, returning a spec.md §6 exit code.
// On success, Run does not return: step 14 replaces the process image
// via syscall.Exec. A returned value only ever signals failure.
func (Pipeline) Run(spec *Spec) int {
	// 1. Revert "/" to private recursive propagation first, so nothing
	// performed below leaks back to the host mount namespace.
	if err := mount.MakeRPrivateRoot(); err != nil {
		sylog.Errorf("%s", err)
		return ExitCannot
	}

	// 2. Pick the anchor mountpoint and bind the caller's rootfs onto it.
	anchor := filepath.Join(spec.RootOverlay, "dev", "empty")
	bindRoot := mount.BindRO
	if spec.PermitWritable {
		bindRoot = mount.BindRW
	}
	if err := bindRoot(spec.OldRoot, anchor); err != nil {
		sylog.Errorf("%s", err)
		return ExitCannot
	}

	// 3. chdir into the anchor: everything from here on is root-relative.
	if err := os.Chdir(anchor); err != nil {
		sylog.Errorf("chdir %s: %s", anchor, err)
		return ExitCannot
	}

	// 4. Bind a minimal read-only /dev template over "dev" (relative to
	// the anchor), independent of whatever the host rootfs provides.
	hostDev := filepath.Join(spec.RootOverlay, "dev")
	if err := mount.BindRO(hostDev, "dev"); err != nil {
		sylog.Errorf("%s", err)
		return ExitCannot
	}

	// 5. --map: read-only binds.
	for _, b := range spec.Maps {
		dst, err := fsutil.ContainerDest(".", b.Dst)
		if err != nil {
			sylog.Errorf("%s", err)
			return ExitCannot
		}
		if err := mount.BindRO(b.Src, dst); err != nil {
			sylog.Errorf("%s", err)
			return ExitCannot
		}
	}

	// 6. --vol: read-write binds.
	for _, b := range spec.Vols {
		dst, err := fsutil.ContainerDest(".", b.Dst)
		if err != nil {
			sylog.Errorf("%s", err)
			return ExitCannot
		}
		if err := mount.BindRW(b.Src, dst); err != nil {
			sylog.Errorf("%s", err)
			return ExitCannot
		}
	}

	// 7. chroot(".") — the anchor becomes "/".
	if err := unix.Chroot("."); err != nil {
		sylog.Errorf("chroot: %s", err)
		return ExitCannot
	}

	// 8. Fresh procfs, inside the new root.
	if err := mount.MountProc("proc"); err != nil {
		sylog.Errorf("%s", err)
		return ExitCannot
	}

	// 9. Fresh devpts, inside the new root.
	if err := mount.MountDevpts(filepath.Join("dev", "pts")); err != nil {
		sylog.Errorf("%s", err)
		return ExitCannot
	}

	// 10. User-requested tmpfs mounts.
	haveTmp := false
	for _, t := range spec.Tmpfs {
		if err := mount.TmpfsAt(t.Dst, t.Options); err != nil {
			sylog.Errorf("%s", err)
			return ExitCannot
		}
		if t.Dst == "/tmp" {
			haveTmp = true
		}
	}

	// 11. Default /tmp if the user didn't ask for one.
	if !haveTmp {
		if err := mount.TmpfsAt("/tmp", "size=2M"); err != nil {
			sylog.Errorf("%s", err)
			return ExitCannot
		}
	}

	// 12. Drop effective root. Nothing past this point may require
	// privilege.
	if err := unix.Setuid(os.Getuid()); err != nil {
		sylog.Errorf("setuid: %s", err)
		return ExitCannot
	}

	// 13. chdir into the requested working directory.
	cwd := spec.Cwd
	if cwd == "" {
		cwd = "/"
	}
	if err := os.Chdir(cwd); err != nil {
		sylog.Errorf("chdir %s: %s", cwd, err)
		return ExitCannot
	}

	// 14. exec the target. On failure, diagnose why.
	argv0, err := lookPath(spec.Argv[0])
	if err != nil {
		sylog.Errorf("exec: %s: no such file or directory", spec.Argv[0])
		return ExitNotFound
	}
	execErr := syscall.Exec(argv0, spec.Argv, os.Environ())
	// syscall.Exec only returns on failure.
	diag, errno := fsutil.DiagnoseExecutable(argv0)
	switch diag {
	case fsutil.DiagnosisMissing:
		sylog.Errorf("exec: %s: no such file or directory", spec.Argv[0])
		return ExitNotFound
	default:
		if errno == syscall.EISDIR {
			sylog.Errorf("exec: %s: is a directory", spec.Argv[0])
		} else {
			sylog.Errorf("exec: %s: %s", spec.Argv[0], execErr)
		}
		return ExitNotExecutable
	}
}

// lookPath resolves argv0 through PATH when it contains no slash,
// mirroring execvp's own search so DiagnoseExecutable sees the same
// path a later retry would.
func lookPath(argv0 string) (string, error) {
	if filepath.Base(argv0) != argv0 {
		return argv0, nil
	}
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, argv0)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: not found in PATH", argv0)
}
