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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/selfdock/selfdock/pkg/sylog"
	"golang.org/x/sys/unix"
)

// ChildArg is the hidden argv[1] cmd/selfdock's main() recognises to
// dispatch into RunChild instead of the normal cobra command tree.
const ChildArg = "__child"

// specFD is the file descriptor, inherited via ExtraFiles, that the
// re-exec'd child reads its serialised Spec from.
const specFD = 3

// Spawn re-execs /proc/self/exe as the child setup pipeline inside fresh
// mount and PID namespaces, passing spec down a pipe rather than through
// shared memory — spec.md §9's own recommendation for a clean
// reimplementation ("pass the spec by explicit serialisation... after a
// plain fork") over the original's CLONE_VM/manual-stack trick, which Go
// cannot safely reproduce from ordinary user code.
func Spawn(spec *Spec) (*exec.Cmd, error) {
	payload, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal launch spec: %w", err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create spec pipe: %w", err)
	}

	self, err := os.Executable()
	if err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("resolve self executable: %w", err)
	}

	cmd := exec.Command(self, ChildArg)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.ExtraFiles = []*os.File{r}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Cloneflags: unix.CLONE_NEWNS | unix.CLONE_NEWPID,
	}

	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("clone child: %w", err)
	}
	r.Close()

	if _, err := w.Write(payload); err != nil {
		w.Close()
		cmd.Process.Kill()
		return nil, fmt.Errorf("write launch spec: %w", err)
	}
	w.Close()

	return cmd, nil
}

// RunChild is the entry point cmd/selfdock dispatches to when invoked as
// "selfdock __child": read the Spec off the inherited pipe and run the
// setup pipeline. It is PID 1 of a fresh PID namespace and the sole
// occupant of a fresh mount namespace by the time it runs, courtesy of
// the Cloneflags Spawn set on this process.
func RunChild() int {
	f := os.NewFile(specFD, "spec-pipe")
	payload, err := io.ReadAll(f)
	if err != nil {
		sylog.Errorf("read launch spec: %s", err)
		return ExitCannot
	}

	var spec Spec
	if err := json.Unmarshal(payload, &spec); err != nil {
		sylog.Errorf("decode launch spec: %s", err)
		return ExitCannot
	}

	return Pipeline{}.Run(&spec)
}
