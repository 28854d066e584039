// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package launch holds the immutable description of one container
// invocation (Spec) and the child setup pipeline that turns a Spec,
// running inside freshly cloned mount and PID namespaces, into an
// exec()'d target process.
package launch

import (
	"fmt"
	"os"
)

// Mode selects which of the three entry points built Spec.
type Mode string

const (
	ModeRun   Mode = "run"
	ModeBuild Mode = "build"
	ModeEnter Mode = "enter"
)

// Bind is one host-source to container-destination bind mount.
type Bind struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

// Tmpfs is one tmpfs mount, keyed by its in-container destination.
type Tmpfs struct {
	Options string `json:"options"`
	Dst     string `json:"dst"`
}

// EnvOp is one environment mutation: set Name=Value, or unset Name.
type EnvOp struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unset bool   `json:"unset"`
}

// Spec is the immutable description of one invocation, built by
// cmd/selfdock and carried — by explicit JSON serialisation across an
// inherited pipe, not by shared address space — into the re-exec'd child
// that runs the setup pipeline.
type Spec struct {
	Mode Mode `json:"mode"`

	// OldRoot is the host directory bound in as the container's root
	// (spec.md's "rootfs", default "/").
	OldRoot string `json:"old_root"`
	// Cwd is the working directory inside the container once running,
	// default "/".
	Cwd string `json:"cwd"`
	// Argv is the target command and its arguments.
	Argv []string `json:"argv"`

	Maps  []Bind  `json:"maps"`
	Vols  []Bind  `json:"vols"`
	Tmpfs []Tmpfs `json:"tmpfs"`
	Env   []EnvOp `json:"env"`

	// PermitWritable selects bind_rw over bind_ro for OldRoot: false for
	// run, true for build.
	PermitWritable bool `json:"permit_writable"`
	// InstanceName registers this run/build under a name in the
	// instance registry; empty means unregistered.
	InstanceName string `json:"instance_name"`

	// RootOverlay is the host directory containing the minimal dev/
	// template and the dev/empty anchor mountpoint.
	RootOverlay string `json:"root_overlay"`
}

// Validate rejects a Spec whose map/vol/tmpfs destinations are not
// absolute, matching spec.md's data-model invariant.
func (s *Spec) Validate() error {
	for _, b := range s.Maps {
		if !isAbs(b.Dst) {
			return fmt.Errorf("--map destination %q must be absolute", b.Dst)
		}
	}
	for _, b := range s.Vols {
		if !isAbs(b.Dst) {
			return fmt.Errorf("--vol destination %q must be absolute", b.Dst)
		}
	}
	for _, t := range s.Tmpfs {
		if !isAbs(t.Dst) {
			return fmt.Errorf("--tmpfs destination %q must be absolute", t.Dst)
		}
	}
	if len(s.Argv) == 0 {
		return fmt.Errorf("no command given")
	}
	return nil
}

func isAbs(p string) bool {
	return len(p) > 0 && p[0] == '/'
}

// ApplyEnv mutates the current process environment per Env, the channel
// spec.md §9 names for carrying --env/--env-rm into the child: the
// mutation happens here, strictly before the child is spawned, and the
// child inherits the result via its own os.Environ() read.
func (s *Spec) ApplyEnv() {
	for _, e := range s.Env {
		if e.Unset {
			os.Unsetenv(e.Name)
			continue
		}
		os.Setenv(e.Name, e.Value)
	}
}
