// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package instance is the per-user, on-disk registry that lets a second
// invocation of selfdock re-enter a container a prior invocation started.
// A running instance is recorded as one exclusively-created file per
// name, holding nothing but the PID of the container's init process (the
// child the supervisor spawned).
package instance

import (
	"errors"
)

// ErrExists is returned by OpenExclusive when an instance by this name is
// already registered.
var ErrExists = errors.New("already exists")

// ErrNotFound is returned by GetPID when no instance by this name is
// registered.
var ErrNotFound = errors.New("not found")

// File describes one registered instance.
type File struct {
	Name     string
	OwnerUID int
	Path     string
}
