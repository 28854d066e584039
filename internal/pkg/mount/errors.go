// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package mount implements the bind/tmpfs/private-root primitives the
// child setup pipeline assembles the container's mount graph from. Every
// primitive names the offending source/destination pair on failure.
package mount

import "fmt"

// Error names the mount operation and path(s) that failed.
type Error struct {
	Op  string // "bind", "remount-ro", "tmpfs", "rprivate", "proc", "devpts"
	Src string
	Dst string
	Err error
}

func (e *Error) Error() string {
	if e.Src == "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Dst, e.Err)
	}
	return fmt.Sprintf("%s %q -> %q: %s", e.Op, e.Src, e.Dst, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
