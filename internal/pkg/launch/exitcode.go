// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package launch

import "golang.org/x/sys/unix"

// Exit codes, spec.md §6.
const (
	ExitOK            = 0
	ExitNameInUse     = 123
	ExitCannot        = 124
	ExitReserved      = 125
	ExitNotExecutable = 126
	ExitNotFound      = 127
)

// ExitCode maps a wait4'd child status to spec.md §4.6's rule:
// WIFEXITED -> WEXITSTATUS, WIFSIGNALED -> 128+signo.
func ExitCode(ws unix.WaitStatus) int {
	switch {
	case ws.Exited():
		return ws.ExitStatus()
	case ws.Signaled():
		return 128 + int(ws.Signal())
	default:
		return ExitCannot
	}
}
